// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cspchan

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing identifier assigned to channels
// for debugging and logging purposes (tasks get a TaskID instead). It
// carries no protocol meaning.
type Serial = uint32

// channelSerial is the global monotonic counter handed out by New.
var channelSerial atomix.Uint32

// nextChannelSerial returns the next monotonically increasing channel serial.
func nextChannelSerial() Serial {
	return channelSerial.Add(1)
}

// TaskID identifies a task started by Spawn. The zero value is the
// failure sentinel returned when Spawn could not start a task.
type TaskID = uint64

// taskSerial is the global monotonic counter handed out by Spawn.
var taskSerial atomix.Uint64

// nextTaskID returns the next monotonically increasing, never-zero task id.
func nextTaskID() TaskID {
	return taskSerial.Add(1)
}
