// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command fibonacci computes a Fibonacci number the way Per
// Brinch Hansen's Joyce examples do it: one channel and one spawned
// task per recursive call, the call tree fanning out and folding back
// in purely through capacity-1 buffered channels.
package main

import (
	"flag"
	"fmt"

	"code.hybscloud.com/cspchan"
)

func fibonacci(result *cspchan.Channel, n int32) {
	if n <= 1 {
		result.Send(encode(n))
		return
	}

	left := cspchan.New(1, 4)
	right := cspchan.New(1, 4)

	if id := cspchan.Spawn(func(any) { fibonacci(left, n-1) }, nil); id == 0 {
		// Thread-creation exhaustion: fall back to running the
		// left half inline rather than deadlocking on an unfired
		// task.
		fibonacci(left, n-1)
	}
	if id := cspchan.Spawn(func(any) { fibonacci(right, n-2) }, nil); id == 0 {
		fibonacci(right, n-2)
	}

	leftBuf := make([]byte, 4)
	rightBuf := make([]byte, 4)
	left.Receive(leftBuf)
	right.Receive(rightBuf)
	result.Send(encode(decode(leftBuf) + decode(rightBuf)))
}

func encode(n int32) []byte {
	return []byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
}

func decode(b []byte) int32 {
	return int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16 | int32(b[3])<<24
}

func main() {
	n := flag.Int("n", 11, "Fibonacci index to compute")
	flag.Parse()

	result := cspchan.New(1, 4)
	id := cspchan.Spawn(func(any) { fibonacci(result, int32(*n)) }, nil)
	cspchan.Join(id)

	out := make([]byte, 4)
	result.Receive(out)
	fmt.Printf("fibonacci(%d) = %d\n", *n, decode(out))
}
