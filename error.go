// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cspchan

import "errors"

// ErrAllClosed is returned by Select when every candidate channel was
// already closed at commit time, alongside the -1 sentinel index.
var ErrAllClosed = errors.New("cspchan: all select candidates closed")
