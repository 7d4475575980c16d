// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command twoproducer runs two senders on independent intervals and a
// single select-driven consumer, then closes both channels after a
// fixed run so the consumer winds down cleanly.
package main

import (
	"encoding/binary"
	"fmt"

	"code.hybscloud.com/cspchan"
)

func senderA(out *cspchan.Channel) {
	buf := make([]byte, 4)
	i := int32(0)
	for !out.Closed() {
		binary.LittleEndian.PutUint32(buf, uint32(i))
		out.Send(buf)
		i++
		cspchan.Sleep(1000)
	}
}

func senderB(out *cspchan.Channel) {
	buf := make([]byte, 4)
	i := int32(-1)
	for !out.Closed() {
		cspchan.Sleep(1000)
		binary.LittleEndian.PutUint32(buf, uint32(i))
		out.Send(buf)
		cspchan.Sleep(2000)
		i--
	}
}

func receiverAB(a, b *cspchan.Channel) {
	for !a.Closed() && !b.Closed() {
		aBuf := make([]byte, 4)
		bBuf := make([]byte, 4)
		idx, err := cspchan.Select(
			[]*cspchan.Channel{a, b},
			[][]byte{aBuf, bBuf},
			nil, nil,
		)
		if err != nil {
			return
		}
		switch idx {
		case 0:
			fmt.Printf("a: %d\n", int32(binary.LittleEndian.Uint32(aBuf)))
		case 1:
			fmt.Printf("b: %d\n", int32(binary.LittleEndian.Uint32(bBuf)))
		}
	}
}

func main() {
	a := cspchan.New(0, 4)
	b := cspchan.New(0, 4)

	cspchan.Spawn(func(any) { senderA(a) }, nil)
	cspchan.Spawn(func(any) { senderB(b) }, nil)
	cspchan.Spawn(func(any) { receiverAB(a, b) }, nil)

	cspchan.Sleep(9000)
	a.Close()
	b.Close()

	a.Destroy()
	b.Destroy()
}
