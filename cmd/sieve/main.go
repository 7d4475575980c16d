// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command sieve prints primes found by a chain of filter tasks, each
// one handling a single prime and forwarding everything not divisible
// by it to the next filter in the chain — the concurrent Sieve of
// Eratosthenes from Per Brinch Hansen's Joyce paper.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"

	"code.hybscloud.com/cspchan"
)

type sieveStage struct {
	in, inEOS   *cspchan.Channel
	out, outEOS *cspchan.Channel
	eos         *cspchan.Channel
}

func sieve(st sieveStage) {
	var x int32
	more := false
	var succ, succEOS, outEOS *cspchan.Channel
	forked := false

	xBuf := make([]byte, 4)
	eofBuf := make([]byte, 1)
	idx, _ := cspchan.Select(
		[]*cspchan.Channel{st.in, st.inEOS},
		[][]byte{xBuf, eofBuf},
		nil, nil,
	)
	switch idx {
	case 0:
		x = int32(binary.LittleEndian.Uint32(xBuf))
		succ = cspchan.New(3, 4)
		succEOS = cspchan.New(1, 1)
		outEOS = cspchan.New(0, 1)
		next := sieveStage{in: succ, inEOS: succEOS, out: st.out, outEOS: st.outEOS, eos: outEOS}
		cspchan.Spawn(func(any) { sieve(next) }, nil)
		more = true
		forked = true
	case 1:
		st.outEOS.Send([]byte{1})
		more = false
	}

	yBuf := make([]byte, 4)
	for more {
		idx, _ := cspchan.Select(
			[]*cspchan.Channel{st.in, st.inEOS},
			[][]byte{yBuf, eofBuf},
			nil, nil,
		)
		switch idx {
		case 0:
			y := int32(binary.LittleEndian.Uint32(yBuf))
			if y%x != 0 {
				succ.Send(yBuf)
			}
		case 1:
			st.out.Send(xBuf)
			succEOS.Send([]byte{1})
			more = false
		}
	}

	if forked {
		outEOS.Receive(eofBuf)
		outEOS.Destroy()
		succEOS.Destroy()
		succ.Destroy()
	}
	if st.eos != nil {
		st.eos.Send([]byte{1})
	}
}

func generate(out, outEOS *cspchan.Channel, a, b, n int32) {
	buf := make([]byte, 4)
	for i := int32(0); i < n; i++ {
		binary.LittleEndian.PutUint32(buf, uint32(a+i*b))
		out.Send(buf)
	}
	outEOS.Send([]byte{1})
}

func print(in, inEOS, outEOS *cspchan.Channel) {
	buf := make([]byte, 4)
	eofBuf := make([]byte, 1)
	run := true
	for run {
		idx, _ := cspchan.Select(
			[]*cspchan.Channel{in, inEOS},
			[][]byte{buf, eofBuf},
			nil, nil,
		)
		switch idx {
		case 0:
			fmt.Printf("prime: %d\n", int32(binary.LittleEndian.Uint32(buf)))
		case 1:
			run = false
		}
	}
	outEOS.Send([]byte{1})
}

func main() {
	n := flag.Int("n", 99, "how many odd candidates to generate, starting from 3")
	flag.Parse()

	a := cspchan.New(3, 4)
	aEOS := cspchan.New(1, 1)
	b := cspchan.New(3, 4)
	bEOS := cspchan.New(3, 1)
	end := cspchan.New(0, 1)

	cspchan.Spawn(func(any) { generate(a, aEOS, 3, 2, int32(*n)) }, nil)
	cspchan.Spawn(func(any) { sieve(sieveStage{in: a, inEOS: aEOS, out: b, outEOS: bEOS, eos: end}) }, nil)
	cspchan.Spawn(func(any) { print(b, bEOS, end) }, nil)

	eofBuf := make([]byte, 1)
	end.Receive(eofBuf)
	end.Receive(eofBuf)

	aEOS.Destroy()
	a.Destroy()
	bEOS.Destroy()
	b.Destroy()
	end.Destroy()
}
