// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cspchan_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/cspchan"
	"code.hybscloud.com/iox"
)

func TestNewPanicsOnInvalidParameters(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for msgLen == 0")
		}
	}()
	cspchan.New(1, 0)
}

func TestBufferedSendReceiveFIFO(t *testing.T) {
	ch := cspchan.New(4, 4)
	for i := byte(0); i < 4; i++ {
		ch.Send([]byte{i, i, i, i})
	}
	for i := byte(0); i < 4; i++ {
		out := make([]byte, 4)
		ch.Receive(out)
		want := []byte{i, i, i, i}
		if !bytes.Equal(out, want) {
			t.Fatalf("receive %d: got %v, want %v", i, out, want)
		}
	}
}

func TestClosedIsMonotonicAndIdempotent(t *testing.T) {
	ch := cspchan.New(1, 1)
	if ch.Closed() {
		t.Fatal("freshly created channel reports closed")
	}
	ch.Close()
	ch.Close() // idempotent, must not panic or block
	if !ch.Closed() {
		t.Fatal("channel does not report closed after Close")
	}
}

func TestClosedNilChannelIsClosed(t *testing.T) {
	var ch *cspchan.Channel
	if !ch.Closed() {
		t.Fatal("nil channel must report closed")
	}
}

// TestDrainBeforeZeroOnClose is scenario S5: closing a buffered channel
// containing [7,8,9] must let Receive drain all three before it starts
// zero-filling.
func TestDrainBeforeZeroOnClose(t *testing.T) {
	ch := cspchan.New(4, 1)
	ch.Send([]byte{7})
	ch.Send([]byte{8})
	ch.Send([]byte{9})
	ch.Close()

	for _, want := range []byte{7, 8, 9} {
		out := make([]byte, 1)
		ch.Receive(out)
		if out[0] != want {
			t.Fatalf("drained value = %d, want %d", out[0], want)
		}
	}

	out := []byte{0xAA}
	ch.Receive(out)
	if out[0] != 0 {
		t.Fatalf("post-drain receive on closed channel = %d, want 0", out[0])
	}
}

func TestSendOnClosedChannelIsSilentNoop(t *testing.T) {
	ch := cspchan.New(1, 1)
	ch.Close()
	done := make(chan struct{})
	go func() {
		ch.Send([]byte{42})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("send on closed channel blocked instead of returning immediately")
	}
}

func TestBufferedSendBlocksWhenFull(t *testing.T) {
	ch := cspchan.New(1, 1)
	ch.Send([]byte{1})

	sent := make(chan struct{})
	go func() {
		ch.Send([]byte{2}) // must block until a receive frees a slot
		close(sent)
	}()

	select {
	case <-sent:
		t.Fatal("second send on a full capacity-1 channel did not block")
	case <-time.After(50 * time.Millisecond):
	}

	out := make([]byte, 1)
	ch.Receive(out)
	if out[0] != 1 {
		t.Fatalf("first receive = %d, want 1", out[0])
	}

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("second send did not unblock after receive freed a slot")
	}
}

func TestTrySendTryReceiveBackpressure(t *testing.T) {
	ch := cspchan.New(1, 1)

	if err := ch.TrySend([]byte{9}); err != nil {
		t.Fatalf("TrySend on empty-slot channel: %v", err)
	}
	if err := ch.TrySend([]byte{10}); !errors.Is(err, iox.ErrWouldBlock) {
		t.Fatalf("TrySend on full channel = %v, want iox.ErrWouldBlock", err)
	}

	out := make([]byte, 1)
	if err := ch.TryReceive(out); err != nil {
		t.Fatalf("TryReceive on non-empty channel: %v", err)
	}
	if out[0] != 9 {
		t.Fatalf("TryReceive out = %d, want 9", out[0])
	}
	if err := ch.TryReceive(out); !errors.Is(err, iox.ErrWouldBlock) {
		t.Fatalf("TryReceive on empty channel = %v, want iox.ErrWouldBlock", err)
	}
}

func TestDestroyClosesAndReleasesBuffer(t *testing.T) {
	ch := cspchan.New(2, 1)
	ch.Send([]byte{1})
	ch.Destroy()
	if !ch.Closed() {
		t.Fatal("Destroy must close the channel")
	}
}

func TestChannelSerialIsUniqueAndMonotonic(t *testing.T) {
	a := cspchan.New(1, 1)
	b := cspchan.New(1, 1)
	if b.Serial() <= a.Serial() {
		t.Fatalf("serial not monotonic: a=%d b=%d", a.Serial(), b.Serial())
	}
}
