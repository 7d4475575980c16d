// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cspchan

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Channel is an opaque, thread-safe handle over which tasks exchange
// fixed-width messages. A Channel created with capacity 0 is an
// unbuffered rendezvous channel; with capacity > 0 it is a bounded FIFO
// buffered channel. Channels are safe to share across any number of
// goroutines without further synchronization.
type Channel struct {
	msgLen    int
	capacity  int
	closed    atomix.Bool
	observers observerRegistry

	mu sync.Mutex

	// buffered mode only.
	buf      *ringBuffer
	notFull  *sync.Cond
	notEmpty *sync.Cond

	// unbuffered (rendezvous) mode only.
	phase           barrierPhase
	expectingSender bool
	rendezvousSlot  []byte
	handoff         *sync.Cond
	chain           *sync.Cond

	serial Serial
}

// New creates a channel suited to transport messages of msgLen bytes.
// capacity == 0 yields an unbuffered (rendezvous) channel; capacity > 0
// yields a buffered FIFO channel of that depth. msgLen must be >= 1 and
// capacity must be >= 0.
func New(capacity, msgLen int) *Channel {
	if msgLen < 1 {
		panic("cspchan: msgLen must be >= 1")
	}
	if capacity < 0 {
		panic("cspchan: capacity must be >= 0")
	}
	c := &Channel{
		msgLen:   msgLen,
		capacity: capacity,
		serial:   nextChannelSerial(),
	}
	if capacity > 0 {
		c.buf = newRingBuffer(capacity, msgLen)
		c.notFull = sync.NewCond(&c.mu)
		c.notEmpty = sync.NewCond(&c.mu)
	} else {
		c.handoff = sync.NewCond(&c.mu)
		c.chain = sync.NewCond(&c.mu)
	}
	return c
}

// Serial returns the monotonically increasing id assigned to this
// channel at creation, for logging and debugging. It carries no
// protocol meaning.
func (c *Channel) Serial() Serial { return c.serial }

// MsgLen returns the fixed message width this channel was created with.
func (c *Channel) MsgLen() int { return c.msgLen }

// Capacity returns the channel's buffered depth, or 0 for an unbuffered
// (rendezvous) channel.
func (c *Channel) Capacity() int { return c.capacity }

// Close is the only cancellation primitive: it is a monotonic, at-most
// once transition that wakes every waiter on the channel and every
// registered observer. Close is idempotent — calling it twice is
// indistinguishable from calling it once. Close does not discard
// messages already enqueued on a buffered channel; Receive drains them
// before it starts returning zero-filled results.
func (c *Channel) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	c.observers.broadcast()
	c.mu.Lock()
	if c.capacity > 0 {
		c.notFull.Broadcast()
		c.notEmpty.Broadcast()
	} else {
		c.handoff.Broadcast()
		c.chain.Broadcast()
	}
	c.mu.Unlock()
}

// Closed reports whether Close has been called on this channel. A nil
// Channel is considered closed.
func (c *Channel) Closed() bool {
	if c == nil {
		return true
	}
	return c.closed.Load()
}

// Destroy releases the resources owned by a channel that has already
// been drained of interested tasks. It first performs a Close (a no-op
// if already closed) to release any waiters, then drops the buffer so
// it can be garbage collected. Calling Destroy while another task is
// still inside Send, Receive, or Select on this channel is undefined —
// callers must establish a quiescence barrier (typically close plus an
// acknowledgement channel) before destroying.
func (c *Channel) Destroy() {
	c.Close()
	c.mu.Lock()
	c.buf = nil
	c.mu.Unlock()
}

// Send blocks until msg (exactly MsgLen bytes) is accepted by a
// receiver or the channel closes. Sending on a closed channel is a
// silent no-op.
func (c *Channel) Send(msg []byte) {
	if c.capacity > 0 {
		c.bufferedSend(msg)
		return
	}
	c.rendezvous(msg, true)
}

// Receive blocks until a value is received into out (exactly MsgLen
// bytes of writable space) or the channel closes. Once a buffered
// channel is closed and drained, and for any closed unbuffered
// channel, Receive zero-fills out and returns.
func (c *Channel) Receive(out []byte) {
	if c.capacity > 0 {
		c.bufferedReceive(out)
		return
	}
	c.rendezvous(out, false)
}

func (c *Channel) bufferedSend(msg []byte) {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return
	}
	for !c.closed.Load() && c.buf.full() {
		c.notFull.Wait()
	}
	if c.closed.Load() {
		c.mu.Unlock()
		return
	}
	c.buf.push(msg)
	c.mu.Unlock()
	c.observers.broadcast()
	c.notEmpty.Signal()
}

func (c *Channel) bufferedReceive(out []byte) {
	c.mu.Lock()
	if c.closed.Load() && c.buf.empty() {
		c.mu.Unlock()
		zero(out)
		return
	}
	for !c.closed.Load() && c.buf.empty() {
		c.notEmpty.Wait()
	}
	if c.closed.Load() && c.buf.empty() {
		c.mu.Unlock()
		zero(out)
		return
	}
	c.buf.pop(out)
	c.mu.Unlock()
	c.observers.broadcast()
	c.notFull.Signal()
}

// TrySend attempts to hand msg to a waiting receiver (rendezvous mode)
// or enqueue it (buffered mode) without blocking. It returns
// iox.ErrWouldBlock if the channel cannot currently accept the send,
// or nil on success. It is a silent no-op (nil, no effect) on a closed
// channel, matching Send.
func (c *Channel) TrySend(msg []byte) error {
	if !c.mu.TryLock() {
		return iox.ErrWouldBlock
	}
	if c.closed.Load() {
		c.mu.Unlock()
		return nil
	}
	if c.capacity > 0 {
		if c.buf.full() {
			c.mu.Unlock()
			return iox.ErrWouldBlock
		}
		c.buf.push(msg)
		c.mu.Unlock()
		c.observers.broadcast()
		c.notEmpty.Signal()
		return nil
	}
	if c.phase != oneWaiting || !c.expectingSender {
		c.mu.Unlock()
		return iox.ErrWouldBlock
	}
	copy(c.rendezvousSlot, msg)
	c.phase = handoffDone
	c.mu.Unlock()
	c.observers.broadcast()
	c.handoff.Signal()
	return nil
}

// TryReceive attempts to take a value from a waiting sender (rendezvous
// mode) or pop the head of the buffer (buffered mode) without blocking.
// It returns iox.ErrWouldBlock if no value is currently available. On a
// closed and drained channel it zero-fills out and returns nil,
// matching Receive.
func (c *Channel) TryReceive(out []byte) error {
	if !c.mu.TryLock() {
		return iox.ErrWouldBlock
	}
	if c.closed.Load() && (c.capacity == 0 || c.buf.empty()) {
		c.mu.Unlock()
		zero(out)
		return nil
	}
	if c.capacity > 0 {
		if c.buf.empty() {
			c.mu.Unlock()
			return iox.ErrWouldBlock
		}
		c.buf.pop(out)
		c.mu.Unlock()
		c.observers.broadcast()
		c.notFull.Signal()
		return nil
	}
	if c.phase != oneWaiting || c.expectingSender {
		c.mu.Unlock()
		return iox.ErrWouldBlock
	}
	copy(out, c.rendezvousSlot)
	c.phase = handoffDone
	c.mu.Unlock()
	c.observers.broadcast()
	c.handoff.Signal()
	return nil
}

// zero fills b with zero bytes.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
