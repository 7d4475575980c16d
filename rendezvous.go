// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cspchan

// barrierPhase is the state of the rendezvous sub-protocol inside an
// unbuffered Channel.
type barrierPhase int

const (
	// idle: no peer is currently waiting.
	idle barrierPhase = iota
	// oneWaiting: the first-arrived peer is parked, advertising the
	// polarity (sender/receiver) it expects from the second peer.
	oneWaiting
	// handoffDone: the data copy has happened; a short transient so a
	// third arrival cannot barge ahead of the first peer's resumption.
	handoffDone
)

// rendezvous pairs exactly one sender with exactly one receiver on an
// unbuffered channel and rejects would-be peers of the wrong polarity.
// buf is the caller's message buffer: for a sender it holds the bytes
// to deliver, for a receiver it is the destination to fill. c.mu must
// not be held by the caller.
func (c *Channel) rendezvous(buf []byte, isSender bool) {
	c.mu.Lock()
	for {
		if c.closed.Load() {
			c.mu.Unlock()
			if !isSender {
				zero(buf)
			}
			return
		}
		switch c.phase {
		case idle:
			c.phase = oneWaiting
			c.expectingSender = !isSender
			c.rendezvousSlot = buf
			c.observers.broadcast()
			for !c.closed.Load() && c.phase != handoffDone {
				c.handoff.Wait()
			}
			success := c.phase == handoffDone
			c.phase = idle
			c.rendezvousSlot = nil
			c.mu.Unlock()
			c.chain.Broadcast()
			if !success && !isSender {
				zero(buf)
			}
			return
		case oneWaiting:
			if c.expectingSender != isSender {
				c.chain.Wait()
				continue
			}
			if isSender {
				copy(c.rendezvousSlot, buf)
			} else {
				copy(buf, c.rendezvousSlot)
			}
			c.phase = handoffDone
			c.mu.Unlock()
			c.handoff.Signal()
			return
		case handoffDone:
			c.chain.Wait()
			continue
		}
	}
}
