// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cspchan

import (
	"math/rand"
	"sync"

	"code.hybscloud.com/iox"
)

// candidate is one entry of a select's combined receive|send array.
type candidate struct {
	ch     *Channel
	buf    []byte
	isRecv bool
}

// candidates builds the combined receive|send array in the order the
// public API documents: receives first (indices [0,len(recv))), then
// sends (indices [len(recv), len(recv)+len(send))).
func candidates(recv []*Channel, recvBufs [][]byte, send []*Channel, sendBufs [][]byte) []candidate {
	out := make([]candidate, 0, len(recv)+len(send))
	for i, c := range recv {
		out = append(out, candidate{ch: c, buf: recvBufs[i], isRecv: true})
	}
	for i, c := range send {
		out = append(out, candidate{ch: c, buf: sendBufs[i], isRecv: false})
	}
	return out
}

// ready reports whether cand's channel, already try-locked by the
// caller, is ready for the operation cand describes.
func ready(cand candidate) bool {
	c := cand.ch
	if c.capacity > 0 {
		if cand.isRecv {
			return !c.buf.empty()
		}
		return !c.buf.full()
	}
	if cand.isRecv {
		return c.phase == oneWaiting && !c.expectingSender
	}
	return c.phase == oneWaiting && c.expectingSender
}

// scan tries every candidate once with a try-lock. Ready candidates are
// left locked and their indices returned in lockedReady; all other
// locks taken during the scan are released before scan returns.
// closedCount is the number of candidates whose channel was already
// closed.
func scan(cands []candidate) (lockedReady []int, closedCount int) {
	for i, cand := range cands {
		if cand.ch.Closed() {
			closedCount++
			continue
		}
		if !cand.ch.mu.TryLock() {
			continue
		}
		if ready(cand) {
			lockedReady = append(lockedReady, i)
			continue
		}
		cand.ch.mu.Unlock()
	}
	return lockedReady, closedCount
}

// commit performs the chosen candidate's send/receive, assuming its
// channel is already locked, and releases the lock.
func commit(cand candidate) {
	c := cand.ch
	if c.capacity > 0 {
		if cand.isRecv {
			c.buf.pop(cand.buf)
			c.mu.Unlock()
			c.observers.broadcast()
			c.notFull.Signal()
		} else {
			c.buf.push(cand.buf)
			c.mu.Unlock()
			c.observers.broadcast()
			c.notEmpty.Signal()
		}
		return
	}
	if cand.isRecv {
		copy(cand.buf, c.rendezvousSlot)
	} else {
		copy(c.rendezvousSlot, cand.buf)
	}
	c.phase = handoffDone
	c.mu.Unlock()
	c.observers.broadcast()
	c.handoff.Signal()
}

// chooseAndCommit picks a uniformly random ready candidate, releases
// the locks held on the others, commits the winner, and returns its
// combined index.
func chooseAndCommit(cands []candidate, lockedReady []int) int {
	winner := lockedReady[rand.Intn(len(lockedReady))]
	for _, idx := range lockedReady {
		if idx == winner {
			continue
		}
		cands[idx].ch.mu.Unlock()
	}
	commit(cands[winner])
	return winner
}

// Select blocks until some candidate receive or send is ready, commits
// exactly one, and returns its combined index (receives are indexed
// [0,len(recv)), sends [len(recv), len(recv)+len(send))). It returns -1
// with ErrAllClosed only if every candidate channel is closed.
//
// Ties among simultaneously-ready candidates are broken uniformly at
// random; closed channels are never candidates for readiness.
func Select(recv []*Channel, recvBufs [][]byte, send []*Channel, sendBufs [][]byte) (int, error) {
	cands := candidates(recv, recvBufs, send, sendBufs)

	var wakeMu sync.Mutex
	wake := sync.NewCond(&wakeMu)
	for _, cand := range cands {
		cand.ch.observers.add(wake)
	}
	defer func() {
		for _, cand := range cands {
			cand.ch.observers.remove(wake)
		}
	}()

	wakeMu.Lock()
	defer wakeMu.Unlock()
	for {
		lockedReady, closedCount := scan(cands)
		if len(lockedReady) > 0 {
			return chooseAndCommit(cands, lockedReady), nil
		}
		if closedCount == len(cands) {
			return -1, ErrAllClosed
		}
		wake.Wait()
	}
}

// TrySelect performs a single non-blocking snapshot scan of the given
// candidates: it commits a uniformly random ready candidate and returns
// its combined index, or returns -1 with iox.ErrWouldBlock if none was
// ready at the moment of the scan. Unlike Select, it registers no
// observer — a point-in-time check has nothing to deregister.
func TrySelect(recv []*Channel, recvBufs [][]byte, send []*Channel, sendBufs [][]byte) (int, error) {
	cands := candidates(recv, recvBufs, send, sendBufs)
	lockedReady, _ := scan(cands)
	if len(lockedReady) == 0 {
		return -1, iox.ErrWouldBlock
	}
	return chooseAndCommit(cands, lockedReady), nil
}
