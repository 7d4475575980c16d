// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cspchan provides CSP-style channels: opaque, thread-safe
// handles over which independently scheduled tasks exchange fixed-width
// messages by rendezvous (unbuffered) or bounded FIFO (buffered), with
// closure signaling and a randomized multi-way select over sets of
// candidate sends and receives.
//
// # Architecture
//
//   - Storage: a fixed-capacity byte ring buffer for buffered channels
//     ([ringBuffer]); a single borrowed rendezvous slot for unbuffered
//     channels.
//   - Synchronization: one [sync.Mutex] and two [sync.Cond] per channel,
//     plus a per-channel [observerRegistry] that selectors register with
//     so a state change on any candidate channel wakes them.
//   - Closure: [Channel.Close] is a monotonic, idempotent transition
//     broadcast to every waiter and every registered observer.
//   - Selection: [Select] and [TrySelect] scan candidate channels with
//     try-lock so no single slow channel can stall the scan, then commit
//     a uniformly random ready candidate.
//
// # API Topologies
//
//   - Point-to-point: [New], [Channel.Send], [Channel.Receive],
//     [Channel.Close], [Channel.Closed], [Channel.Destroy].
//   - Non-blocking: [Channel.TrySend], [Channel.TryReceive] return
//     [code.hybscloud.com/iox.ErrWouldBlock] on backpressure instead of
//     blocking.
//   - Multi-way: [Select] (blocking) and [TrySelect] (non-blocking,
//     single snapshot, no observer registration).
//   - Tasks: [Spawn], [Join], [Sleep] — collaborators this package
//     consumes but does not own; swap them for a thread pool without
//     touching the channel engine.
//
// # Example
//
//	ch := cspchan.New(4, 4) // capacity 4, 4-byte messages
//	go func() {
//		for i := int32(0); i < 10; i++ {
//			buf := make([]byte, 4)
//			binary.LittleEndian.PutUint32(buf, uint32(i))
//			ch.Send(buf)
//		}
//		ch.Close()
//	}()
//	out := make([]byte, 4)
//	for {
//		ch.Receive(out)
//		if ch.Closed() {
//			break
//		}
//	}
package cspchan
