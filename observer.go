// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cspchan

import "sync"

// observerRegistry is a per-channel multiset of wake-handles belonging
// to outstanding selectors. Its lock is distinct from the owning
// channel's data lock so that a selector never has to acquire a
// channel's data lock while holding its own private lock — add/remove
// are called from select while the channel lock is not held, and
// broadcast is called by send/receive/close after releasing it, except
// by the first peer of a rendezvous, which broadcasts while still
// holding it (selectors only try-lock channel locks, so this cannot
// deadlock).
type observerRegistry struct {
	mu      sync.Mutex
	handles []*sync.Cond
}

// add registers a wake-handle as an observer of this channel. Adding
// the same handle more than once stores distinct entries: two
// selectors over the same channel are tracked independently.
func (o *observerRegistry) add(h *sync.Cond) {
	o.mu.Lock()
	o.handles = append(o.handles, h)
	o.mu.Unlock()
}

// remove deregisters one occurrence of h, matched by pointer identity.
// Every add must be balanced by exactly one remove.
func (o *observerRegistry) remove(h *sync.Cond) {
	o.mu.Lock()
	for i, x := range o.handles {
		if x == h {
			o.handles = append(o.handles[:i], o.handles[i+1:]...)
			break
		}
	}
	o.mu.Unlock()
}

// broadcast wakes every currently registered handle. Each handle's own
// mutex is acquired and released in turn so Signal is never lost to a
// handle that is between checking its predicate and calling Wait.
func (o *observerRegistry) broadcast() {
	o.mu.Lock()
	handles := append([]*sync.Cond(nil), o.handles...)
	o.mu.Unlock()
	for _, h := range handles {
		h.L.Lock()
		h.Signal()
		h.L.Unlock()
	}
}
