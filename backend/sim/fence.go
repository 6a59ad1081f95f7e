// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sim

import (
	"sync"

	"github.com/gogpu/fence"
)

// watcher is a pending completion callback: ev fires once the completed
// value reaches value.
type watcher struct {
	value uint64
	ev    fence.Event
}

// Fence is a simulated GPU-visible fence object. The completed value is
// advanced by queue timelines and observed by the CPU, so all state is
// guarded by a mutex; timelines stalled on a GPU-side wait block on the
// condition variable.
type Fence struct {
	mu        sync.Mutex
	cond      *sync.Cond
	completed uint64
	watchers  []watcher
	destroyed bool
}

func newFence(initial uint64) *Fence {
	f := &Fence{completed: initial}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// CompletedValue returns the highest value the simulated GPU has completed.
func (f *Fence) CompletedValue() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

// OnCompletion registers ev to fire once the completed value reaches value.
// If it already has, ev is set immediately.
func (f *Fence) OnCompletion(value uint64, ev fence.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completed >= value {
		ev.Set()
		return nil
	}
	f.watchers = append(f.watchers, watcher{value: value, ev: ev})
	return nil
}

// Destroy drops all pending watchers and wakes stalled timelines so they
// do not leak. A destroyed fence reports its last completed value.
func (f *Fence) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.destroyed {
		return
	}
	f.destroyed = true
	for _, w := range f.watchers {
		w.ev.Set()
	}
	f.watchers = nil
	f.cond.Broadcast()
}

// complete advances the completed value to at least value, fires watchers
// whose values are now reached, and wakes stalled timelines. Called from
// queue timeline goroutines.
func (f *Fence) complete(value uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if value <= f.completed {
		return
	}
	f.completed = value

	kept := f.watchers[:0]
	for _, w := range f.watchers {
		if w.value <= f.completed {
			w.ev.Set()
		} else {
			kept = append(kept, w)
		}
	}
	f.watchers = kept
	f.cond.Broadcast()
}

// await blocks the calling timeline until the completed value reaches
// value or the fence is destroyed. This is the GPU-side wait.
func (f *Fence) await(value uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for f.completed < value && !f.destroyed {
		f.cond.Wait()
	}
}
