// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"sync"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fence"
)

// submission records that a user fence value completes at a HAL
// submission index.
type submission struct {
	value uint64
	index uint64
}

// Fence adapts a HAL fence to the fence.NativeFence capability.
//
// The HAL signals its fences internally on queue submission and reports
// progress in submission indexes, not user values, so the adapter keeps an
// ordered list of (value, submission index) pairs recorded by the queue.
// CompletedValue and the waits translate a user value into the submission
// index it was signaled at and drive Device.Wait with that.
type Fence struct {
	dev *Device
	hal hal.Fence

	mu        sync.Mutex
	signaled  *sync.Cond // a value gained a submission index, or Destroy
	completed uint64     // highest user value observed complete
	pending   []submission
	destroyed bool
}

func newFence(d *Device, hf hal.Fence) *Fence {
	f := &Fence{dev: d, hal: hf}
	f.signaled = sync.NewCond(&f.mu)
	return f
}

// CompletedValue returns the highest user value the GPU has completed,
// probing the oldest outstanding submissions with zero-timeout waits.
func (f *Fence) CompletedValue() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.pending) > 0 {
		ok, err := f.dev.hal.Wait(f.hal, f.pending[0].index, 0)
		if err != nil || !ok {
			break
		}
		f.completed = f.pending[0].value
		f.pending = f.pending[1:]
	}
	return f.completed
}

// OnCompletion sets ev once the fence reaches value. The HAL wait is
// blocking, so the registration runs on its own goroutine; if the fence is
// destroyed first, ev is still set so no waiter leaks.
func (f *Fence) OnCompletion(value uint64, ev fence.Event) error {
	go func() {
		if err := f.blockUntil(value); err != nil {
			fence.Logger().Warn("wgpu: completion wait failed", "value", value, "error", err)
		}
		ev.Set()
	}()
	return nil
}

// Destroy releases the HAL fence and wakes every outstanding wait.
func (f *Fence) Destroy() {
	f.mu.Lock()
	if f.destroyed {
		f.mu.Unlock()
		return
	}
	f.destroyed = true
	f.signaled.Broadcast()
	f.mu.Unlock()
	f.dev.hal.DestroyFence(f.hal)
}

// noteSubmitted records that value was signaled at submission index.
// Called by the queue under its own lock; values arrive in increasing
// order per the fence contract.
func (f *Fence) noteSubmitted(value, index uint64) {
	f.mu.Lock()
	f.pending = append(f.pending, submission{value: value, index: index})
	f.signaled.Broadcast()
	f.mu.Unlock()
}

// noteCompleted records an observed completion, dropping the submissions
// it covers.
func (f *Fence) noteCompleted(value uint64) {
	f.mu.Lock()
	if value > f.completed {
		f.completed = value
		for len(f.pending) > 0 && f.pending[0].value <= value {
			f.pending = f.pending[1:]
		}
	}
	f.mu.Unlock()
}

// indexForLocked returns the submission index to wait on for value: the
// first recorded submission at or past it. Submission indexes are ordered,
// so completion of a later submission implies value has been passed.
func (f *Fence) indexForLocked(value uint64) (uint64, bool) {
	for _, s := range f.pending {
		if s.value >= value {
			return s.index, true
		}
	}
	return 0, false
}

// blockUntil waits until the fence reaches value, looping the HAL wait on
// bounded slices. A value that has not been signaled yet blocks until the
// queue submits it.
func (f *Fence) blockUntil(value uint64) error {
	f.mu.Lock()
	for {
		if f.completed >= value {
			f.mu.Unlock()
			return nil
		}
		if f.destroyed {
			f.mu.Unlock()
			return ErrFenceDestroyed
		}
		if idx, ok := f.indexForLocked(value); ok {
			f.mu.Unlock()
			for {
				ok, err := f.dev.hal.Wait(f.hal, idx, waitSlice)
				if err != nil {
					return err
				}
				if ok {
					f.noteCompleted(value)
					return nil
				}
			}
		}
		f.signaled.Wait()
	}
}
