// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fence"
)

// pendingWait is a recorded queue-side dependency, enforced at the next
// submission.
type pendingWait struct {
	f     *Fence
	value uint64
}

// Queue adapts a HAL queue to the fence.Queue capability.
//
// Signal submits an empty batch and records the returned submission index
// against the signaled value; prior work drains before the submission
// completes. Wait records the dependency and enforces it before the next
// submission, as described in the package documentation.
//
// Queue serializes submissions internally, but the Fence primitives built
// on top of it still assume a single submitting goroutine.
type Queue struct {
	dev *Device
	hal HALQueue

	mu      sync.Mutex
	pending []pendingWait
}

// Device returns the owning device adapter.
func (q *Queue) Device() fence.Device { return q.dev }

// Signal enqueues a signal of f to value after all prior work on the
// queue. The HAL signals fences internally per submission, so the signal
// is an empty submission whose returned index is recorded against value.
func (q *Queue) Signal(nf fence.NativeFence, value uint64) error {
	f, ok := nf.(*Fence)
	if !ok {
		return ErrForeignFence
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.drainPendingLocked(); err != nil {
		return err
	}
	idx, err := q.hal.Submit(nil)
	if err != nil {
		return fmt.Errorf("wgpu: submit signal %d: %w", value, err)
	}
	f.noteSubmitted(value, idx)
	fence.Logger().Debug("wgpu: signal submitted", "value", value, "submission", idx)
	return nil
}

// Wait records a dependency: no work submitted through this adapter after
// the call proceeds before f reaches value.
func (q *Queue) Wait(nf fence.NativeFence, value uint64) error {
	f, ok := nf.(*Fence)
	if !ok {
		return ErrForeignFence
	}
	q.mu.Lock()
	q.pending = append(q.pending, pendingWait{f: f, value: value})
	q.mu.Unlock()
	return nil
}

// SubmitBuffers submits recorded command buffers through the adapter,
// honoring any dependencies recorded by Wait.
func (q *Queue) SubmitBuffers(buffers []hal.CommandBuffer) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.drainPendingLocked(); err != nil {
		return err
	}
	if _, err := q.hal.Submit(buffers); err != nil {
		return fmt.Errorf("wgpu: submit %d buffers: %w", len(buffers), err)
	}
	return nil
}

// drainPendingLocked blocks until every recorded dependency is satisfied.
func (q *Queue) drainPendingLocked() error {
	for _, w := range q.pending {
		if err := w.f.blockUntil(w.value); err != nil {
			return fmt.Errorf("wgpu: wait for %d: %w", w.value, err)
		}
	}
	q.pending = q.pending[:0]
	return nil
}
