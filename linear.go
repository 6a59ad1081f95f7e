// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fence

import "fmt"

// LinearFence bounds how far the CPU may run ahead of the GPU.
//
// It composes a Fence with a fixed-size ring of previously signaled values.
// Each ring slot stands for one "generation" of in-flight resources, such
// as a per-frame command allocator set or upload buffer. Before a slot is
// reused, Next waits for the value recorded there on its previous use, so
// the caller never touches a resource generation the GPU may still be
// reading.
//
// Like Fence, a LinearFence assumes a single submitting goroutine.
type LinearFence struct {
	*Fence
	history []uint64
	cursor  int
}

// NewLinear creates a linear fence bound to q with a ring of depth slots.
// Depth is the number of independent in-flight generations the caller wants
// to allow and must be at least 1.
func NewLinear(q Queue, depth int) (*LinearFence, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	f, err := New(q)
	if err != nil {
		return nil, err
	}
	return &LinearFence{
		Fence:   f,
		history: make([]uint64, depth),
	}, nil
}

// Depth returns the ring capacity chosen at construction.
func (l *LinearFence) Depth() int { return len(l.history) }

// Next advances to the next ring slot, blocking until the GPU has passed
// the signal value recorded the last time that slot was used.
//
// The current fence value is stored in the outgoing slot, the cursor wraps
// forward, and the call then waits on the oldest value in the ring. If the
// GPU has already completed it, Next returns immediately. Slots start at
// the fence's initial value, so the first calls do not block; throttling
// becomes meaningful once the caller has issued at least one Signal per
// generation.
func (l *LinearFence) Next() error {
	if l.closed {
		return ErrClosed
	}

	l.history[l.cursor] = l.value
	l.cursor = (l.cursor + 1) % len(l.history)

	pending := l.history[l.cursor]
	logger().Debug("fence: ring advance", "slot", l.cursor, "pending", pending)
	return l.wait(pending)
}
