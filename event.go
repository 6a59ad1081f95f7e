// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fence

import "sync"

// autoResetEvent is a process-local Event backed by a buffered channel.
// A Set while the event is already signaled coalesces, matching the
// auto-reset semantics of an OS event handle.
type autoResetEvent struct {
	signal chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewEvent returns a process-local auto-reset Event.
//
// Backends whose execution environment has no native waitable handle (the
// simulated GPU, the wgpu HAL adapter) use this as their Event capability.
// Backends wrapping an OS primitive provide their own implementation.
func NewEvent() Event {
	return &autoResetEvent{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (e *autoResetEvent) Set() {
	select {
	case e.signal <- struct{}{}:
	default:
		// Already signaled; coalesce.
	}
}

func (e *autoResetEvent) Wait() {
	select {
	case <-e.signal:
	case <-e.done:
	}
}

func (e *autoResetEvent) Close() error {
	e.once.Do(func() { close(e.done) })
	return nil
}
