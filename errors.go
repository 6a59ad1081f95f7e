// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fence

import "errors"

// Package errors for the fence primitives.
var (
	// ErrNilQueue is returned when a fence is constructed or asked to wait
	// on a nil queue.
	ErrNilQueue = errors.New("fence: queue is nil")

	// ErrNilDevice is returned when the queue reports no owning device.
	ErrNilDevice = errors.New("fence: queue has no device")

	// ErrClosed is returned by operations on a closed fence.
	ErrClosed = errors.New("fence: fence is closed")

	// ErrValueNotAdvancing is returned when an explicit signal value does
	// not exceed the fence's current value. The fence counter is
	// monotonically increasing; a stale value indicates a caller bug.
	ErrValueNotAdvancing = errors.New("fence: signal value does not advance the fence")

	// ErrInvalidDepth is returned when a LinearFence is constructed with a
	// ring depth below 1.
	ErrInvalidDepth = errors.New("fence: ring depth must be at least 1")
)
