// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fence

// Queue is a GPU command queue capability.
//
// Implementations enqueue commands that the GPU executes asynchronously in
// submission order. Neither Signal nor Wait blocks the calling goroutine;
// they only append to the queue's timeline.
type Queue interface {
	// Device returns the device that owns this queue. A Fence constructed
	// against the queue creates its native fence and CPU event through this
	// device.
	Device() Device

	// Signal enqueues a command instructing the GPU to set f to value once
	// all work previously enqueued on this queue has finished executing.
	Signal(f NativeFence, value uint64) error

	// Wait enqueues a barrier: the GPU does not begin any work enqueued on
	// this queue after the call until f reaches value. The fence may belong
	// to a different queue or device node.
	Wait(f NativeFence, value uint64) error
}

// Device is the factory half of the execution environment: it creates the
// native fence and CPU event objects a Fence owns.
type Device interface {
	// CreateFence creates a GPU-visible fence object with the given initial
	// completed value.
	CreateFence(initial uint64) (NativeFence, error)

	// CreateEvent creates a CPU-waitable event in the unsignaled state.
	CreateEvent() (Event, error)
}

// NativeFence is the underlying GPU-visible synchronization object. Its
// completed value is owned by the GPU: it trails the values signaled on the
// queue while work is in flight and never exceeds the highest value ever
// signaled.
//
// Implementations must be safe for concurrent use; the GPU side completes
// values while the CPU side queries and registers callbacks.
type NativeFence interface {
	// CompletedValue returns the highest value the GPU has completed.
	CompletedValue() uint64

	// OnCompletion arranges for ev to be set once the completed value
	// reaches value. If it already has, ev is set before OnCompletion
	// returns. At most one registration is outstanding per Fence; the
	// Fence serializes its calls.
	OnCompletion(value uint64, ev Event) error

	// Destroy releases the native object. The fence must not be used
	// afterwards.
	Destroy()
}

// Event is an OS-level waitable handle with auto-reset semantics: one Wait
// consumes one Set, and a Set while already signaled coalesces.
type Event interface {
	// Set signals the event, releasing one waiter. Never blocks.
	Set()

	// Wait blocks the calling goroutine until the event is signaled or
	// closed, then resets it.
	Wait()

	// Close releases the handle. Pending and future Waits return.
	Close() error
}
