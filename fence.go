// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fence

import "fmt"

// Fence is a CPU-observable join point for GPU work.
//
// A Fence owns a GPU-visible counter object (the native fence), the command
// queue it is primarily associated with, and a CPU-waitable event. The
// counter value held on the CPU side only increases; the native fence's
// completed value, owned by the GPU, trails it while work is in flight.
//
// A Fence is not safe for concurrent use. All operations must be issued
// from a single goroutine, or serialized by the caller. The GPU completing
// values concurrently is fine; that is the whole point.
type Fence struct {
	queue  Queue
	native NativeFence
	event  Event
	value  uint64
	closed bool
}

// New creates a fence bound to q. The native fence object starts at 0 and
// the CPU event is created through the queue's owning device. Any partially
// created resource is released if a later step fails.
func New(q Queue) (*Fence, error) {
	if q == nil {
		return nil, ErrNilQueue
	}
	dev := q.Device()
	if dev == nil {
		return nil, ErrNilDevice
	}

	native, err := dev.CreateFence(0)
	if err != nil {
		return nil, fmt.Errorf("fence: create native fence: %w", err)
	}
	ev, err := dev.CreateEvent()
	if err != nil {
		native.Destroy()
		return nil, fmt.Errorf("fence: create event: %w", err)
	}

	return &Fence{queue: q, native: native, event: ev}, nil
}

// Value returns the last value this fence was instructed to reach.
func (f *Fence) Value() uint64 { return f.value }

// Completed returns the native fence's completed value: the highest value
// the GPU has finished. It trails Value while work is in flight.
func (f *Fence) Completed() uint64 {
	if f.closed {
		return 0
	}
	return f.native.CompletedValue()
}

// Queue returns the command queue this fence is bound to.
func (f *Fence) Queue() Queue { return f.queue }

// Signal increments the fence value by one and enqueues a signal command on
// the bound queue: the GPU sets the native fence to the new value once all
// previously enqueued work drains. Returns the value signaled. Does not
// block.
func (f *Fence) Signal() (uint64, error) {
	if f.closed {
		return 0, ErrClosed
	}
	f.value++
	if err := f.queue.Signal(f.native, f.value); err != nil {
		return 0, fmt.Errorf("fence: signal %d: %w", f.value, err)
	}
	logger().Debug("fence: signaled", "value", f.value)
	return f.value, nil
}

// SignalValue enqueues a signal for an explicit value. The value must
// exceed the current fence value; anything else is a caller bug and is
// rejected with ErrValueNotAdvancing, never silently applied.
func (f *Fence) SignalValue(value uint64) error {
	if f.closed {
		return ErrClosed
	}
	if value <= f.value {
		return fmt.Errorf("%w: have %d, got %d", ErrValueNotAdvancing, f.value, value)
	}
	f.value = value
	if err := f.queue.Signal(f.native, f.value); err != nil {
		return fmt.Errorf("fence: signal %d: %w", f.value, err)
	}
	logger().Debug("fence: signaled", "value", f.value)
	return nil
}

// GPUWait instructs the bound queue to wait for the fence's current value.
// Work enqueued on the queue after this call does not begin until the GPU
// has completed that value. Does not block the CPU.
func (f *Fence) GPUWait() error {
	return f.GPUWaitOnValue(f.queue, f.value)
}

// GPUWaitValue is GPUWait for an explicit value.
func (f *Fence) GPUWaitValue(value uint64) error {
	return f.GPUWaitOnValue(f.queue, value)
}

// GPUWaitOn instructs an arbitrary queue to wait for this fence's current
// value. The queue need not be the one the fence was constructed with; this
// is the mechanism for cross-queue and cross-device-node dependencies with
// no CPU round-trip.
func (f *Fence) GPUWaitOn(q Queue) error {
	return f.GPUWaitOnValue(q, f.value)
}

// GPUWaitOnValue is GPUWaitOn for an explicit value.
func (f *Fence) GPUWaitOnValue(q Queue, value uint64) error {
	if f.closed {
		return ErrClosed
	}
	if q == nil {
		return ErrNilQueue
	}
	if err := q.Wait(f.native, value); err != nil {
		return fmt.Errorf("fence: gpu wait for %d: %w", value, err)
	}
	return nil
}

// wait blocks the calling goroutine until the GPU has completed value.
// Returns immediately if it already has. Only one wait may be outstanding
// at a time; the single-goroutine contract of Fence guarantees that.
func (f *Fence) wait(value uint64) error {
	if f.closed {
		return ErrClosed
	}
	if f.native.CompletedValue() >= value {
		return nil
	}
	if err := f.native.OnCompletion(value, f.event); err != nil {
		return fmt.Errorf("fence: register completion of %d: %w", value, err)
	}
	logger().Debug("fence: cpu wait", "value", value)
	f.event.Wait()
	return nil
}

// Flush drains the bound queue: it signals a new value and blocks until
// the GPU has completed it, which implies all work enqueued before the
// call has finished.
func (f *Fence) Flush() error {
	v, err := f.Signal()
	if err != nil {
		return err
	}
	return f.wait(v)
}

// Close releases the CPU event and the native fence object. Close is
// idempotent; operations after Close return ErrClosed.
func (f *Fence) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	var err error
	if f.event != nil {
		err = f.event.Close()
		f.event = nil
	}
	if f.native != nil {
		f.native.Destroy()
		f.native = nil
	}
	if err != nil {
		return fmt.Errorf("fence: close event: %w", err)
	}
	return nil
}
