// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package sim provides a software model of an asynchronous GPU for the
// fence primitives.
//
// Each queue created from a [Device] executes its commands in submission
// order on a dedicated goroutine, the simulated GPU timeline. Signals
// advance simulated fences, waits stall the timeline until another fence
// catches up, and arbitrary work is submitted as plain functions standing
// in for command buffers.
//
// The package backs the fence test suite and is useful on its own for
// exercising synchronization logic without a physical adapter:
//
//	dev := sim.New()
//	defer dev.Close()
//
//	render := dev.NewQueue("render")
//	f, err := fence.New(render)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	render.Submit(func() { /* pretend GPU work */ })
//	if err := f.Flush(); err != nil {
//	    log.Fatal(err)
//	}
package sim

import (
	"errors"
	"sync"
	"time"

	"github.com/gogpu/fence"
)

// Package errors for the simulated GPU.
var (
	// ErrDeviceClosed is returned when commands are submitted to a queue
	// whose device has been closed.
	ErrDeviceClosed = errors.New("sim: device is closed")

	// ErrForeignFence is returned when a queue receives a fence that was
	// not created by a sim device.
	ErrForeignFence = errors.New("sim: fence does not belong to a sim device")
)

// Options configures a simulated device.
type Options struct {
	// Latency is an artificial delay applied before every command the
	// simulated GPU executes, modeling a GPU that lags behind CPU
	// submission. Zero means commands complete as fast as the timeline
	// goroutine runs them.
	Latency time.Duration
}

// DefaultOptions returns the default device configuration: no artificial
// latency.
func DefaultOptions() Options {
	return Options{}
}

// Device is a simulated GPU device. It owns simulated fences and the
// queues created from it.
//
// Device is safe for concurrent use.
type Device struct {
	opts Options

	mu     sync.Mutex
	queues []*Queue
	closed bool
}

// New creates a simulated device with default options.
func New() *Device {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a simulated device with the given options.
func NewWithOptions(opts Options) *Device {
	return &Device{opts: opts}
}

// CreateFence creates a simulated GPU-visible fence with the given initial
// completed value.
func (d *Device) CreateFence(initial uint64) (fence.NativeFence, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrDeviceClosed
	}
	return newFence(initial), nil
}

// CreateEvent creates a CPU-waitable event.
func (d *Device) CreateEvent() (fence.Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrDeviceClosed
	}
	return fence.NewEvent(), nil
}

// NewQueue creates a command queue whose timeline runs on its own
// goroutine. The label appears in log output.
func (d *Device) NewQueue(label string) *Queue {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	q := newQueue(d, label)
	d.queues = append(d.queues, q)
	fence.Logger().Info("sim: queue created", "queue", label)
	return q
}

// Close stops all queue timelines and marks the device unusable. Close
// blocks until every queue has drained the commands already submitted.
// Commands stalled on a GPU-side wait that can never be satisfied will
// block Close; the caller is responsible for not closing mid-dependency,
// same as with a real device.
func (d *Device) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	queues := d.queues
	d.mu.Unlock()

	for _, q := range queues {
		q.shutdown()
	}
	fence.Logger().Info("sim: device closed", "queues", len(queues))
}
