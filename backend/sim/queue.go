// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sim

import (
	"sync"
	"time"

	"github.com/gogpu/fence"
)

// Queue is a simulated GPU command queue.
//
// Commands submitted to the queue execute in submission order on the
// queue's timeline goroutine. Submission never blocks the CPU; the backlog
// is unbounded, exactly like a real queue that has not been throttled.
// That is what [fence.LinearFence] is for.
//
// Queue is safe for concurrent use.
type Queue struct {
	dev   *Device
	label string

	mu       sync.Mutex
	wake     *sync.Cond
	commands []func()
	closing  bool

	done chan struct{} // closed when the timeline goroutine exits
}

func newQueue(d *Device, label string) *Queue {
	q := &Queue{
		dev:   d,
		label: label,
		done:  make(chan struct{}),
	}
	q.wake = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// run is the queue's timeline: the simulated GPU executing commands in
// submission order.
func (q *Queue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.commands) == 0 && !q.closing {
			q.wake.Wait()
		}
		if len(q.commands) == 0 && q.closing {
			q.mu.Unlock()
			return
		}
		cmd := q.commands[0]
		q.commands = q.commands[1:]
		q.mu.Unlock()

		if q.dev.opts.Latency > 0 {
			time.Sleep(q.dev.opts.Latency)
		}
		cmd()
	}
}

func (q *Queue) enqueue(cmd func()) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closing {
		return ErrDeviceClosed
	}
	q.commands = append(q.commands, cmd)
	q.wake.Signal()
	return nil
}

// shutdown lets the timeline drain its backlog, then stops it.
func (q *Queue) shutdown() {
	q.mu.Lock()
	q.closing = true
	q.wake.Signal()
	q.mu.Unlock()
	<-q.done
}

// Label returns the queue's label.
func (q *Queue) Label() string { return q.label }

// Device returns the simulated device that owns this queue.
func (q *Queue) Device() fence.Device { return q.dev }

// Submit enqueues arbitrary work on the timeline, the simulated
// equivalent of submitting a command buffer. The function runs on the
// timeline goroutine; Submit itself does not block.
func (q *Queue) Submit(work func()) error {
	return q.enqueue(work)
}

// Signal enqueues a command that sets f to value once all previously
// submitted work on this queue has executed.
func (q *Queue) Signal(f fence.NativeFence, value uint64) error {
	sf, ok := f.(*Fence)
	if !ok {
		return ErrForeignFence
	}
	return q.enqueue(func() {
		sf.complete(value)
		fence.Logger().Debug("sim: signaled", "queue", q.label, "value", value)
	})
}

// Wait enqueues a barrier: the timeline stalls until f reaches value.
// Work submitted after the call does not execute before the producing
// queue signals, giving a real cross-timeline ordering edge with no CPU
// involvement.
func (q *Queue) Wait(f fence.NativeFence, value uint64) error {
	sf, ok := f.(*Fence)
	if !ok {
		return ErrForeignFence
	}
	return q.enqueue(func() {
		sf.await(value)
	})
}
