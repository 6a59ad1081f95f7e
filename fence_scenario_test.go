// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fence_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/fence"
	"github.com/gogpu/fence/backend/sim"
)

// These tests run the primitives against the simulated GPU backend, where
// queues really execute asynchronously and waits really block.

func TestScenario_FlushDrainsQueue(t *testing.T) {
	dev := sim.New()
	defer dev.Close()
	q := dev.NewQueue("render")

	f, err := fence.New(q)
	require.NoError(t, err)
	defer f.Close()

	var executed atomic.Int32
	for range 5 {
		require.NoError(t, q.Submit(func() { executed.Add(1) }))
	}

	require.NoError(t, f.Flush())

	// Every piece of work enqueued before Flush has finished, and the value
	// Flush signaled is observed complete.
	assert.Equal(t, int32(5), executed.Load())
	assert.GreaterOrEqual(t, f.Completed(), f.Value())
}

func TestScenario_SignalSequenceAndIndependentCompletion(t *testing.T) {
	// Three unspecified-value signals produce 1, 2, 3. A CPU wait for 2 is
	// released once the GPU reaches 2, independent of 3 still being held
	// back.
	dev := sim.New()
	defer dev.Close()
	q := dev.NewQueue("render")

	f, err := fence.New(q)
	require.NoError(t, err)
	defer f.Close()

	// Hold the GPU before the third signal.
	gate := make(chan struct{})
	v1, err := f.Signal()
	require.NoError(t, err)
	v2, err := f.Signal()
	require.NoError(t, err)
	require.NoError(t, q.Submit(func() { <-gate }))
	v3, err := f.Signal()
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{v1, v2, v3})

	// The GPU passes 2 while 3 stays blocked behind the gate.
	require.Eventually(t, func() bool { return f.Completed() >= 2 },
		time.Second, time.Millisecond)
	assert.Less(t, f.Completed(), uint64(3))

	close(gate)
	require.Eventually(t, func() bool { return f.Completed() >= 3 },
		time.Second, time.Millisecond)
}

func TestScenario_LinearFenceThrottles(t *testing.T) {
	// Depth 2: the second Next must not return until the GPU completes the
	// value recorded at the first call.
	dev := sim.New()
	defer dev.Close()
	q := dev.NewQueue("render")

	lf, err := fence.NewLinear(q, 2)
	require.NoError(t, err)
	defer lf.Close()

	// Gate the GPU so nothing completes.
	gate := make(chan struct{})
	require.NoError(t, q.Submit(func() { <-gate }))

	_, err = lf.Signal()
	require.NoError(t, err)
	require.NoError(t, lf.Next()) // waits on an untouched slot, no block

	_, err = lf.Signal()
	require.NoError(t, err)

	released := make(chan error, 1)
	go func() { released <- lf.Next() }()

	select {
	case err := <-released:
		t.Fatalf("Next() returned early with %v while the GPU is gated", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)
	select {
	case err := <-released:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Next() did not return after the GPU caught up")
	}
	assert.GreaterOrEqual(t, lf.Completed(), uint64(1))
}

func TestScenario_LinearFenceImmediateGPU(t *testing.T) {
	// With the GPU running freely, four Next calls on a depth-2 ring all
	// return promptly.
	dev := sim.New()
	defer dev.Close()
	q := dev.NewQueue("render")

	lf, err := fence.NewLinear(q, 2)
	require.NoError(t, err)
	defer lf.Close()

	for range 4 {
		_, err := lf.Signal()
		require.NoError(t, err)
		require.NoError(t, lf.Next())
	}
	assert.Equal(t, uint64(4), lf.Value())
}

func TestScenario_CrossQueueOrdering(t *testing.T) {
	// GPUWaitOn establishes a producer/consumer edge between two GPU
	// timelines: work enqueued on the consumer after the wait does not run
	// before the producer's fence reaches the awaited value.
	dev := sim.New()
	defer dev.Close()
	producer := dev.NewQueue("copy")
	consumer := dev.NewQueue("render")

	f, err := fence.New(producer)
	require.NoError(t, err)
	defer f.Close()

	gate := make(chan struct{})
	require.NoError(t, producer.Submit(func() { <-gate }))
	_, err = f.Signal()
	require.NoError(t, err)

	require.NoError(t, f.GPUWaitOn(consumer))

	var ran atomic.Bool
	require.NoError(t, consumer.Submit(func() { ran.Store(true) }))

	// The consumer timeline is stalled on the producer's fence.
	time.Sleep(50 * time.Millisecond)
	assert.False(t, ran.Load(), "consumer ran before the producer signaled")

	close(gate)
	require.Eventually(t, ran.Load, time.Second, time.Millisecond)
}

func TestScenario_ThrottlingBoundsSkew(t *testing.T) {
	// A slow GPU with a depth-3 ring: the CPU never gets more than 3
	// generations ahead of the GPU.
	dev := sim.NewWithOptions(sim.Options{Latency: time.Millisecond})
	defer dev.Close()
	q := dev.NewQueue("render")

	lf, err := fence.NewLinear(q, 3)
	require.NoError(t, err)
	defer lf.Close()

	for range 20 {
		_, err := lf.Signal()
		require.NoError(t, err)
		require.NoError(t, lf.Next())

		skew := lf.Value() - lf.Completed()
		assert.LessOrEqual(t, skew, uint64(3))
	}
}
