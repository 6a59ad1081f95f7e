// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fence provides CPU/GPU synchronization primitives for the GoGPU
// ecosystem.
//
// # Overview
//
// A GPU executes submitted work asynchronously: once commands are handed to
// a queue, the CPU runs ahead while the GPU drains them at its own pace.
// This package implements the two primitives that coordinate the timelines:
//
//   - [Fence]: a monotonically increasing counter shared between the CPU
//     and GPU. The CPU advances the counter by enqueuing a signal; the GPU
//     reports progress by completing it. Operations exist to block the CPU
//     on a value (Flush), or to make a GPU queue wait on a value without
//     any CPU involvement (GPUWait and friends).
//   - [LinearFence]: a Fence plus a fixed-size ring of previously signaled
//     values. Its Next method throttles the CPU so it never runs more than
//     N generations ahead of the GPU, protecting N-buffered resources
//     (command allocators, upload buffers) from premature reuse.
//
// # Quick Start
//
//	dev := sim.New()
//	defer dev.Close()
//	queue := dev.NewQueue("render")
//
//	lf, err := fence.NewLinear(queue, 3) // triple-buffered
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer lf.Close()
//
//	for frame := 0; frame < 100; frame++ {
//	    queue.Submit(renderFrame) // GPU work for this generation
//	    lf.Signal()
//	    lf.Next() // blocks only if the GPU is 3 generations behind
//	}
//
// # Capability Model
//
// The package does not talk to a GPU directly. It consumes small capability
// interfaces ([Queue], [NativeFence], [Event], [Device]) that model what
// every modern GPU API provides: enqueue-signal, enqueue-wait,
// query-completed-value, and an OS-waitable completion callback. Two
// backends ship with the module:
//
//   - backend/sim: a software GPU timeline. Queues execute submitted work
//     on their own goroutines in submission order, honoring wait edges.
//     Used by the test suite and by callers without a physical adapter.
//   - backend/wgpu: an adapter over gogpu/wgpu HAL devices and queues,
//     including integration with shared gpucontext device providers.
//
// # Concurrency
//
// A Fence instance assumes a single submitting goroutine: Signal, Flush,
// and Next must be serialized by the caller. The GPU side is inherently
// concurrent; the capability implementations take care of that. See the
// type documentation for details.
//
// # Logging
//
// The package produces no log output by default. Call [SetLogger] to enable
// structured logging via log/slog.
package fence
