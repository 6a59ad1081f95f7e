// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu adapts gogpu/wgpu HAL devices and queues to the fence
// capability interfaces.
//
// The adapter can wrap HAL handles the host application already owns
// (see [NewDevice] and [Device.NewQueue]), upgrade a shared
// gpucontext.DeviceProvider via [FromProvider], or bring up a standalone
// device on the first usable adapter via [Open]:
//
//	dev, queue, err := wgpu.Open()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	f, err := fence.New(queue)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	// ... submit work through queue.SubmitBuffers ...
//	if err := f.Flush(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Semantics
//
// HAL fences are signaled internally by the HAL on queue submission and
// report progress as submission indexes. Signal therefore maps onto an
// empty submission: the returned index is recorded against the signaled
// value, and completion queries translate values back into indexes for
// Device.Wait. The HAL exposes no GPU-side queue wait, so [Queue.Wait]
// records the dependency and enforces it at the next submission through
// this adapter:
// the submitting goroutine blocks until the awaited value completes. The
// ordering guarantee is preserved; the difference from a native queue wait
// is that the stall happens on the CPU at submit time rather than on the
// GPU. Callers must route submissions through [Queue.SubmitBuffers] for
// recorded dependencies to take effect.
package wgpu
