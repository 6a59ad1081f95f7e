// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend provides a pluggable registry of fence capability
// backends.
//
// A backend supplies the [fence.Device] and [fence.Queue] capabilities for
// one execution environment. Backends register themselves on import and
// are selected by name or by priority:
//
//	import (
//	    "github.com/gogpu/fence/backend"
//	    _ "github.com/gogpu/fence/backend/sim" // register the simulator
//	)
//
//	dev, queue, release, err := backend.MustDefault().Open()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer release()
//
// The real-GPU backend (backend/wgpu) wins over the simulator when both
// are imported.
package backend

import (
	"errors"

	"github.com/gogpu/fence"
)

// Registered backend names.
const (
	// BackendSim is the software GPU timeline (always available).
	BackendSim = "sim"

	// BackendWGPU is the gogpu/wgpu HAL adapter (needs a physical adapter).
	BackendWGPU = "wgpu"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when no usable backend is
	// registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend opens fence capability implementations for one execution
// environment.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g. "sim", "wgpu").
	Name() string

	// Open creates a device and its primary queue. The release function
	// tears down everything Open created; fences built on the queue must
	// be closed first. Open reports an error when the environment cannot
	// provide the capabilities (e.g. no physical adapter).
	Open() (fence.Device, fence.Queue, func(), error)
}
