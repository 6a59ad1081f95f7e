// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sim

import (
	"github.com/gogpu/fence"
	"github.com/gogpu/fence/backend"
)

func init() {
	backend.Register(backend.BackendSim, func() backend.Backend { return simBackend{} })
}

// simBackend exposes the simulator through the backend registry.
type simBackend struct{}

func (simBackend) Name() string { return backend.BackendSim }

// Open creates a fresh simulated device with a single primary queue.
func (simBackend) Open() (fence.Device, fence.Queue, func(), error) {
	dev := New()
	q := dev.NewQueue("primary")
	return dev, q, dev.Close, nil
}
