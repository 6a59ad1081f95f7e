// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/gogpu/fence"
	"github.com/gogpu/fence/backend"
)

func init() {
	backend.Register(backend.BackendWGPU, func() backend.Backend { return wgpuBackend{} })
}

// wgpuBackend exposes the HAL adapter through the backend registry.
type wgpuBackend struct{}

func (wgpuBackend) Name() string { return backend.BackendWGPU }

// Open brings up a standalone device on the first usable adapter.
func (wgpuBackend) Open() (fence.Device, fence.Queue, func(), error) {
	dev, queue, err := Open()
	if err != nil {
		return nil, nil, nil, err
	}
	return dev, queue, dev.Close, nil
}
