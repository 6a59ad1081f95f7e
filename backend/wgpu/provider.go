// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// FromProvider adapts a shared GPU device from a host application (for
// example gogpu.App) to the fence capabilities. The provider must expose
// its HAL types through HalDevice() any and HalQueue() any, as gogpu
// device providers do. The host retains ownership of the HAL handles.
func FromProvider(p gpucontext.DeviceProvider) (*Device, *Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := any(p).(halProvider)
	if !ok {
		return nil, nil, ErrNoHALAccess
	}

	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALAccess)
	}

	dev, err := NewDevice(device)
	if err != nil {
		return nil, nil, err
	}
	q, err := dev.NewQueue(queue)
	if err != nil {
		return nil, nil, err
	}
	return dev, q, nil
}
