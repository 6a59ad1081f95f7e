// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fence"
)

// Package errors for the wgpu adapter.
var (
	// ErrNoBackend is returned by Open when no HAL backend is available on
	// this platform.
	ErrNoBackend = errors.New("wgpu: no HAL backend available")

	// ErrNoAdapter is returned by Open when the instance exposes no GPU
	// adapters.
	ErrNoAdapter = errors.New("wgpu: no GPU adapters found")

	// ErrNilDevice is returned when the adapter is constructed without a
	// HAL device.
	ErrNilDevice = errors.New("wgpu: HAL device is nil")

	// ErrNilQueue is returned when a queue adapter is constructed without a
	// HAL queue.
	ErrNilQueue = errors.New("wgpu: HAL queue is nil")

	// ErrForeignFence is returned when a queue receives a fence that was
	// not created by this adapter.
	ErrForeignFence = errors.New("wgpu: fence was not created by this adapter")

	// ErrNonZeroInitial is returned when a fence is requested with a
	// non-zero initial value; HAL fences always start at zero.
	ErrNonZeroInitial = errors.New("wgpu: HAL fences start at zero")

	// ErrNoHALAccess is returned by FromProvider when the provider does not
	// expose its HAL device and queue.
	ErrNoHALAccess = errors.New("wgpu: provider does not expose HAL types")

	// ErrFenceDestroyed is returned when a fence is destroyed while a wait
	// on it is outstanding.
	ErrFenceDestroyed = errors.New("wgpu: fence destroyed while awaited")
)

// waitSlice is the polling interval for blocking fence waits. The fence
// contract has no timeout, so waits loop on slices of this length until
// the value completes or the HAL reports an error.
const waitSlice = 100 * time.Millisecond

// HALDevice is the subset of hal.Device the adapter uses. hal.Device
// satisfies it; tests substitute lighter doubles.
type HALDevice interface {
	CreateFence() (hal.Fence, error)
	DestroyFence(hal.Fence)
	Wait(f hal.Fence, value uint64, timeout time.Duration) (bool, error)
}

// HALQueue is the subset of hal.Queue the adapter uses. Every submission
// signals the device's fence tracking internally and returns the
// submission index it will complete at.
type HALQueue interface {
	Submit(cmdBuffers []hal.CommandBuffer) (submissionIndex uint64, err error)
}

// Device adapts a HAL device to the fence.Device capability.
type Device struct {
	hal      HALDevice
	instance hal.Instance // owned when created via Open, nil otherwise
}

// NewDevice wraps a HAL device the caller owns. The caller remains
// responsible for destroying the HAL device; Close on the returned Device
// only releases resources the adapter itself created.
func NewDevice(d HALDevice) (*Device, error) {
	if d == nil {
		return nil, ErrNilDevice
	}
	return &Device{hal: d}, nil
}

// Open brings up a standalone device on the first usable adapter of the
// Vulkan backend, preferring discrete and integrated GPUs. The returned
// Device owns the HAL device and instance; release them with Close.
func Open() (*Device, *Queue, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, nil, ErrNoBackend
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, nil, fmt.Errorf("wgpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, ErrNoAdapter
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, fmt.Errorf("wgpu: open device: %w", err)
	}

	dev := &Device{hal: openDev.Device, instance: instance}
	queue, err := dev.NewQueue(openDev.Queue)
	if err != nil {
		dev.Close()
		return nil, nil, err
	}

	fence.Logger().Info("wgpu: device opened", "adapter", selected.Info.Name)
	return dev, queue, nil
}

// NewQueue wraps a HAL queue belonging to this device.
func (d *Device) NewQueue(q HALQueue) (*Queue, error) {
	if q == nil {
		return nil, ErrNilQueue
	}
	return &Queue{dev: d, hal: q}, nil
}

// CreateFence creates a HAL timeline fence. HAL fences start unsignaled at
// zero, so any other initial value is rejected.
func (d *Device) CreateFence(initial uint64) (fence.NativeFence, error) {
	if initial != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNonZeroInitial, initial)
	}
	hf, err := d.hal.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("wgpu: create fence: %w", err)
	}
	return newFence(d, hf), nil
}

// CreateEvent creates a CPU-waitable event. The HAL has no native event
// handle; the process-local implementation from the fence package serves.
func (d *Device) CreateEvent() (fence.Event, error) {
	return fence.NewEvent(), nil
}

// Close releases resources created by Open. For devices wrapping
// caller-owned HAL handles it is a no-op beyond clearing references.
func (d *Device) Close() {
	if d.instance != nil {
		// Open created the HAL device; destroy it before the instance.
		if dest, ok := d.hal.(interface{ Destroy() }); ok {
			dest.Destroy()
		}
		d.instance.Destroy()
		d.instance = nil
	}
	d.hal = nil
}
