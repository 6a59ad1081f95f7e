// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"testing"

	"github.com/gogpu/fence"
)

// fakeBackend is a registry test double.
type fakeBackend struct {
	name string
}

func (b fakeBackend) Name() string { return b.name }

func (b fakeBackend) Open() (fence.Device, fence.Queue, func(), error) {
	return nil, nil, func() {}, nil
}

// withCleanRegistry snapshots the registry, clears it, and restores it when
// the test finishes.
func withCleanRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := backends
	backends = make(map[string]Factory)
	registryMu.Unlock()

	t.Cleanup(func() {
		registryMu.Lock()
		backends = saved
		registryMu.Unlock()
	})
}

func TestRegisterAndGet(t *testing.T) {
	withCleanRegistry(t)

	Register("fake", func() Backend { return fakeBackend{name: "fake"} })

	if !IsRegistered("fake") {
		t.Error("IsRegistered(fake) = false after Register")
	}
	b := Get("fake")
	if b == nil {
		t.Fatal("Get(fake) returned nil")
	}
	if b.Name() != "fake" {
		t.Errorf("Name() = %q, want %q", b.Name(), "fake")
	}
}

func TestGetUnknownReturnsNil(t *testing.T) {
	withCleanRegistry(t)

	if b := Get("missing"); b != nil {
		t.Errorf("Get(missing) = %v, want nil", b)
	}
}

func TestUnregister(t *testing.T) {
	withCleanRegistry(t)

	Register("fake", func() Backend { return fakeBackend{name: "fake"} })
	Unregister("fake")

	if IsRegistered("fake") {
		t.Error("IsRegistered(fake) = true after Unregister")
	}
}

func TestAvailable(t *testing.T) {
	withCleanRegistry(t)

	Register("a", func() Backend { return fakeBackend{name: "a"} })
	Register("b", func() Backend { return fakeBackend{name: "b"} })

	names := Available()
	if len(names) != 2 {
		t.Fatalf("Available() = %v, want 2 entries", names)
	}
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("Available() = %v, want both a and b", names)
	}
}

func TestDefaultPrefersRealGPU(t *testing.T) {
	withCleanRegistry(t)

	Register(BackendSim, func() Backend { return fakeBackend{name: BackendSim} })
	Register(BackendWGPU, func() Backend { return fakeBackend{name: BackendWGPU} })

	b := Default()
	if b == nil {
		t.Fatal("Default() returned nil")
	}
	if b.Name() != BackendWGPU {
		t.Errorf("Default().Name() = %q, want %q", b.Name(), BackendWGPU)
	}
}

func TestDefaultFallsBackOffPriorityList(t *testing.T) {
	withCleanRegistry(t)

	Register("exotic", func() Backend { return fakeBackend{name: "exotic"} })

	b := Default()
	if b == nil {
		t.Fatal("Default() returned nil")
	}
	if b.Name() != "exotic" {
		t.Errorf("Default().Name() = %q, want %q", b.Name(), "exotic")
	}
}

func TestDefaultEmptyRegistry(t *testing.T) {
	withCleanRegistry(t)

	if b := Default(); b != nil {
		t.Errorf("Default() = %v with empty registry, want nil", b)
	}
}

func TestMustDefaultPanicsWhenEmpty(t *testing.T) {
	withCleanRegistry(t)

	defer func() {
		if recover() == nil {
			t.Error("MustDefault() did not panic with empty registry")
		}
	}()
	MustDefault()
}
