// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fence

import (
	"testing"
	"time"
)

func TestEvent_SetThenWait(t *testing.T) {
	ev := NewEvent()
	defer ev.Close()

	ev.Set()
	done := make(chan struct{})
	go func() {
		ev.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait() did not return after Set()")
	}
}

func TestEvent_SetCoalesces(t *testing.T) {
	// Auto-reset semantics: two Sets while unobserved release exactly one
	// Wait; the second Wait blocks until another Set.
	ev := NewEvent()
	defer ev.Close()

	ev.Set()
	ev.Set()
	ev.Wait() // consumes the coalesced signal

	released := make(chan struct{})
	go func() {
		ev.Wait()
		close(released)
	}()
	select {
	case <-released:
		t.Fatal("second Wait() returned without a new Set()")
	case <-time.After(20 * time.Millisecond):
	}

	ev.Set()
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("Wait() did not return after new Set()")
	}
}

func TestEvent_CloseReleasesWaiter(t *testing.T) {
	ev := NewEvent()

	released := make(chan struct{})
	go func() {
		ev.Wait()
		close(released)
	}()
	time.Sleep(10 * time.Millisecond)

	if err := ev.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("Wait() did not return after Close()")
	}

	// Idempotent.
	if err := ev.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
