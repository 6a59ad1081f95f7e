// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fence_test

import (
	"fmt"

	"github.com/gogpu/fence"
	"github.com/gogpu/fence/backend/sim"
)

// ExampleFence demonstrates the basic signal/flush round trip against the
// simulated GPU.
func ExampleFence() {
	dev := sim.New()
	defer dev.Close()
	queue := dev.NewQueue("render")

	f, err := fence.New(queue)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer f.Close()

	v, _ := f.Signal()
	fmt.Println("signaled:", v)

	if err := f.Flush(); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("drained:", f.Completed() >= v)

	// Output:
	// signaled: 1
	// drained: true
}

// ExampleLinearFence shows frame pacing with a triple-buffered ring.
func ExampleLinearFence() {
	dev := sim.New()
	defer dev.Close()
	queue := dev.NewQueue("render")

	lf, err := fence.NewLinear(queue, 3)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer lf.Close()

	for frame := 0; frame < 6; frame++ {
		// Submit this generation's GPU work, then mark and pace it.
		queue.Submit(func() {})
		lf.Signal()
		lf.Next()
	}
	fmt.Println("frames signaled:", lf.Value())

	// Output:
	// frames signaled: 6
}
