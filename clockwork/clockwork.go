// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package clockwork provides the millisecond timebase the tracker schedules
// against.
//
// Pulse deadlines are held as uint32 millisecond ticks so the representation
// matches the 32 bit counters of the drive electronics. The tick counter
// wraps after roughly 49.7 days of continuous operation; every comparison
// must therefore go through Reached or Since, which use unsigned difference
// arithmetic and stay correct across a wrap.
package clockwork

import "time"

// Clock is the capability the tracker packages consume: a monotonic
// millisecond counter and a blocking sleep.
//
// Implementations are not required to be goroutine safe; the tracker is a
// single logical thread of control.
type Clock interface {
	// NowMillis returns the current time in milliseconds. The counter is
	// monotonic but wraps at the uint32 boundary.
	NowMillis() uint32

	// Sleep blocks for the given duration.
	Sleep(d time.Duration)
}

// Reached reports whether now has reached deadline, tolerating counter wrap.
//
// The comparison is valid as long as now and deadline are less than 2^31 ms
// (~24.8 days) apart, which every schedule in this system satisfies by a wide
// margin.
func Reached(now, deadline uint32) bool {
	return int32(now-deadline) >= 0
}

// Since returns the milliseconds elapsed from then to now, tolerating
// counter wrap.
func Since(now, then uint32) uint32 {
	return now - then
}

// System is a Clock backed by the host monotonic clock.
type System struct {
	start time.Time
}

// NewSystem returns a Clock whose counter starts at zero.
func NewSystem() *System {
	return &System{start: time.Now()}
}

// NowMillis implements Clock.
func (s *System) NowMillis() uint32 {
	return uint32(time.Since(s.start) / time.Millisecond)
}

// Sleep implements Clock.
func (s *System) Sleep(d time.Duration) {
	time.Sleep(d)
}

var _ Clock = &System{}
