// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package clockwork

import "time"

// Sim is a virtual Clock for tests and desk simulation.
//
// Sleep advances the virtual time instead of blocking, so a multi-hour
// tracking run executes in the time it takes to iterate the control loop.
// An optional hook observes every advance, which lets a test script button
// presses or assertions against the virtual timeline while staying on the
// caller's goroutine.
type Sim struct {
	elapsed time.Duration
	hook    func(elapsed time.Duration)
}

// NewSim returns a Sim at virtual time zero.
func NewSim() *Sim {
	return &Sim{}
}

// NowMillis implements Clock.
func (s *Sim) NowMillis() uint32 {
	return uint32(s.elapsed / time.Millisecond)
}

// Now returns the full-resolution virtual time.
func (s *Sim) Now() time.Duration {
	return s.elapsed
}

// Sleep implements Clock by advancing the virtual time.
func (s *Sim) Sleep(d time.Duration) {
	s.Advance(d)
}

// Advance moves the virtual time forward and fires the hook.
func (s *Sim) Advance(d time.Duration) {
	s.elapsed += d
	if s.hook != nil {
		s.hook(s.elapsed)
	}
}

// SetHook registers fn to run after every advance. Pass nil to clear it.
func (s *Sim) SetHook(fn func(elapsed time.Duration)) {
	s.hook = fn
}

var _ Clock = &Sim{}
