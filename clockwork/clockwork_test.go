// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package clockwork

import (
	"testing"
	"time"
)

func TestReached(t *testing.T) {
	for _, tc := range []struct {
		name     string
		now      uint32
		deadline uint32
		want     bool
	}{
		{name: "before", now: 999, deadline: 1000, want: false},
		{name: "exact", now: 1000, deadline: 1000, want: true},
		{name: "after", now: 1001, deadline: 1000, want: true},
		{name: "deadline across wrap", now: 0xFFFFFF00, deadline: 100, want: false},
		{name: "now wrapped past deadline", now: 50, deadline: 0xFFFFFFF0, want: true},
		{name: "now wrapped before deadline", now: 50, deadline: 100, want: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := Reached(tc.now, tc.deadline); got != tc.want {
				t.Errorf("Reached(%#x, %#x) = %v, want %v", tc.now, tc.deadline, got, tc.want)
			}
		})
	}
}

func TestSince(t *testing.T) {
	if got := Since(1500, 1000); got != 500 {
		t.Errorf("Since(1500, 1000) = %d, want 500", got)
	}
	// 100ms elapsed across the wrap boundary.
	if got := Since(30, 0xFFFFFFBA); got != 100 {
		t.Errorf("Since across wrap = %d, want 100", got)
	}
}

func TestSimAdvances(t *testing.T) {
	s := NewSim()
	if got := s.NowMillis(); got != 0 {
		t.Fatalf("fresh Sim at %d ms, want 0", got)
	}
	s.Sleep(1500 * time.Microsecond)
	if got := s.NowMillis(); got != 1 {
		t.Errorf("after 1.5ms sleep NowMillis() = %d, want 1", got)
	}
	s.Sleep(2 * time.Second)
	if got := s.NowMillis(); got != 2001 {
		t.Errorf("after 2s sleep NowMillis() = %d, want 2001", got)
	}
}

func TestSimHook(t *testing.T) {
	s := NewSim()
	var seen []time.Duration
	s.SetHook(func(elapsed time.Duration) {
		seen = append(seen, elapsed)
	})
	s.Sleep(time.Millisecond)
	s.Advance(4 * time.Millisecond)
	if len(seen) != 2 || seen[0] != time.Millisecond || seen[1] != 5*time.Millisecond {
		t.Errorf("hook observed %v, want [1ms 5ms]", seen)
	}
}

func TestSystemMonotonic(t *testing.T) {
	s := NewSystem()
	a := s.NowMillis()
	s.Sleep(2 * time.Millisecond)
	b := s.NowMillis()
	if !Reached(b, a) {
		t.Errorf("system clock went backwards: %d then %d", a, b)
	}
}
