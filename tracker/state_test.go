// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tracker

import "testing"

func TestNext(t *testing.T) {
	for _, tc := range []struct {
		mode  Mode
		event Event
		want  Mode
	}{
		{ModeIdle, EventStart, ModeTracking},
		{ModeTracking, EventShortPress, ModePaused},
		{ModeTracking, EventLongPress, ModeReversing},
		{ModeTracking, EventLimit, ModeReversing},
		{ModePaused, EventResume, ModeTracking},
		{ModeReversing, EventRewound, ModeIdle},

		// Events that do not apply leave the mode unchanged.
		{ModeIdle, EventShortPress, ModeIdle},
		{ModeIdle, EventLimit, ModeIdle},
		{ModeIdle, EventRewound, ModeIdle},
		{ModeTracking, EventStart, ModeTracking},
		{ModeTracking, EventResume, ModeTracking},
		{ModePaused, EventStart, ModePaused},
		{ModePaused, EventLongPress, ModePaused},
		{ModePaused, EventLimit, ModePaused},
		{ModeReversing, EventStart, ModeReversing},
		{ModeReversing, EventShortPress, ModeReversing},
		{ModeReversing, EventLongPress, ModeReversing},
	} {
		t.Run(tc.mode.String()+"/"+tc.event.String(), func(t *testing.T) {
			if got := next(tc.mode, tc.event); got != tc.want {
				t.Errorf("next(%s, %s) = %s, want %s", tc.mode, tc.event, got, tc.want)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	for _, tc := range []struct {
		mode Mode
		want string
	}{
		{ModeIdle, "idle"},
		{ModeTracking, "tracking"},
		{ModePaused, "paused"},
		{ModeReversing, "reversing"},
		{Mode(99), "unknown"},
	} {
		if got := tc.mode.String(); got != tc.want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(tc.mode), got, tc.want)
		}
	}
}

func TestEventString(t *testing.T) {
	for _, tc := range []struct {
		event Event
		want  string
	}{
		{EventStart, "start"},
		{EventShortPress, "short-press"},
		{EventLongPress, "long-press"},
		{EventLimit, "limit"},
		{EventResume, "resume"},
		{EventRewound, "rewound"},
		{Event(99), "unknown"},
	} {
		if got := tc.event.String(); got != tc.want {
			t.Errorf("Event(%d).String() = %q, want %q", int(tc.event), got, tc.want)
		}
	}
}
