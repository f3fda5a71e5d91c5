// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tracker

// Mode is the operating mode of the drive. Exactly one mode is active at any
// instant.
type Mode int

const (
	// ModeIdle is the safe state: motor stopped, lamps dark, waiting for
	// the operator to start a run.
	ModeIdle Mode = iota

	// ModeTracking paces the motor along the calibrated schedule.
	ModeTracking

	// ModePaused holds position with the schedule origin frozen until the
	// operator resumes.
	ModePaused

	// ModeReversing retraces forward travel back to the start position.
	ModeReversing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeTracking:
		return "tracking"
	case ModePaused:
		return "paused"
	case ModeReversing:
		return "reversing"
	default:
		return "unknown"
	}
}

// Event is an occurrence that may move the drive between modes.
type Event int

const (
	// EventStart is the operator press that begins a tracking run.
	EventStart Event = iota

	// EventShortPress is a press released before the hold threshold.
	EventShortPress

	// EventLongPress is a press held past the hold threshold.
	EventLongPress

	// EventLimit is the step counter reaching the electronic travel limit.
	EventLimit

	// EventResume is the operator press that ends a pause.
	EventResume

	// EventRewound is the completion of a rewind, including any
	// confirmation gate.
	EventRewound
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventShortPress:
		return "short-press"
	case EventLongPress:
		return "long-press"
	case EventLimit:
		return "limit"
	case EventResume:
		return "resume"
	case EventRewound:
		return "rewound"
	default:
		return "unknown"
	}
}

// next is the pure transition function of the operator state machine. Events
// that do not apply to the current mode leave it unchanged; all effects
// (pulses, lamp patterns, bookkeeping) live in the Engine.
func next(m Mode, e Event) Mode {
	switch m {
	case ModeIdle:
		if e == EventStart {
			return ModeTracking
		}
	case ModeTracking:
		switch e {
		case EventShortPress:
			return ModePaused
		case EventLongPress, EventLimit:
			return ModeReversing
		}
	case ModePaused:
		if e == EventResume {
			return ModeTracking
		}
	case ModeReversing:
		if e == EventRewound {
			return ModeIdle
		}
	}
	return m
}
