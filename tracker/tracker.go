// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tracker runs the operator state machine of the barn-door drive.
//
// The engine is a single logical thread of control. For each step index it
// computes the absolute pulse deadline from the calibrated curve, then
// busy-polls the command button until either the deadline arrives or a press
// interrupts the wait. A short press pauses the run, a long press rewinds it,
// and reaching the electronic travel limit rewinds it automatically. The
// schedule origin absorbs pause time so the run continues seamlessly instead
// of jumping.
//
// All waiting goes through a clockwork.Clock, so the whole machine runs
// deterministically against a simulated clock in tests.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/barndoor/button"
	"github.com/GermanBionicSystems/barndoor/clockwork"
	"github.com/GermanBionicSystems/barndoor/curve"
	"github.com/GermanBionicSystems/barndoor/drive"
	"github.com/GermanBionicSystems/barndoor/indicator"
)

var (
	// ErrMissingPart is returned when a collaborator is nil.
	ErrMissingPart = errors.New("tracker: curve, drive, button, panel and clock are required")

	// ErrInvalidOpts is returned when the options are unusable.
	ErrInvalidOpts = errors.New("tracker: invalid options")
)

// Indicator patterns of the reference drive.
const (
	// Pause: a brief orange blip at a low duty cycle.
	pauseBlinkOn  = 10 * time.Millisecond
	pauseBlinkOff = 900 * time.Millisecond

	// Resume acknowledgment: a green double flash, 2.35s total.
	ackFlashOn  = 500 * time.Millisecond
	ackFlashGap = 350 * time.Millisecond
	ackSettle   = time.Second

	// Reversal warning: alternating lamps, then a settle.
	warnHalfCycle = 500 * time.Millisecond
	warnCycles    = 3
	warnSettle    = time.Second
)

// rewindCause distinguishes the two ways into ModeReversing; only an
// operator-initiated rewind is gated on a confirmation press.
type rewindCause int

const (
	causeNone rewindCause = iota
	causeOperator
	causeLimit
)

// Opts holds the run parameters of the state machine.
type Opts struct {
	// MaxStep is the electronic travel limit in microsteps. Tracking never
	// drives the step counter past it.
	MaxStep uint32

	// StartSettle is the delay between the starting press and the first
	// scheduled pulse, giving the operator time to let go of the mount.
	StartSettle time.Duration

	// LimitSettle is the delay between reaching the travel limit and the
	// automatic rewind.
	LimitSettle time.Duration

	// ResumeSettle is the margin added to the schedule origin on resume,
	// on top of the absorbed pause duration.
	ResumeSettle time.Duration

	// PollInterval is the granularity of the fused deadline/button wait.
	PollInterval time.Duration
}

// DefaultOpts returns the parameters of the reference mount.
func DefaultOpts() Opts {
	return Opts{
		MaxStep:      441600,
		StartSettle:  2 * time.Second,
		LimitSettle:  5 * time.Second,
		ResumeSettle: time.Second,
		PollInterval: time.Millisecond,
	}
}

// Engine owns the step counter and schedule bookkeeping and sequences the
// drive through its modes. It is not goroutine safe; Run is the only entry
// point once started.
type Engine struct {
	crv   *curve.Curve
	drv   *drive.Dev
	cmd   *button.Classifier
	panel indicator.Panel
	clk   clockwork.Clock
	opts  Opts

	mode     Mode
	step     uint32 // current step index, 1..MaxStep
	origin   uint32 // schedule t=0 in clock ticks
	pausedAt uint32 // pause entry tick, valid in ModePaused
	skipNext bool   // suppress exactly one scheduled pulse
	cause    rewindCause
}

// New returns an Engine over the given collaborators.
func New(crv *curve.Curve, drv *drive.Dev, cmd *button.Classifier, panel indicator.Panel, clk clockwork.Clock, opts *Opts) (*Engine, error) {
	if crv == nil || drv == nil || cmd == nil || panel == nil || clk == nil {
		return nil, ErrMissingPart
	}
	o := DefaultOpts()
	if opts != nil {
		o = *opts
	}
	if o.MaxStep < 2 {
		return nil, fmt.Errorf("%w: MaxStep %d", ErrInvalidOpts, o.MaxStep)
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultOpts().PollInterval
	}
	return &Engine{
		crv:   crv,
		drv:   drv,
		cmd:   cmd,
		panel: panel,
		clk:   clk,
		opts:  o,
		mode:  ModeIdle,
	}, nil
}

// Mode returns the current operating mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Step returns the current step index.
func (e *Engine) Step() uint32 {
	return e.step
}

// Run executes the state machine until ctx is cancelled. There is no
// terminal state: Idle is re-entered indefinitely. On exit the motor and
// lamps are left quiet.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			e.quiesce()
			return err
		}
		var err error
		switch e.mode {
		case ModeIdle:
			err = e.runIdle(ctx)
		case ModeTracking:
			err = e.runTracking(ctx)
		case ModePaused:
			err = e.runPaused(ctx)
		case ModeReversing:
			err = e.runReversing(ctx)
		}
		if err != nil {
			e.quiesce()
			return err
		}
	}
}

// quiesce lowers the outputs on the way out. Best effort: the run is already
// over.
func (e *Engine) quiesce() {
	_ = e.drv.Halt()
	_ = e.panel.Halt()
}

// runIdle waits for the starting press, settles, and arms a fresh run.
func (e *Engine) runIdle(ctx context.Context) error {
	if err := e.panel.Halt(); err != nil {
		return err
	}
	if err := e.cmd.WaitPress(ctx); err != nil {
		return err
	}
	e.clk.Sleep(e.opts.StartSettle)
	if err := e.drv.SetDirection(drive.Forward); err != nil {
		return err
	}
	e.step = 1
	e.origin = e.clk.NowMillis()
	if err := e.panel.Green(true); err != nil {
		return err
	}
	e.mode = next(e.mode, EventStart)
	return nil
}

// runTracking paces the motor along the schedule until a press or the travel
// limit interrupts it.
func (e *Engine) runTracking(ctx context.Context) error {
	for e.step < e.opts.MaxStep {
		deadline := e.crv.DeadlineAt(e.origin, e.step)
		for !clockwork.Reached(e.clk.NowMillis(), deadline) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if e.cmd.Pressed() {
				// The pause clock starts at press detection, not at
				// release: detection happens strictly before the
				// current deadline, so the origin shift on resume
				// can never leave a backlog of missed pulses.
				pressedAt := e.clk.NowMillis()
				switch e.cmd.Classify() {
				case button.Pause:
					e.pausedAt = pressedAt
					e.mode = next(e.mode, EventShortPress)
					return nil
				case button.Reverse:
					e.cause = causeOperator
					e.mode = next(e.mode, EventLongPress)
					return nil
				}
			}
			e.clk.Sleep(e.opts.PollInterval)
		}
		if e.skipNext {
			// The pulse owed from before a rewind was never counted;
			// suppress exactly one to stay in phase.
			e.skipNext = false
		} else if err := e.drv.Pulse(); err != nil {
			return err
		}
		e.step++
	}

	// Electronic limit.
	e.clk.Sleep(e.opts.LimitSettle)
	e.cause = causeLimit
	e.mode = next(e.mode, EventLimit)
	return nil
}

// runPaused blinks the orange lamp at a low duty cycle until the operator
// presses again, then absorbs the pause into the schedule origin so no
// backlog of missed pulses builds up.
func (e *Engine) runPaused(ctx context.Context) error {
	if err := e.panel.Green(false); err != nil {
		return err
	}
	const blinkPeriod = pauseBlinkOn + pauseBlinkOff
	anchor := e.clk.NowMillis()
	lit := false
	for !e.cmd.Pressed() {
		if err := ctx.Err(); err != nil {
			return err
		}
		phase := time.Duration(clockwork.Since(e.clk.NowMillis(), anchor)) * time.Millisecond % blinkPeriod
		if want := phase < pauseBlinkOn; want != lit {
			if err := e.panel.Orange(want); err != nil {
				return err
			}
			lit = want
		}
		e.clk.Sleep(e.opts.PollInterval)
	}
	if lit {
		if err := e.panel.Orange(false); err != nil {
			return err
		}
	}

	if err := e.acknowledge(); err != nil {
		return err
	}

	// Shift the origin by the full pause duration plus the settle margin,
	// so the next deadline lands after now rather than in the past.
	pause := clockwork.Since(e.clk.NowMillis(), e.pausedAt)
	e.origin += pause + uint32(e.opts.ResumeSettle/time.Millisecond)
	if err := e.panel.Green(true); err != nil {
		return err
	}
	e.mode = next(e.mode, EventResume)
	return nil
}

// acknowledge plays the resume acknowledgment: a green double flash followed
// by a settle.
func (e *Engine) acknowledge() error {
	for i := 0; i < 2; i++ {
		if err := e.panel.Green(true); err != nil {
			return err
		}
		e.clk.Sleep(ackFlashOn)
		if err := e.panel.Green(false); err != nil {
			return err
		}
		if i == 0 {
			e.clk.Sleep(ackFlashGap)
		}
	}
	e.clk.Sleep(ackSettle)
	return nil
}

// runReversing plays the warning pattern, retraces the forward travel with
// fast pulses, and returns to idle. An operator-initiated rewind waits for a
// confirmation press first and arms the one-shot pulse skip.
func (e *Engine) runReversing(ctx context.Context) error {
	if err := e.warn(); err != nil {
		return err
	}
	if e.step > 1 {
		if err := e.drv.Rewind(e.step - 1); err != nil {
			return err
		}
	}
	e.step = 1

	if e.cause == causeOperator {
		e.skipNext = true
		// Operator-confirmed restart point: hold here until the button
		// is pressed and released again.
		if err := e.cmd.WaitPress(ctx); err != nil {
			return err
		}
		if err := e.cmd.WaitRelease(ctx); err != nil {
			return err
		}
	}
	e.cause = causeNone
	e.mode = next(e.mode, EventRewound)
	return nil
}

// warn plays the reversal warning: both lamps alternating, then dark, then a
// settle before the motor moves.
func (e *Engine) warn() error {
	for i := 0; i < warnCycles; i++ {
		if err := e.panel.Orange(true); err != nil {
			return err
		}
		if err := e.panel.Green(false); err != nil {
			return err
		}
		e.clk.Sleep(warnHalfCycle)
		if err := e.panel.Orange(false); err != nil {
			return err
		}
		if err := e.panel.Green(true); err != nil {
			return err
		}
		e.clk.Sleep(warnHalfCycle)
	}
	if err := e.panel.Halt(); err != nil {
		return err
	}
	e.clk.Sleep(warnSettle)
	return nil
}
