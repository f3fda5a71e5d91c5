// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package button samples the single command button of the barn-door drive
// and classifies presses by hold duration.
//
// The button is wired active low with a pull-up: a low level means pressed.
// There is no interrupt-driven edge detection; the drive busy-polls the pin
// between pulse deadlines, so classification is expressed as blocking calls
// over a Clock rather than as an edge stream.
package button

import (
	"context"
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/barndoor/clockwork"
)

// ErrMissingPin is returned when the command pin is nil.
var ErrMissingPin = errors.New("button: command pin is required")

// Command is the operator intent encoded by a press.
type Command int

const (
	// None means the button was released again before it settled into a
	// recognizable press, or was never pressed.
	None Command = iota

	// Pause is a short press: released before the hold threshold.
	Pause

	// Reverse is a long press: still held when the hold threshold elapses.
	Reverse
)

func (c Command) String() string {
	switch c {
	case Pause:
		return "pause"
	case Reverse:
		return "reverse"
	default:
		return "none"
	}
}

// Opts holds the classification parameters.
type Opts struct {
	// HoldThreshold separates a short press from a long press.
	HoldThreshold time.Duration

	// PollInterval is the sampling granularity while a press is held.
	PollInterval time.Duration
}

// DefaultOpts returns the reference drive's classification parameters: a
// press held for 3s or longer is a long press, sampled every millisecond.
func DefaultOpts() Opts {
	return Opts{
		HoldThreshold: 3 * time.Second,
		PollInterval:  time.Millisecond,
	}
}

// Classifier samples and classifies the command button.
type Classifier struct {
	pin  gpio.PinIn
	clk  clockwork.Clock
	hold uint32 // hold threshold in ms
	poll time.Duration
}

// New configures pin as a pulled-up input and returns a Classifier over it.
func New(pin gpio.PinIn, clk clockwork.Clock, opts *Opts) (*Classifier, error) {
	if pin == nil {
		return nil, ErrMissingPin
	}
	o := DefaultOpts()
	if opts != nil {
		o = *opts
	}
	if o.HoldThreshold <= 0 {
		o.HoldThreshold = DefaultOpts().HoldThreshold
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultOpts().PollInterval
	}
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("button: configuring command pin: %w", err)
	}
	return &Classifier{
		pin:  pin,
		clk:  clk,
		hold: uint32(o.HoldThreshold / time.Millisecond),
		poll: o.PollInterval,
	}, nil
}

func (c *Classifier) String() string {
	return fmt.Sprintf("button.Classifier{%s}", c.pin)
}

// Pressed samples the button once. The input is active low.
func (c *Classifier) Pressed() bool {
	return c.pin.Read() == gpio.Low
}

// Classify blocks while the button is held and reports the press type: Pause
// when the button is released before the hold threshold, Reverse as soon as
// the threshold elapses with the button still held. It returns None when the
// button is not pressed on entry.
//
// Classify returns as soon as the press is classified; a long press may
// still be held when it returns.
func (c *Classifier) Classify() Command {
	if !c.Pressed() {
		return None
	}
	start := c.clk.NowMillis()
	for {
		// Threshold before release: a press held right up to the
		// threshold counts as long.
		if clockwork.Since(c.clk.NowMillis(), start) >= c.hold {
			return Reverse
		}
		if !c.Pressed() {
			return Pause
		}
		c.clk.Sleep(c.poll)
	}
}

// WaitPress blocks until the button is pressed or ctx is cancelled. These
// open-ended waits are the idle and confirmation gates of the drive; they
// are intentional holds for operator input, not timeouts.
func (c *Classifier) WaitPress(ctx context.Context) error {
	for !c.Pressed() {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.clk.Sleep(c.poll)
	}
	return nil
}

// WaitRelease blocks until the button is released or ctx is cancelled.
func (c *Classifier) WaitRelease(ctx context.Context) error {
	for c.Pressed() {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.clk.Sleep(c.poll)
	}
	return nil
}

var _ fmt.Stringer = &Classifier{}
