// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package drive issues step pulses to the stepper driver of the barn-door
// mount through a step/direction pin pair.
//
// Two pulse profiles exist. Tracking pulses are slow (1ms high time) and are
// paced externally by the schedule. Rewind pulses are fast (100µs high time)
// and run back to back with no schedule gating; they are used to retrace
// forward travel quickly.
package drive

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/barndoor/clockwork"
)

// ErrMissingPin is returned when a required pin is nil.
var ErrMissingPin = errors.New("drive: step and dir pins are required")

// Direction selects the mechanical travel direction of the mount.
type Direction int

const (
	// Forward is the sidereal (tracking) direction. The direction pin is
	// driven high.
	Forward Direction = iota

	// Reverse is the antisidereal direction. The direction pin is driven
	// low.
	Reverse
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "reverse"
}

// level returns the direction pin level encoding the direction.
func (d Direction) level() gpio.Level {
	return gpio.Level(d == Forward)
}

// Pulse timings of the reference drive electronics.
const (
	trackingHigh = time.Millisecond
	rewindHigh   = 100 * time.Microsecond
	rewindLow    = 100 * time.Microsecond
)

// Dev drives a step/direction stepper driver.
type Dev struct {
	step gpio.PinOut
	dir  gpio.PinOut
	clk  clockwork.Clock

	current Direction
}

// New returns a Dev with the step output low and the direction set to
// Forward.
func New(step, dir gpio.PinOut, clk clockwork.Clock) (*Dev, error) {
	if step == nil || dir == nil {
		return nil, ErrMissingPin
	}
	d := &Dev{step: step, dir: dir, clk: clk, current: Forward}
	if err := d.step.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("drive: configuring step pin: %w", err)
	}
	if err := d.dir.Out(Forward.level()); err != nil {
		return nil, fmt.Errorf("drive: configuring dir pin: %w", err)
	}
	return d, nil
}

// String returns the pin assignment in a readable format.
//
// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("drive.Dev{step: %s, dir: %s}", d.step, d.dir)
}

// Halt lowers the step output and restores the forward direction.
//
// Halt implements conn.Resource.
func (d *Dev) Halt() error {
	if err := d.step.Out(gpio.Low); err != nil {
		return err
	}
	return d.SetDirection(Forward)
}

// Direction returns the direction currently asserted on the direction pin.
func (d *Dev) Direction() Direction {
	return d.current
}

// SetDirection asserts dir on the direction pin.
func (d *Dev) SetDirection(dir Direction) error {
	if err := d.dir.Out(dir.level()); err != nil {
		return fmt.Errorf("drive: setting direction %s: %w", dir, err)
	}
	d.current = dir
	return nil
}

// Pulse issues a single tracking-profile step pulse: step high for 1ms, then
// low. The pulse outlives neither the call nor any in-flight schedule
// deadline; pacing between pulses is the caller's job.
func (d *Dev) Pulse() error {
	if err := d.step.Out(gpio.High); err != nil {
		return fmt.Errorf("drive: raising step: %w", err)
	}
	d.clk.Sleep(trackingHigh)
	if err := d.step.Out(gpio.Low); err != nil {
		return fmt.Errorf("drive: lowering step: %w", err)
	}
	return nil
}

// Rewind flips the direction output to Reverse, issues n fast back-to-back
// pulses, and restores Forward. The forward direction is restored even when
// a pulse fails mid-train.
func (d *Dev) Rewind(n uint32) error {
	if err := d.SetDirection(Reverse); err != nil {
		return err
	}
	var pulseErr error
	for i := uint32(0); i < n; i++ {
		if pulseErr = d.fastPulse(); pulseErr != nil {
			break
		}
	}
	if err := d.SetDirection(Forward); err != nil {
		return err
	}
	return pulseErr
}

func (d *Dev) fastPulse() error {
	if err := d.step.Out(gpio.High); err != nil {
		return fmt.Errorf("drive: raising step: %w", err)
	}
	d.clk.Sleep(rewindHigh)
	if err := d.step.Out(gpio.Low); err != nil {
		return fmt.Errorf("drive: lowering step: %w", err)
	}
	d.clk.Sleep(rewindLow)
	return nil
}

var _ fmt.Stringer = &Dev{}
