// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package curve evaluates the calibrated pulse schedule of the barn-door
// drive.
//
// The true tracking-rate profile of a barn-door mount is an arcsin curve. A
// cubic polynomial fitted against that curve is cheap enough to evaluate at
// every microstep while staying accurate over the full travel range. The
// polynomial maps a step index to a millisecond offset from the start of the
// tracking run:
//
//	r = step * MicroToFull              // driveshaft rotations
//	f = 1000 * (C3*r³ + C2*r² + C1*r)   // milliseconds
//
// The function is pure and reproducible bit for bit, so the schedule can be
// regression-pinned in tests.
package curve

import (
	"errors"
	"math"

	"github.com/GermanBionicSystems/barndoor/clockwork"
)

// ErrInvalidOpts is returned when the calibration options are unusable.
var ErrInvalidOpts = errors.New("invalid curve options")

// Opts holds the calibration constants of the drive.
type Opts struct {
	// C1, C2 and C3 are the polynomial coefficients of the linear, square
	// and cubic rotation terms.
	C1 float64
	C2 float64
	C3 float64

	// MicroToFull converts a microstep count to full driveshaft rotations.
	MicroToFull float64
}

// DefaultOpts returns the calibration of the reference drive train: a 1/3200
// microstepped motor geared 10:1 onto the hinge rod.
func DefaultOpts() Opts {
	return Opts{
		C1:          63.02467,
		C2:          6.136969e-3,
		C3:          129.5071e-6,
		MicroToFull: 0.0003125,
	}
}

// Curve is an immutable evaluator of the pulse schedule polynomial.
type Curve struct {
	c1, c2, c3  float64
	microToFull float64
}

// New returns a Curve for the given calibration.
func New(opts *Opts) (*Curve, error) {
	o := DefaultOpts()
	if opts != nil {
		o = *opts
	}
	// A non-positive conversion ratio or linear coefficient cannot describe
	// a forward-running schedule.
	if o.MicroToFull <= 0 || o.C1 <= 0 {
		return nil, ErrInvalidOpts
	}
	return &Curve{c1: o.C1, c2: o.C2, c3: o.C3, microToFull: o.MicroToFull}, nil
}

// OffsetMillis returns the schedule offset of the given step index in
// milliseconds from the origin of the tracking run.
func (c *Curve) OffsetMillis(step uint32) float64 {
	r := float64(step) * c.microToFull
	return 1000 * (c.c3*r*r*r + c.c2*r*r + c.c1*r)
}

// DeadlineAt returns the absolute pulse deadline for step, as a wrapping
// millisecond tick relative to the run's time origin.
func (c *Curve) DeadlineAt(origin, step uint32) uint32 {
	return origin + uint32(math.Round(c.OffsetMillis(step)))
}

// Remaining returns how many milliseconds separate now from the deadline of
// step, or zero if the deadline has already been reached.
func (c *Curve) Remaining(origin, step, now uint32) uint32 {
	deadline := c.DeadlineAt(origin, step)
	if clockwork.Reached(now, deadline) {
		return 0
	}
	return deadline - now
}
