// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package barndoor contains the drive electronics firmware for a barn-door
// style equatorial telescope mount.
//
// A barn-door mount rotates a camera platform around a hinge aligned with the
// celestial pole. Driving the hinge at a constant mechanical rate does not
// follow the sky: the true motion profile is an arcsin curve, so the drive
// paces its stepper motor along a calibrated cubic approximation of that
// curve instead.
//
// The repository is split into small packages, leaf first:
//
//   - clockwork: monotonic millisecond timebase with wrap-safe comparisons.
//   - curve: the calibrated pulse-schedule polynomial.
//   - drive: the step/direction stepper driver.
//   - button: hold-duration classification of the single command button.
//   - indicator: the two-channel status lamp panel.
//   - ledsim: a terminal emulator of the panel for desk testing.
//   - tracker: the operator state machine tying it all together.
//
// cmd/barndoor runs on real hardware through periph.io host drivers,
// cmd/barndoorsim runs the same state machine against simulated pins, and
// cmd/curveplot renders the calibration curve for review.
package barndoor
