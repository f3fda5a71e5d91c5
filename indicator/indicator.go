// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package indicator controls the two status lamps of the barn-door drive.
//
// The lamps carry the entire operator feedback language of the drive: the
// pause blink, the resume acknowledgment and the reversal warning are all
// temporal patterns played on these two channels by the tracker. The panel
// itself is stateless; it only maps channel booleans onto hardware.
package indicator

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// ErrMissingPin is returned when a lamp pin is nil.
var ErrMissingPin = errors.New("indicator: orange and green pins are required")

// Panel is a two-channel status display. Implementations must treat true as
// lit regardless of the electrical polarity of the underlying channel.
type Panel interface {
	// Orange lights or extinguishes the orange lamp.
	Orange(on bool) error

	// Green lights or extinguishes the green lamp.
	Green(on bool) error

	// Halt extinguishes both lamps.
	Halt() error
}

// Dev is a Panel over two GPIO pins. The orange lamp is wired active low,
// the green lamp active high, matching the reference drive electronics.
type Dev struct {
	orange gpio.PinOut
	green  gpio.PinOut
}

// New returns a Dev with both lamps extinguished.
func New(orange, green gpio.PinOut) (*Dev, error) {
	if orange == nil || green == nil {
		return nil, ErrMissingPin
	}
	d := &Dev{orange: orange, green: green}
	if err := d.Halt(); err != nil {
		return nil, err
	}
	return d, nil
}

// String returns the pin assignment in a readable format.
//
// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("indicator.Dev{orange: %s, green: %s}", d.orange, d.green)
}

// Orange implements Panel. The pin is active low.
func (d *Dev) Orange(on bool) error {
	if err := d.orange.Out(gpio.Level(!on)); err != nil {
		return fmt.Errorf("indicator: orange lamp: %w", err)
	}
	return nil
}

// Green implements Panel.
func (d *Dev) Green(on bool) error {
	if err := d.green.Out(gpio.Level(on)); err != nil {
		return fmt.Errorf("indicator: green lamp: %w", err)
	}
	return nil
}

// Halt implements Panel and conn.Resource.
func (d *Dev) Halt() error {
	if err := d.Orange(false); err != nil {
		return err
	}
	return d.Green(false)
}

var _ Panel = &Dev{}
var _ fmt.Stringer = &Dev{}
