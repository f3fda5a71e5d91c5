// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ledsim implements an indicator.Panel that outputs to terminal
// (stdout) using ANSI color codes.
//
// Useful for exercising the tracker state machine at the desk before the
// drive electronics are wired up.
package ledsim

import (
	"bytes"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/GermanBionicSystems/barndoor/indicator"
)

// Opts represents the options available for this panel.
type Opts struct {
	// Writer receives the rendered panel. Defaults to a colorable stdout.
	Writer io.Writer

	// Palette maps lamp colors to ANSI codes. Defaults to ansi256.Default.
	Palette *ansi256.Palette

	_ struct{}
}

var (
	orangeLit = color.NRGBA{R: 255, G: 140, B: 0, A: 255}
	greenLit  = color.NRGBA{R: 0, G: 220, B: 0, A: 255}
	lampOff   = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
)

// Dev is a two-lamp panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette

	orange bool
	green  bool
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	var w io.Writer = colorable.NewColorableStdout()
	p := ansi256.Default
	if opts != nil {
		if opts.Writer != nil {
			w = opts.Writer
		}
		if opts.Palette != nil {
			p = opts.Palette
		}
	}
	return &Dev{w: w, palette: *p}
}

func (d *Dev) String() string {
	return "LEDSim"
}

// Orange implements indicator.Panel.
func (d *Dev) Orange(on bool) error {
	d.orange = on
	return d.refresh()
}

// Green implements indicator.Panel.
func (d *Dev) Green(on bool) error {
	d.green = on
	return d.refresh()
}

// Halt implements indicator.Panel.
//
// It extinguishes both lamps and releases the output line so the terminal is
// not left corrupted.
func (d *Dev) Halt() error {
	d.orange = false
	d.green = false
	if err := d.refresh(); err != nil {
		return err
	}
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per
	// call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	_, _ = io.WriteString(&d.buf, d.palette.Block(lamp(orangeLit, d.orange)))
	_, _ = d.buf.WriteString(" ")
	_, _ = io.WriteString(&d.buf, d.palette.Block(lamp(greenLit, d.green)))
	_, _ = d.buf.WriteString("\033[0m ")
	_, err := d.buf.WriteTo(d.w)
	return err
}

func lamp(lit color.NRGBA, on bool) color.NRGBA {
	if on {
		return lit
	}
	return lampOff
}

var _ indicator.Panel = &Dev{}
