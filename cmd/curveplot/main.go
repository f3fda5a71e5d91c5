// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// curveplot renders the calibrated pulse schedule of the barn-door drive
// next to a constant-rate drive, for reviewing a recalibration before it is
// flashed.
//
// The vertical gap between the two lines is the tangent error a linear drive
// would accumulate over the travel range.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/GermanBionicSystems/barndoor/curve"
)

var (
	out    = flag.String("o", "curve.png", "output PNG path")
	width  = flag.Int("width", 800, "image width in pixels")
	height = flag.Int("height", 500, "image height in pixels")

	maxStep     = flag.Uint("max-step", 441600, "electronic travel limit in microsteps")
	c1          = flag.Float64("c1", curve.DefaultOpts().C1, "linear schedule coefficient")
	c2          = flag.Float64("c2", curve.DefaultOpts().C2, "square schedule coefficient")
	c3          = flag.Float64("c3", curve.DefaultOpts().C3, "cubic schedule coefficient")
	microToFull = flag.Float64("micro-to-full", curve.DefaultOpts().MicroToFull, "microsteps to rotations ratio")
)

const margin = 40.0

func mainImpl() error {
	crv, err := curve.New(&curve.Opts{C1: *c1, C2: *c2, C3: *c3, MicroToFull: *microToFull})
	if err != nil {
		return err
	}

	limit := uint32(*maxStep)
	total := crv.OffsetMillis(limit)
	if total <= 0 {
		return fmt.Errorf("schedule is empty over %d steps", limit)
	}

	w, h := float64(*width), float64(*height)
	plotW, plotH := w-2*margin, h-2*margin
	// Step index on X, schedule time on Y, origin at the bottom left.
	atX := func(step uint32) float64 { return margin + plotW*float64(step)/float64(limit) }
	atY := func(ms float64) float64 { return h - margin - plotH*ms/total }

	dc := gg.NewContext(*width, *height)
	dc.SetColor(colornames.White)
	dc.Clear()

	// Axes.
	dc.SetColor(colornames.Black)
	dc.SetLineWidth(1)
	dc.DrawLine(margin, h-margin, w-margin, h-margin)
	dc.DrawLine(margin, margin, margin, h-margin)
	dc.Stroke()
	dc.DrawStringAnchored("step index", w/2, h-margin/2, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("0..%d", limit), w-margin, h-margin/2, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("schedule, 0..%.0fs", total/1000), margin/2, margin/2, 0, 0.5)

	// Constant-rate drive for reference.
	dc.SetColor(colornames.Gray)
	dc.DrawLine(atX(0), atY(0), atX(limit), atY(total))
	dc.Stroke()

	// Calibrated schedule.
	dc.SetColor(colornames.Steelblue)
	dc.SetLineWidth(2)
	const samples = 512
	for i := 0; i <= samples; i++ {
		step := uint32(uint64(limit) * uint64(i) / samples)
		dc.LineTo(atX(step), atY(crv.OffsetMillis(step)))
	}
	dc.Stroke()

	return dc.SavePNG(*out)
}

func main() {
	flag.Parse()
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "curveplot: %v.\n", err)
		os.Exit(1)
	}
}
