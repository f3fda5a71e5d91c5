// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// barndoor drives the barn-door tracker hardware through the host GPIO
// pins.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/barndoor/button"
	"github.com/GermanBionicSystems/barndoor/clockwork"
	"github.com/GermanBionicSystems/barndoor/curve"
	"github.com/GermanBionicSystems/barndoor/drive"
	"github.com/GermanBionicSystems/barndoor/indicator"
	"github.com/GermanBionicSystems/barndoor/tracker"
)

var (
	stepPin   = flag.String("step", "GPIO13", "step output pin")
	dirPin    = flag.String("dir", "GPIO19", "direction output pin")
	cmdPin    = flag.String("button", "GPIO26", "command button input pin (active low)")
	orangePin = flag.String("orange", "GPIO5", "orange lamp output pin (active low)")
	greenPin  = flag.String("green", "GPIO6", "green lamp output pin")

	maxStep     = flag.Uint("max-step", uint(tracker.DefaultOpts().MaxStep), "electronic travel limit in microsteps")
	c1          = flag.Float64("c1", curve.DefaultOpts().C1, "linear schedule coefficient")
	c2          = flag.Float64("c2", curve.DefaultOpts().C2, "square schedule coefficient")
	c3          = flag.Float64("c3", curve.DefaultOpts().C3, "cubic schedule coefficient")
	microToFull = flag.Float64("micro-to-full", curve.DefaultOpts().MicroToFull, "microsteps to rotations ratio")
)

func byName(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no pin named %q", name)
	}
	return p, nil
}

func mainImpl() error {
	if _, err := host.Init(); err != nil {
		return err
	}

	step, err := byName(*stepPin)
	if err != nil {
		return err
	}
	dir, err := byName(*dirPin)
	if err != nil {
		return err
	}
	cmd, err := byName(*cmdPin)
	if err != nil {
		return err
	}
	orange, err := byName(*orangePin)
	if err != nil {
		return err
	}
	green, err := byName(*greenPin)
	if err != nil {
		return err
	}

	clk := clockwork.NewSystem()
	crv, err := curve.New(&curve.Opts{C1: *c1, C2: *c2, C3: *c3, MicroToFull: *microToFull})
	if err != nil {
		return err
	}
	drv, err := drive.New(step, dir, clk)
	if err != nil {
		return err
	}
	cls, err := button.New(cmd, clk, nil)
	if err != nil {
		return err
	}
	panel, err := indicator.New(orange, green)
	if err != nil {
		return err
	}
	opts := tracker.DefaultOpts()
	opts.MaxStep = uint32(*maxStep)
	eng, err := tracker.New(crv, drv, cls, panel, clk, &opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.Printf("tracking engine ready: %s, %s, %s", drv, cls, panel)
	if err := eng.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	log.Print("interrupted, outputs halted")
	return nil
}

func main() {
	flag.Parse()
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "barndoor: %v.\n", err)
		os.Exit(1)
	}
}
