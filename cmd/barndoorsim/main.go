// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// barndoorsim runs the tracker state machine with no hardware attached: the
// lamps render to the terminal and the command button is driven from stdin.
//
// Keys (each followed by enter): "p" or an empty line plays a short press,
// "r" plays a long press, "q" quits. The -warp flag speeds the virtual
// clock up so a multi-hour run can be reviewed in minutes.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/pin"

	"github.com/GermanBionicSystems/barndoor/button"
	"github.com/GermanBionicSystems/barndoor/clockwork"
	"github.com/GermanBionicSystems/barndoor/curve"
	"github.com/GermanBionicSystems/barndoor/drive"
	"github.com/GermanBionicSystems/barndoor/ledsim"
	"github.com/GermanBionicSystems/barndoor/tracker"
)

var (
	warp     = flag.Int("warp", 1, "virtual clock speedup factor")
	maxStep  = flag.Uint("max-step", uint(tracker.DefaultOpts().MaxStep), "electronic travel limit in microsteps")
	shortDur = flag.Duration("short", 1500*time.Millisecond, "virtual duration of a short press")
	longDur  = flag.Duration("long", 3500*time.Millisecond, "virtual duration of a long press")
)

// warpClock runs a monotonic clock faster than wall time by an integer
// factor. Sleeps shrink by the same factor, so the schedule stays
// self-consistent.
type warpClock struct {
	start time.Time
	warp  time.Duration
}

func newWarpClock(factor int) *warpClock {
	if factor < 1 {
		factor = 1
	}
	return &warpClock{start: time.Now(), warp: time.Duration(factor)}
}

func (c *warpClock) NowMillis() uint32 {
	return uint32(time.Since(c.start) * c.warp / time.Millisecond)
}

func (c *warpClock) Sleep(d time.Duration) {
	time.Sleep(d / c.warp)
}

// keyButton is an active-low command input driven by scripted presses: a
// press holds the pin low for a virtual duration.
type keyButton struct {
	clk clockwork.Clock

	mu    sync.Mutex
	until uint32
	armed bool
}

func (b *keyButton) press(d time.Duration) {
	b.mu.Lock()
	b.until = b.clk.NowMillis() + uint32(d/time.Millisecond)
	b.armed = true
	b.mu.Unlock()
}

// Read implements gpio.PinIn. Low means pressed.
func (b *keyButton) Read() gpio.Level {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.armed && !clockwork.Reached(b.clk.NowMillis(), b.until) {
		return gpio.Low
	}
	b.armed = false
	return gpio.High
}

func (b *keyButton) String() string                        { return "keybutton" }
func (b *keyButton) Halt() error                           { return nil }
func (b *keyButton) Name() string                          { return "keybutton" }
func (b *keyButton) Number() int                           { return -1 }
func (b *keyButton) Function() string                      { return "In" }
func (b *keyButton) In(gpio.Pull, gpio.Edge) error         { return nil }
func (b *keyButton) WaitForEdge(timeout time.Duration) bool { return false }
func (b *keyButton) Pull() gpio.Pull                       { return gpio.PullUp }
func (b *keyButton) DefaultPull() gpio.Pull                { return gpio.PullUp }
func (b *keyButton) Func() pin.Func                        { return gpio.IN }
func (b *keyButton) SupportedFuncs() []pin.Func            { return []pin.Func{gpio.IN} }
func (b *keyButton) SetFunc(f pin.Func) error              { return errors.New("keybutton: read only") }

var _ gpio.PinIn = &keyButton{}

func mainImpl() error {
	clk := newWarpClock(*warp)
	btn := &keyButton{clk: clk}

	crv, err := curve.New(nil)
	if err != nil {
		return err
	}
	drv, err := drive.New(&gpiotest.Pin{N: "STEP"}, &gpiotest.Pin{N: "DIR"}, clk)
	if err != nil {
		return err
	}
	cls, err := button.New(btn, clk, nil)
	if err != nil {
		return err
	}
	panel := ledsim.New(nil)
	opts := tracker.DefaultOpts()
	opts.MaxStep = uint32(*maxStep)
	eng, err := tracker.New(crv, drv, cls, panel, clk, &opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			switch sc.Text() {
			case "", "p":
				btn.press(*shortDur)
			case "r":
				btn.press(*longDur)
			case "q":
				cancel()
				return
			}
		}
		cancel()
	}()

	log.Printf("simulating at %dx: enter=short press, r=long press, q=quit", *warp)
	if err := eng.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func main() {
	flag.Parse()
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "barndoorsim: %v.\n", err)
		os.Exit(1)
	}
}
