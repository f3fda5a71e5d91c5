// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package button

import (
	"context"
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/GermanBionicSystems/barndoor/clockwork"
)

// window is a half-open interval of virtual time during which the button is
// held down.
type window struct {
	from, to time.Duration
}

// pressPin simulates the active-low command input: it reads low whenever the
// virtual clock is inside one of the scripted press windows.
type pressPin struct {
	gpiotest.Pin
	clk     *clockwork.Sim
	windows []window
}

func (p *pressPin) Read() gpio.Level {
	now := p.clk.Now()
	for _, w := range p.windows {
		if now >= w.from && now < w.to {
			return gpio.Low
		}
	}
	return gpio.High
}

func newClassifier(t *testing.T, windows []window) (*Classifier, *clockwork.Sim) {
	t.Helper()
	clk := clockwork.NewSim()
	pin := &pressPin{Pin: gpiotest.Pin{N: "CMD"}, clk: clk, windows: windows}
	c, err := New(pin, clk, nil)
	if err != nil {
		t.Fatal(err)
	}
	return c, clk
}

func TestNewRequiresPin(t *testing.T) {
	if _, err := New(nil, clockwork.NewSim(), nil); !errors.Is(err, ErrMissingPin) {
		t.Errorf("New(nil) error = %v, want ErrMissingPin", err)
	}
}

func TestCommandString(t *testing.T) {
	for _, tc := range []struct {
		cmd  Command
		want string
	}{
		{None, "none"},
		{Pause, "pause"},
		{Reverse, "reverse"},
	} {
		if got := tc.cmd.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", int(tc.cmd), got, tc.want)
		}
	}
}

func TestClassifyNotPressed(t *testing.T) {
	c, _ := newClassifier(t, nil)
	if got := c.Classify(); got != None {
		t.Errorf("Classify() with button up = %s, want none", got)
	}
}

func TestClassifyShortPress(t *testing.T) {
	c, clk := newClassifier(t, []window{{0, 1500 * time.Millisecond}})
	got := c.Classify()
	if got != Pause {
		t.Errorf("Classify() = %s, want pause", got)
	}
	// Classification completes at the release, not at the threshold.
	if at := clk.Now(); at < 1500*time.Millisecond || at > 1510*time.Millisecond {
		t.Errorf("short press classified at %s, want ~1.5s", at)
	}
}

func TestClassifyLongPress(t *testing.T) {
	c, clk := newClassifier(t, []window{{0, 10 * time.Second}})
	got := c.Classify()
	if got != Reverse {
		t.Errorf("Classify() = %s, want reverse", got)
	}
	// Classification completes at the threshold even though the button is
	// still held.
	if at := clk.Now(); at < 3*time.Second || at > 3010*time.Millisecond {
		t.Errorf("long press classified at %s, want ~3s", at)
	}
}

func TestClassifyThresholdBoundary(t *testing.T) {
	// Held for exactly the threshold duration counts as long.
	c, _ := newClassifier(t, []window{{0, 3 * time.Second}})
	if got := c.Classify(); got != Reverse {
		t.Errorf("Classify() at exact threshold = %s, want reverse", got)
	}
}

func TestWaitPress(t *testing.T) {
	c, clk := newClassifier(t, []window{{2 * time.Second, 3 * time.Second}})
	if err := c.WaitPress(context.Background()); err != nil {
		t.Fatal(err)
	}
	if at := clk.Now(); at < 2*time.Second || at > 2010*time.Millisecond {
		t.Errorf("WaitPress returned at %s, want ~2s", at)
	}
}

func TestWaitPressCancelled(t *testing.T) {
	c, clk := newClassifier(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	clk.SetHook(func(elapsed time.Duration) {
		if elapsed >= time.Second {
			cancel()
		}
	})
	if err := c.WaitPress(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("WaitPress() error = %v, want context.Canceled", err)
	}
}

func TestWaitRelease(t *testing.T) {
	c, clk := newClassifier(t, []window{{0, 500 * time.Millisecond}})
	if err := c.WaitRelease(context.Background()); err != nil {
		t.Fatal(err)
	}
	if at := clk.Now(); at < 500*time.Millisecond || at > 510*time.Millisecond {
		t.Errorf("WaitRelease returned at %s, want ~500ms", at)
	}
}
