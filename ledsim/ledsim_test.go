// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ledsim

import (
	"bytes"
	"strings"
	"testing"
)

func TestRefresh(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{Writer: &buf})

	if err := d.Orange(true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\r\033[0m") {
		t.Errorf("refresh output does not rewind the line: %q", out)
	}
	if !strings.HasSuffix(out, "\033[0m ") {
		t.Errorf("refresh output does not reset colors: %q", out)
	}

	// Lighting the other lamp changes the rendering.
	buf.Reset()
	if err := d.Green(true); err != nil {
		t.Fatal(err)
	}
	if buf.String() == out {
		t.Error("green lamp rendering identical to orange-only rendering")
	}
}

func TestHalt(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{Writer: &buf})
	if err := d.Orange(true); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "\n\033[0m") {
		t.Errorf("Halt did not release the output line: %q", buf.String())
	}
}

func TestString(t *testing.T) {
	if got := New(nil).String(); got != "LEDSim" {
		t.Errorf("String() = %q", got)
	}
}
