// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package curve_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/barndoor/curve"
)

func Example() {
	// The default calibration of the reference drive train.
	c, err := curve.New(nil)
	if err != nil {
		log.Fatal(err)
	}

	// Schedule offsets for the first pulse and for deep into the run. The
	// growing interval is the arcsin correction a constant-rate drive
	// lacks.
	fmt.Printf("step 1: %.0fms\n", c.OffsetMillis(1))
	fmt.Printf("step 100000: %.0fms\n", c.OffsetMillis(100000))
	// Output:
	// step 1: 20ms
	// step 100000: 1979466ms
}
