// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split_test

import (
	"fmt"

	"github.com/tkhsv/qr/coding"
	"github.com/tkhsv/qr/split"
)

func Example() {
	segs := split.Text("WIFI:S:cafe;P:1234;;", split.Rules{})
	for _, s := range segs {
		fmt.Println(s)
	}
	v, err := split.Fit(segs, coding.M,
		coding.MinVersion, coding.MaxVersion)
	if err != nil {
		panic(err)
	}
	fmt.Println("version", v)
	// Output:
	// alphanumeric "WIFI:S:"
	// byte "cafe;"
	// alphanumeric "P:"
	// numeric "1234"
	// byte ";;"
	// version 2
}
