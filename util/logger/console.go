// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logger

import (
	"fmt"
	"os"
)

// Console writes log lines to standard output, one per event.
type Console struct{}

// NewConsole creates a Console writer.
func NewConsole() *Console {
	return &Console{}
}

// Write writes line to standard output.
func (c *Console) Write(line string) {
	fmt.Fprintln(os.Stdout, line)
}
