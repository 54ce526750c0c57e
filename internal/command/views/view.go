// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

// Package views renders statemover's user-facing output, keeping
// presentation concerns out of the command and orchestration layers.
package views

import (
	"github.com/mitchellh/colorstring"

	"github.com/rafagsiqueira/statemover/internal/terminal"
)

// View is the shared presentation state every command view builds on:
// the terminal streams and the color configuration.
type View struct {
	streams  *terminal.Streams
	colorize *colorstring.Colorize
}

// NewView constructs a View with colors enabled whenever stdout is a
// terminal.
func NewView(streams *terminal.Streams) *View {
	return &View{
		streams: streams,
		colorize: &colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: !streams.Stdout.IsTerminal(),
			Reset:   true,
		},
	}
}

// Configure applies the user's presentation flags.
func (v *View) Configure(noColor bool) {
	if noColor {
		v.colorize.Disable = true
	}
}
