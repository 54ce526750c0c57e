// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package views

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/rafagsiqueira/statemover/internal/command/views/json"
	"github.com/rafagsiqueira/statemover/internal/version"
)

// JSONViewVersion is the schema version of the machine-readable UI.
// Any breaking change to the message format increments it.
const JSONViewVersion = "0.1.0"

// JSONView emits the machine-readable UI: one JSON object per line on
// stdout, each carrying a "type" field from the json package.
type JSONView struct {
	log hclog.Logger
}

// NewJSONView constructs the JSON view and emits the version message.
func NewJSONView(view *View) *JSONView {
	log := hclog.New(&hclog.LoggerOptions{
		Name:       "statemover.ui",
		Output:     view.streams.Stdout.File,
		JSONFormat: true,
	})
	jv := &JSONView{log: log}
	jv.log.Info(
		fmt.Sprintf("Statemover %s", version.String()),
		"type", json.MessageVersion,
		"statemover", version.String(),
		"ui", JSONViewVersion,
	)
	return jv
}

func (v *JSONView) Log(message string) {
	v.log.Info(message, "type", json.MessageLog)
}

func (v *JSONView) Move(move json.Move) {
	v.log.Info(
		fmt.Sprintf("%s: %s", move.Outcome, move.Address),
		"type", json.MessageMove,
		"move", move,
	)
}

func (v *JSONView) Summary(summary json.Summary) {
	v.log.Info(
		fmt.Sprintf("%s complete", summary.Operation),
		"type", json.MessageSummary,
		"summary", summary,
	)
}

func (v *JSONView) Error(message string) {
	v.log.Error(message, "type", json.MessageError)
}
