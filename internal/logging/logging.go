// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

// Package logging configures the global logger that the rest of
// statemover writes to through the standard library "log" package.
//
// Call sites use log.Printf with a bracketed level prefix, e.g.
// log.Printf("[DEBUG] ..."), and hclog filters lines by that prefix.
package logging

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// envLog is the environment variable that controls the log level.
// Unset or empty means logging is off, matching the behavior of the
// underlying tool's TF_LOG.
const envLog = "STATEMOVER_LOG"

// ValidLevels are the log level names accepted in STATEMOVER_LOG.
var ValidLevels = []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "OFF"}

var logger hclog.Logger

// Init sets up the global log writer based on the STATEMOVER_LOG
// environment variable. It must be called once, early in main, before
// anything writes through the log package.
func Init() {
	logger = newHCLogger("statemover")
	log.SetFlags(0)
	log.SetPrefix("")
	log.SetOutput(logger.StandardWriter(&hclog.StandardLoggerOptions{
		InferLevels: true,
	}))
}

// IsDebugOrHigher returns whether the current log level captures
// debug output. Views use this to decide whether suggesting a verbose
// re-run is worthwhile.
func IsDebugOrHigher() bool {
	return logger != nil && logger.IsDebug()
}

func newHCLogger(name string) hclog.Logger {
	logOutput := io.Writer(os.Stderr)

	return hclog.New(&hclog.LoggerOptions{
		Name:              name,
		Level:             globalLogLevel(),
		Output:            logOutput,
		IndependentLevels: true,
	})
}

func globalLogLevel() hclog.Level {
	envLevel := strings.ToUpper(os.Getenv(envLog))
	if envLevel == "" || envLevel == "OFF" {
		return hclog.Off
	}
	if envLevel == "JSON" || envLevel == "TRUE" {
		// Historic values meaning "everything".
		return hclog.Trace
	}
	if isValidLogLevel(envLevel) {
		return hclog.LevelFromString(envLevel)
	}
	// An unrecognized level turns everything on rather than silently
	// discarding the diagnostics the user asked for.
	return hclog.Trace
}

func isValidLogLevel(level string) bool {
	for _, l := range ValidLevels {
		if level == l {
			return true
		}
	}
	return false
}
