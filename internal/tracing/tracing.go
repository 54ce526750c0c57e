// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

// Package tracing provides the OpenTelemetry tracer used around the
// migration stages.
//
// statemover does not configure an exporter itself; unless the
// embedding process installs a global tracer provider, all spans are
// no-ops. This keeps tracing available for the environments that want
// it without imposing any setup cost on the ones that don't.
package tracing

import (
	"runtime"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const fallbackTracerName = "github.com/rafagsiqueira/statemover"

// Tracer returns the tracer that migration stages create their spans
// from, named after the calling package. It resolves the global
// provider on every call so that a provider installed after package
// initialization is still honored.
func Tracer() trace.Tracer {
	name := fallbackTracerName
	if pc, _, _, ok := runtime.Caller(1); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			name = extractImportPath(fn.Name())
		}
	}
	return otel.GetTracerProvider().Tracer(name)
}

// extractImportPath reduces a runtime function name such as
// "github.com/rafagsiqueira/statemover/internal/migrate.(*Runner).Run"
// to the import path of the package that contains the function.
func extractImportPath(fullName string) string {
	slash := strings.LastIndex(fullName, "/")
	dot := strings.Index(fullName[slash+1:], ".")
	if dot < 0 {
		return "unknown"
	}
	return fullName[:slash+1+dot]
}
