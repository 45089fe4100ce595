// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package prism

import (
	"log/slog"

	"github.com/prism-gfx/prism/internal/debug"
)

// SetLogger configures the logger for prism and all its sub-packages. By
// default prism produces no log output. Pass nil to restore the silent
// default.
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	debug.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return debug.Logger()
}
