// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package audit instruments outbound HTTP requests: every request issued by
core/requests is wrapped in a Span and logged through zerolog.
*/
package audit

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetDefaultLogger provides an ok log output format on startup if no config is set.
//
// Colored console output is used only when stderr is a terminal; otherwise
// plain JSON lines are emitted.
func SetDefaultLogger() {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

		return
	}

	log.Logger = log.Output(os.Stderr)
}

// SetLogLevel applies a named zerolog level, defaulting to info for
// unrecognized names.
func SetLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(parsed)
}
