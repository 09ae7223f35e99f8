// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logEvent builds a debug event from the context logger, falling back to the
// global logger when the context carries none.
func logEvent(ctx context.Context) *zerolog.Event {
	if logger := zerolog.Ctx(ctx); logger.GetLevel() != zerolog.Disabled {
		return logger.Debug()
	}

	return log.Debug()
}
