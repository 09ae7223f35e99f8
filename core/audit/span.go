// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"fmt"
	"runtime/trace"
	"time"
)

// Span represents an HTTP request in flight.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration

	Destination TrafficDestination
	RequestID   string
	Method      string
	URL         string
	StatusCode  int
	Error       error
	BodySize    int
}

// TrafficDestination describes the logical destination of an HTTP request.
type TrafficDestination string

// Constants for traffic destinations.
const (
	ToAPI   TrafficDestination = "api"
	ToOAuth TrafficDestination = "oauth"
	ToDocs  TrafficDestination = "docs"
)

func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "http."+string(span.Destination))

	return ctx
}

// End stops the span clock. Calling End more than once is a no-op.
func (span *Span) End() {
	if span.task != nil {
		span.duration = time.Since(span.start)
		span.task.End()

		span.task = nil
	}
}

// Log emits one debug line describing the completed request.
func (span Span) Log(ctx context.Context) {
	event := logEvent(ctx)

	event.Str("sys", "http")
	event.Str("method", span.Method)
	event.Str("url", span.URL)
	event.Int("status_code", span.StatusCode)
	event.Str("len", humanizeSize(span.BodySize))
	event.Dur("dur", span.duration)
	event.Str("destination", string(span.Destination))
	event.Str("request_id", span.RequestID)

	if span.Error != nil {
		event.Err(span.Error)
	}

	event.Msg("Outbound request")
}

// humanizeSize renders a byte count with a compact unit suffix.
func humanizeSize(n int) string {
	const unit = 1024

	switch {
	case n < unit:
		return fmt.Sprintf("%dB", n)
	case n < unit*unit:
		return fmt.Sprintf("%.1fKiB", float64(n)/unit)
	default:
		return fmt.Sprintf("%.1fMiB", float64(n)/(unit*unit))
	}
}
