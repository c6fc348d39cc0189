package events

import (
	"context"
	"log/slog"

	"github.com/chris/twogether-backend/pkg/metrics"
)

// Emit publishes an event whose write is already committed. Failures are logged and counted, never returned.
func Emit(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		metrics.EventPublishFailures.WithLabelValues(string(event.Type)).Inc()
		slog.ErrorContext(ctx, "CRITICAL: event committed but failed to publish",
			"type", event.Type, "couple_id", event.CoupleID, "error", err)
	}
}
