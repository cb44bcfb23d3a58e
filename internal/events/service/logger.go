package service

import (
	"context"

	"github.com/corvusHold/leasedesk/internal/events/domain"
	"github.com/rs/zerolog"
)

// Logger is a simple Publisher that logs events.
// A logger attached to ctx wins over the one given at construction.
type Logger struct {
	log zerolog.Logger
}

func NewLogger(l zerolog.Logger) *Logger { return &Logger{log: l} }

func (l *Logger) Publish(ctx context.Context, e domain.Event) error {
	lg := zerolog.Ctx(ctx)
	if lg.GetLevel() == zerolog.Disabled {
		lg = &l.log
	}
	lg.Info().
		Str("type", e.Type).
		Str("tenant_id", e.TenantID).
		Str("subject", e.Subject).
		Fields(map[string]any{"meta": e.Meta}).
		Time("ts", e.Time).
		Msg("event")
	return nil
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, domain.Event) error { return nil }
