package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/corvusHold/leasedesk/internal/events/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_PublishWritesEvent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(zerolog.New(&buf))

	err := l.Publish(context.Background(), domain.Event{
		Type:     domain.TypeDeliverySent,
		TenantID: "t-1",
		Subject:  "dlv-1",
		Meta:     map[string]string{"channel": "both"},
		Time:     time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"type":"delivery.sent"`)
	assert.Contains(t, out, `"tenant_id":"t-1"`)
	assert.Contains(t, out, `"channel":"both"`)
}

func TestLogger_PrefersContextLogger(t *testing.T) {
	var fallback, scoped bytes.Buffer
	l := NewLogger(zerolog.New(&fallback))
	ctxLog := zerolog.New(&scoped)
	ctx := ctxLog.WithContext(context.Background())

	require.NoError(t, l.Publish(ctx, domain.Event{Type: domain.TypeTemplateAdded}))
	assert.Empty(t, fallback.String())
	assert.Contains(t, scoped.String(), "template.added")
}
