package domain

import (
	"context"
	"time"
)

// Event represents a lease engine occurrence worth recording.
// Type examples: "lease.renewal.computed", "delivery.sent", "template.added".
// Subject is the id of the affected object (delivery id, template id);
// Meta may contain channel, document name, rent, etc.
type Event struct {
	Type     string
	TenantID string
	Subject  string
	Meta     map[string]string
	Time     time.Time
}

// Publisher publishes events to an external system (log, queue, etc.).
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Event types.
const (
	TypeRenewalComputed   = "lease.renewal.computed"
	TypeExtensionComputed = "lease.extension.computed"
	TypeDeliveryDrafted   = "delivery.drafted"
	TypeDeliverySent      = "delivery.sent"
	TypeTemplateAdded     = "template.added"
	TypeTemplateRemoved   = "template.removed"
)
