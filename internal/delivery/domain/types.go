package domain

import (
	"context"
	"errors"
	"time"

	lease "github.com/corvusHold/leasedesk/internal/lease/domain"
	"github.com/corvusHold/leasedesk/internal/mergefields"
	tdomain "github.com/corvusHold/leasedesk/internal/templates/domain"
)

// Channel is the medium a document is handed off through.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelBoth     Channel = "both"
)

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelWhatsApp, ChannelBoth:
		return true
	}
	return false
}

// Expand lists the concrete media covered by c.
func (c Channel) Expand() []Channel {
	switch c {
	case ChannelEmail, ChannelWhatsApp:
		return []Channel{c}
	case ChannelBoth:
		return []Channel{ChannelEmail, ChannelWhatsApp}
	}
	return nil
}

// State of a delivery draft.
type State string

const (
	StateDrafting   State = "drafting"
	StatePreviewing State = "previewing"
	StateSent       State = "sent"
)

// Origin records how a draft came to exist.
type Origin string

const (
	OriginManual  Origin = "manual"
	OriginRenewal Origin = "renewal"
)

var (
	ErrAlreadySent      = errors.New("delivery already sent")
	ErrInvalidChannel   = errors.New("invalid delivery channel")
	ErrMissingRecipient = errors.New("missing recipient contact for channel")
	ErrNotFound         = errors.New("delivery not found")
	ErrMissingDocument  = errors.New("delivery has no document name")
	// ErrUnknownTemplate rejects a draft that names a template id not in the store.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrTemplateRemoved is returned when the draft's template was deleted after drafting.
	ErrTemplateRemoved = errors.New("delivery template was removed")
)

// Recipient is who the document goes to.
type Recipient struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email"`
	Phone string `json:"phone,omitempty" yaml:"phone"`
}

// Draft is a snapshot of a delivery request.
type Draft struct {
	ID           string               `json:"id"`
	State        State                `json:"state"`
	Origin       Origin               `json:"origin"`
	Channel      Channel              `json:"channel"`
	Recipient    Recipient            `json:"recipient"`
	Message      string               `json:"message"`
	TemplateType tdomain.DocumentType `json:"template_type"`
	TemplateID   string               `json:"template_id,omitempty"`
	DocumentName string               `json:"document_name,omitempty"`
	Fields       mergefields.Fields   `json:"fields"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	Receipt      *Receipt             `json:"receipt,omitempty"`
}

// Receipt is emitted once per send. A "both" send yields one receipt whose
// Channels lists email and whatsapp.
type Receipt struct {
	ID           string               `json:"id"`
	DeliveryID   string               `json:"delivery_id"`
	Recipient    Recipient            `json:"recipient"`
	Channel      Channel              `json:"channel"`
	Channels     []Channel            `json:"channels"`
	Message      string               `json:"message"`
	DocumentName string               `json:"document_name,omitempty"`
	TemplateType tdomain.DocumentType `json:"template_type"`
	TemplateID   string               `json:"template_id,omitempty"`
	WhatsAppLink string               `json:"whatsapp_link,omitempty"`
	SentAt       time.Time            `json:"sent_at"`
}

// NewDraft is the caller input for Create.
type NewDraft struct {
	Channel      Channel
	Recipient    Recipient
	Message      string
	TemplateType tdomain.DocumentType
	TemplateID   string
	DocumentName string
	Fields       mergefields.Fields
}

// Patch edits a draft. Nil members are left unchanged.
type Patch struct {
	Channel      *Channel
	Recipient    *Recipient
	Message      *string
	TemplateType *tdomain.DocumentType
	TemplateID   *string
	DocumentName *string
	Fields       *mergefields.Fields
}

// Drafter creates the delivery draft that follows a renewal.
type Drafter interface {
	// DraftForResult returns nil without error for extension results.
	DraftForResult(ctx context.Context, res lease.Result, to Recipient) (*Draft, error)
}

// Service manages delivery drafts.
type Service interface {
	Drafter
	Create(ctx context.Context, in NewDraft) (Draft, error)
	Get(ctx context.Context, id string) (Draft, error)
	Update(ctx context.Context, id string, p Patch) (Draft, error)
	Preview(ctx context.Context, id string) (tdomain.Preview, error)
	Send(ctx context.Context, id string) (Receipt, error)
}
