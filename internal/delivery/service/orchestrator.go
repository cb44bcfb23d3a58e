package service

import (
	"strings"
	"time"

	"github.com/corvusHold/leasedesk/internal/delivery/domain"
	"github.com/corvusHold/leasedesk/internal/documents"
	lease "github.com/corvusHold/leasedesk/internal/lease/domain"
	"github.com/corvusHold/leasedesk/internal/mergefields"
	tdomain "github.com/corvusHold/leasedesk/internal/templates/domain"
)

// Orchestrator drives one delivery request through drafting, previewing and
// sent. It is not safe for concurrent use; Sent is terminal.
type Orchestrator struct {
	d domain.Draft
}

// NewOrchestrator starts a draft in the drafting state. An empty channel
// defaults to email, an empty template type to lease and an empty message to
// DefaultMessage.
func NewOrchestrator(id string, origin domain.Origin, in domain.NewDraft, now time.Time) (*Orchestrator, error) {
	ch := in.Channel
	if ch == "" {
		ch = domain.ChannelEmail
	}
	if !ch.Valid() {
		return nil, domain.ErrInvalidChannel
	}
	tt := in.TemplateType
	if tt == "" {
		tt = tdomain.DocumentLease
	}
	msg := in.Message
	if strings.TrimSpace(msg) == "" {
		msg = DefaultMessage(in.Recipient, in.Fields)
	}
	return &Orchestrator{d: domain.Draft{
		ID:           id,
		State:        domain.StateDrafting,
		Origin:       origin,
		Channel:      ch,
		Recipient:    in.Recipient,
		Message:      msg,
		TemplateType: tt,
		TemplateID:   in.TemplateID,
		DocumentName: in.DocumentName,
		Fields:       in.Fields,
		CreatedAt:    now,
		UpdatedAt:    now,
	}}, nil
}

// DraftOptions carry the defaults for an automatic renewal draft.
type DraftOptions struct {
	Channel  domain.Channel
	Landlord mergefields.Landlord
}

// DraftForResult opens the delivery that follows a renewal: a fresh draft with
// the renewal template type and message. Extensions never open a delivery, so
// the result is nil for them.
func DraftForResult(id string, res lease.Result, to domain.Recipient, opts DraftOptions, now time.Time) (*Orchestrator, error) {
	if res.Kind != lease.KindRenewal {
		return nil, nil
	}
	if to.Name == "" {
		to.Name = res.Lease.TenantName
	}
	fields := mergefields.FromLease(
		mergefields.Lease{
			PropertyAddress: res.Lease.PropertyName,
			UnitNumber:      res.Lease.UnitNumber,
			MonthlyRent:     res.Lease.MonthlyRent,
			SecurityDeposit: res.Lease.SecurityDeposit,
			StartDate:       res.Lease.StartDate,
			EndDate:         res.Lease.EndDate,
		},
		mergefields.Tenant{Name: to.Name, Email: to.Email, Phone: to.Phone},
		opts.Landlord,
		now,
	)
	// Without a recorded start the renewed term starts at the previous end.
	start := res.Lease.StartDate
	if start.IsZero() {
		start = res.PreviousEndDate
	}
	// A tenant without a usable name still gets a draft; the name can be set before sending.
	name, _ := documents.NameFor(to.Name, start, res.Lease.EndDate)
	return NewOrchestrator(id, domain.OriginRenewal, domain.NewDraft{
		Channel:      opts.Channel,
		Recipient:    to,
		Message:      RenewalMessage(to, fields),
		TemplateType: tdomain.DocumentRenewal,
		DocumentName: name,
		Fields:       fields,
	}, now)
}

// Restore wraps a stored snapshot.
func Restore(d domain.Draft) *Orchestrator { return &Orchestrator{d: d} }

// Draft returns a snapshot of the current draft.
func (o *Orchestrator) Draft() domain.Draft {
	d := o.d
	if o.d.Receipt != nil {
		r := *o.d.Receipt
		d.Receipt = &r
	}
	return d
}

func (o *Orchestrator) State() domain.State { return o.d.State }

// Apply edits the draft and returns it to drafting.
func (o *Orchestrator) Apply(p domain.Patch, now time.Time) error {
	if o.d.State == domain.StateSent {
		return domain.ErrAlreadySent
	}
	if p.Channel != nil && !p.Channel.Valid() {
		return domain.ErrInvalidChannel
	}
	if p.Channel != nil {
		o.d.Channel = *p.Channel
	}
	if p.Recipient != nil {
		o.d.Recipient = *p.Recipient
	}
	if p.Message != nil {
		o.d.Message = *p.Message
	}
	if p.TemplateType != nil {
		o.d.TemplateType = *p.TemplateType
	}
	if p.TemplateID != nil {
		o.d.TemplateID = *p.TemplateID
	}
	if p.DocumentName != nil {
		o.d.DocumentName = *p.DocumentName
	}
	if p.Fields != nil {
		o.d.Fields = *p.Fields
	}
	o.d.State = domain.StateDrafting
	o.d.UpdatedAt = now
	return nil
}

// Edit returns a previewing draft to drafting without changing it.
func (o *Orchestrator) Edit(now time.Time) error {
	return o.Apply(domain.Patch{}, now)
}

// Preview resolves body against the draft's fields and moves to previewing.
// The draft content is left untouched.
func (o *Orchestrator) Preview(body string) (tdomain.Preview, error) {
	if o.d.State == domain.StateSent {
		return tdomain.Preview{}, domain.ErrAlreadySent
	}
	o.d.State = domain.StatePreviewing
	return tdomain.Preview{
		TemplateID: o.d.TemplateID,
		Body:       mergefields.Resolve(body, o.d.Fields),
		Blank:      mergefields.Blank(body, o.d.Fields),
		Unknown:    mergefields.Unknown(body),
	}, nil
}

// Send moves the draft to sent and returns its single receipt.
func (o *Orchestrator) Send(receiptID string, now time.Time) (domain.Receipt, error) {
	if o.d.State == domain.StateSent {
		return domain.Receipt{}, domain.ErrAlreadySent
	}
	if !o.d.Channel.Valid() {
		return domain.Receipt{}, domain.ErrInvalidChannel
	}
	channels := o.d.Channel.Expand()
	var link string
	for _, ch := range channels {
		switch ch {
		case domain.ChannelEmail:
			if strings.TrimSpace(o.d.Recipient.Email) == "" {
				return domain.Receipt{}, domain.ErrMissingRecipient
			}
		case domain.ChannelWhatsApp:
			link = WhatsAppLink(o.d.Recipient.Phone, o.d.Message)
			if link == "" {
				return domain.Receipt{}, domain.ErrMissingRecipient
			}
		}
	}
	if strings.TrimSpace(o.d.DocumentName) == "" {
		return domain.Receipt{}, domain.ErrMissingDocument
	}
	r := domain.Receipt{
		ID:           receiptID,
		DeliveryID:   o.d.ID,
		Recipient:    o.d.Recipient,
		Channel:      o.d.Channel,
		Channels:     channels,
		Message:      o.d.Message,
		DocumentName: o.d.DocumentName,
		TemplateType: o.d.TemplateType,
		TemplateID:   o.d.TemplateID,
		WhatsAppLink: link,
		SentAt:       now,
	}
	o.d.State = domain.StateSent
	o.d.UpdatedAt = now
	o.d.Receipt = &r
	return r, nil
}
