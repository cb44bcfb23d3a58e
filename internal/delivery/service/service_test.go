package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvusHold/leasedesk/internal/delivery/domain"
	evdomain "github.com/corvusHold/leasedesk/internal/events/domain"
	lease "github.com/corvusHold/leasedesk/internal/lease/domain"
	"github.com/corvusHold/leasedesk/internal/mergefields"
	tdomain "github.com/corvusHold/leasedesk/internal/templates/domain"
	trepo "github.com/corvusHold/leasedesk/internal/templates/repository"
	tsvc "github.com/corvusHold/leasedesk/internal/templates/service"
)

type publisherFunc func(ctx context.Context, e evdomain.Event) error

func (f publisherFunc) Publish(ctx context.Context, e evdomain.Event) error { return f(ctx, e) }

type fixture struct {
	svc       *service
	templates tdomain.Service
	events    []evdomain.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{templates: tsvc.New(trepo.NewMemory(), nil, zerolog.Nop())}
	require.NoError(t, tsvc.Seed(ctx, f.templates))
	pub := publisherFunc(func(_ context.Context, e evdomain.Event) error {
		f.events = append(f.events, e)
		return nil
	})
	n := 0
	f.svc = New(f.templates, DraftOptions{Landlord: mergefields.Landlord{Name: "Bob Smith"}}, pub, zerolog.Nop()).(*service)
	f.svc.now = func() time.Time { return t0 }
	f.svc.newID = func() string { n++; return fmt.Sprintf("id-%d", n) }
	return f
}

func TestService_RenewalDraftSendRecordsUsage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	d, err := f.svc.DraftForResult(ctx, renewalResult(), domain.Recipient{Email: "alice@example.com"})
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, domain.StateDrafting, d.State)
	assert.Equal(t, tdomain.DocumentRenewal, d.TemplateType)
	require.NotEmpty(t, d.TemplateID)
	tpl, err := f.templates.Get(ctx, d.TemplateID)
	require.NoError(t, err)
	assert.Equal(t, tdomain.DocumentRenewal, tpl.DocumentType)

	p, err := f.svc.Preview(ctx, d.ID)
	require.NoError(t, err)
	assert.Contains(t, p.Body, "Bob Smith and Alice Johnson agree to renew the lease for Sunset Apartments, Unit 4B.")
	assert.Contains(t, p.Body, "until October 31, 2026 at a monthly rent of $1,575.")
	got, err := f.svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatePreviewing, got.State)
	tpl, _ = f.templates.Get(ctx, d.TemplateID)
	assert.Equal(t, 0, tpl.UsageCount)

	r, err := f.svc.Send(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice_johnson_lease_01_24_10_26.pdf", r.DocumentName)
	assert.Equal(t, []domain.Channel{domain.ChannelEmail}, r.Channels)
	tpl, _ = f.templates.Get(ctx, d.TemplateID)
	assert.Equal(t, 1, tpl.UsageCount)
	require.NotNil(t, tpl.LastUsedAt)

	_, err = f.svc.Send(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadySent)
	tpl, _ = f.templates.Get(ctx, d.TemplateID)
	assert.Equal(t, 1, tpl.UsageCount)

	var types []string
	for _, e := range f.events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{evdomain.TypeDeliveryDrafted, evdomain.TypeDeliverySent}, types)
}

func TestService_ExtensionNeverDrafts(t *testing.T) {
	f := newFixture(t)
	res := renewalResult()
	res.Kind = lease.KindExtension
	d, err := f.svc.DraftForResult(context.Background(), res, domain.Recipient{Email: "a@b.c"})
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Empty(t, f.svc.drafts)
	assert.Empty(t, f.events)
}

func TestService_CreateUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	d, err := f.svc.Create(ctx, domain.NewDraft{Recipient: domain.Recipient{Name: "Carl"}})
	require.NoError(t, err)
	assert.Equal(t, domain.OriginManual, d.Origin)
	assert.Equal(t, tdomain.DocumentLease, d.TemplateType)
	assert.NotEmpty(t, d.TemplateID)

	_, err = f.svc.Create(ctx, domain.NewDraft{TemplateType: "invoice"})
	assert.Error(t, err)
	_, err = f.svc.Create(ctx, domain.NewDraft{Channel: "pigeon"})
	assert.ErrorIs(t, err, domain.ErrInvalidChannel)

	_, err = f.svc.Send(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrMissingRecipient)

	wa := domain.ChannelWhatsApp
	to := domain.Recipient{Name: "Carl", Phone: "555 0100"}
	doc := "carl_lease_02_25_02_26.pdf"
	_, err = f.svc.Preview(ctx, d.ID)
	require.NoError(t, err)
	d, err = f.svc.Update(ctx, d.ID, domain.Patch{Channel: &wa, Recipient: &to, DocumentName: &doc})
	require.NoError(t, err)
	assert.Equal(t, domain.StateDrafting, d.State)

	r, err := f.svc.Send(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/5550100?text=", r.WhatsAppLink[:len("https://wa.me/5550100?text=")])

	_, err = f.svc.Update(ctx, d.ID, domain.Patch{Recipient: &to})
	assert.ErrorIs(t, err, domain.ErrAlreadySent)
	_, err = f.svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.Send(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.Preview(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_WithoutTemplates(t *testing.T) {
	s := New(nil, DraftOptions{Channel: domain.ChannelWhatsApp}, nil, zerolog.Nop())
	d, err := s.Create(context.Background(), domain.NewDraft{Recipient: domain.Recipient{Phone: "1"}, DocumentName: "x.pdf"})
	require.NoError(t, err)
	assert.Equal(t, domain.ChannelWhatsApp, d.Channel)
	assert.Empty(t, d.TemplateID)
	p, err := s.Preview(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Empty(t, p.Body)
	_, err = s.Send(context.Background(), d.ID)
	require.NoError(t, err)
}

func TestService_RemovedTemplateBlocksSend(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	d, err := f.svc.Create(ctx, domain.NewDraft{Recipient: domain.Recipient{Email: "a@example.com"}, DocumentName: "a.pdf"})
	require.NoError(t, err)
	require.NotEmpty(t, d.TemplateID)
	require.NoError(t, f.templates.Remove(ctx, d.TemplateID))

	_, err = f.svc.Preview(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrTemplateRemoved)
	_, err = f.svc.Send(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrTemplateRemoved)
	got, err := f.svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateDrafting, got.State)
	assert.Nil(t, got.Receipt)

	tpl, err := f.templates.Add(ctx, tdomain.NewTemplate{Name: "Short lease", DocumentType: tdomain.DocumentLease, Body: "{{TENANT_NAME}}"})
	require.NoError(t, err)
	other := tpl.ID
	_, err = f.svc.Update(ctx, d.ID, domain.Patch{TemplateID: &other})
	require.NoError(t, err)
	r, err := f.svc.Send(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, other, r.TemplateID)
}

func TestService_UnknownTemplateRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Create(ctx, domain.NewDraft{TemplateID: "missing"})
	assert.ErrorIs(t, err, domain.ErrUnknownTemplate)

	d, err := f.svc.Create(ctx, domain.NewDraft{})
	require.NoError(t, err)
	bad := "missing"
	_, err = f.svc.Update(ctx, d.ID, domain.Patch{TemplateID: &bad})
	assert.ErrorIs(t, err, domain.ErrUnknownTemplate)
	none := ""
	d, err = f.svc.Update(ctx, d.ID, domain.Patch{TemplateID: &none})
	require.NoError(t, err)
	assert.Empty(t, d.TemplateID)
}
