package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvusHold/leasedesk/internal/delivery/domain"
	lease "github.com/corvusHold/leasedesk/internal/lease/domain"
	"github.com/corvusHold/leasedesk/internal/mergefields"
	tdomain "github.com/corvusHold/leasedesk/internal/templates/domain"
)

var t0 = time.Date(2025, time.September, 1, 10, 0, 0, 0, time.UTC)

func renewalResult() lease.Result {
	return lease.Result{
		Kind: lease.KindRenewal,
		Lease: lease.LeaseRecord{
			TenantID:     "t-1",
			TenantName:   "Alice Johnson",
			PropertyName: "Sunset Apartments",
			UnitNumber:   "4B",
			MonthlyRent:  1575,
			StartDate:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC),
		},
		PreviousRent: 1500,
	}
}

func TestNewOrchestrator_Defaults(t *testing.T) {
	o, err := NewOrchestrator("d1", domain.OriginManual, domain.NewDraft{
		Recipient: domain.Recipient{Name: "Bob Lee"},
		Fields:    mergefields.Fields{UnitNumber: "12", PropertyAddress: "9 Elm St"},
	}, t0)
	require.NoError(t, err)
	d := o.Draft()
	assert.Equal(t, domain.StateDrafting, d.State)
	assert.Equal(t, domain.ChannelEmail, d.Channel)
	assert.Equal(t, tdomain.DocumentLease, d.TemplateType)
	assert.Equal(t, "Hi Bob, please find attached your lease agreement for Unit 12 at 9 Elm St. Let me know if you have any questions.", d.Message)

	_, err = NewOrchestrator("d2", domain.OriginManual, domain.NewDraft{Channel: "sms"}, t0)
	assert.ErrorIs(t, err, domain.ErrInvalidChannel)
}

func TestDraftForResult_RenewalOnly(t *testing.T) {
	opts := DraftOptions{Landlord: mergefields.Landlord{Name: "Bob Smith"}}
	o, err := DraftForResult("d1", renewalResult(), domain.Recipient{Email: "alice@example.com"}, opts, t0)
	require.NoError(t, err)
	require.NotNil(t, o)
	d := o.Draft()
	assert.Equal(t, domain.StateDrafting, d.State)
	assert.Equal(t, domain.OriginRenewal, d.Origin)
	assert.Equal(t, tdomain.DocumentRenewal, d.TemplateType)
	assert.Equal(t, "Alice Johnson", d.Recipient.Name)
	assert.Equal(t, "alice_johnson_lease_01_24_10_26.pdf", d.DocumentName)
	assert.Equal(t, "Hi Alice, your lease renewal for Unit 4B at Sunset Apartments is ready for review. "+
		"The renewed lease runs until October 31, 2026 at $1,575 per month. Please review and sign at your earliest convenience.", d.Message)
	assert.Equal(t, "Bob Smith", d.Fields.LandlordName)
	assert.Equal(t, "33 months", d.Fields.LeaseTerm)

	ext := renewalResult()
	ext.Kind = lease.KindExtension
	o, err = DraftForResult("d2", ext, domain.Recipient{}, opts, t0)
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestOrchestrator_Lifecycle(t *testing.T) {
	o, err := NewOrchestrator("d1", domain.OriginManual, domain.NewDraft{
		Channel:      domain.ChannelBoth,
		Recipient:    domain.Recipient{Name: "Alice", Email: "alice@example.com", Phone: "+1 (555) 123-4567"},
		Message:      "Hello & welcome",
		DocumentName: "alice_lease_01_24_10_25.pdf",
		Fields:       mergefields.Fields{TenantName: "Alice"},
	}, t0)
	require.NoError(t, err)

	before := o.Draft()
	p, err := o.Preview("Dear {{TENANT_NAME}} {{UNIT_NUMBER}} {{FOO}}")
	require.NoError(t, err)
	assert.Equal(t, "Dear Alice  {{FOO}}", p.Body)
	assert.Equal(t, []string{"{{UNIT_NUMBER}}"}, p.Blank)
	assert.Equal(t, []string{"{{FOO}}"}, p.Unknown)
	after := o.Draft()
	assert.Equal(t, domain.StatePreviewing, after.State)
	after.State = before.State
	assert.Equal(t, before, after)

	require.NoError(t, o.Edit(t0.Add(time.Minute)))
	assert.Equal(t, domain.StateDrafting, o.State())

	_, err = o.Preview("x")
	require.NoError(t, err)
	r, err := o.Send("r1", t0.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, domain.StateSent, o.State())
	assert.Equal(t, domain.ChannelBoth, r.Channel)
	assert.Equal(t, []domain.Channel{domain.ChannelEmail, domain.ChannelWhatsApp}, r.Channels)
	assert.Equal(t, "https://wa.me/15551234567?text=Hello%20%26%20welcome", r.WhatsAppLink)
	assert.Equal(t, "d1", r.DeliveryID)
	require.NotNil(t, o.Draft().Receipt)

	_, err = o.Send("r2", t0)
	assert.ErrorIs(t, err, domain.ErrAlreadySent)
	assert.ErrorIs(t, o.Edit(t0), domain.ErrAlreadySent)
	msg := "changed"
	assert.ErrorIs(t, o.Apply(domain.Patch{Message: &msg}, t0), domain.ErrAlreadySent)
	_, err = o.Preview("x")
	assert.ErrorIs(t, err, domain.ErrAlreadySent)
}

func TestOrchestrator_SendRequiresContact(t *testing.T) {
	tests := []struct {
		name    string
		channel domain.Channel
		to      domain.Recipient
		wantErr error
	}{
		{"email without address", domain.ChannelEmail, domain.Recipient{Phone: "555"}, domain.ErrMissingRecipient},
		{"whatsapp without digits", domain.ChannelWhatsApp, domain.Recipient{Email: "a@b.c", Phone: "n/a"}, domain.ErrMissingRecipient},
		{"both missing phone", domain.ChannelBoth, domain.Recipient{Email: "a@b.c"}, domain.ErrMissingRecipient},
		{"email ok", domain.ChannelEmail, domain.Recipient{Email: "a@b.c"}, nil},
		{"whatsapp ok", domain.ChannelWhatsApp, domain.Recipient{Phone: "555-0100"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOrchestrator("d", domain.OriginManual, domain.NewDraft{Channel: tt.channel, Recipient: tt.to, DocumentName: "d.pdf"}, t0)
			require.NoError(t, err)
			r, err := o.Send("r", t0)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, domain.StateDrafting, o.State())
				return
			}
			require.NoError(t, err)
			assert.Len(t, r.Channels, 1)
		})
	}
}

func TestOrchestrator_SendRequiresDocumentName(t *testing.T) {
	o, err := NewOrchestrator("d", domain.OriginManual, domain.NewDraft{Recipient: domain.Recipient{Email: "a@b.c"}}, t0)
	require.NoError(t, err)
	_, err = o.Send("r", t0)
	assert.ErrorIs(t, err, domain.ErrMissingDocument)
	assert.Equal(t, domain.StateDrafting, o.State())

	name := "a_lease_01_25_01_26.pdf"
	require.NoError(t, o.Apply(domain.Patch{DocumentName: &name}, t0))
	r, err := o.Send("r", t0)
	require.NoError(t, err)
	assert.Equal(t, name, r.DocumentName)
}

func TestDraftForResult_NamesFromPreviousEndWithoutStart(t *testing.T) {
	res := renewalResult()
	res.Lease.StartDate = time.Time{}
	res.PreviousEndDate = time.Date(2025, time.October, 31, 0, 0, 0, 0, time.UTC)
	o, err := DraftForResult("d1", res, domain.Recipient{Email: "alice@example.com"}, DraftOptions{}, t0)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, "alice_johnson_lease_10_25_10_26.pdf", o.Draft().DocumentName)

	r, err := o.Send("r1", t0)
	require.NoError(t, err)
	assert.Equal(t, "alice_johnson_lease_10_25_10_26.pdf", r.DocumentName)
}

func TestOrchestrator_ApplyRejectsBadChannel(t *testing.T) {
	o, err := NewOrchestrator("d", domain.OriginManual, domain.NewDraft{}, t0)
	require.NoError(t, err)
	bad := domain.Channel("fax")
	assert.ErrorIs(t, o.Apply(domain.Patch{Channel: &bad}, t0), domain.ErrInvalidChannel)
	wa := domain.ChannelWhatsApp
	require.NoError(t, o.Apply(domain.Patch{Channel: &wa}, t0))
	assert.Equal(t, domain.ChannelWhatsApp, o.Draft().Channel)
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Hi there, please find attached your lease agreement for your home. Let me know if you have any questions.",
		DefaultMessage(domain.Recipient{}, mergefields.Fields{}))
	assert.Equal(t, "Hi Ann, your lease renewal for 1 Pine Rd is ready for review. Please review and sign at your earliest convenience.",
		RenewalMessage(domain.Recipient{}, mergefields.Fields{TenantName: "Ann Lee", PropertyAddress: "1 Pine Rd"}))
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "15551234567", NormalizePhone("+1 (555) 123-4567"))
	assert.Equal(t, "", WhatsAppLink("none", "hi"))
	assert.Equal(t, "https://wa.me/5550100", WhatsAppLink("555-0100", ""))
	assert.Equal(t, "https://wa.me/5550100?text=a%2Bb%20c%3F", WhatsAppLink("555 0100", "a+b c?"))
}
