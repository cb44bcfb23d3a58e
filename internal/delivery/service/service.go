package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/corvusHold/leasedesk/internal/delivery/domain"
	evdomain "github.com/corvusHold/leasedesk/internal/events/domain"
	lease "github.com/corvusHold/leasedesk/internal/lease/domain"
	"github.com/corvusHold/leasedesk/internal/metrics"
	tdomain "github.com/corvusHold/leasedesk/internal/templates/domain"
)

type service struct {
	mu     sync.Mutex
	drafts map[string]*Orchestrator

	templates tdomain.Service
	opts      DraftOptions
	pub       evdomain.Publisher
	log       zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// New returns an in-memory domain.Service. templates resolves previews and
// records usage on send; it may be nil when no template store is wired.
func New(templates tdomain.Service, opts DraftOptions, pub evdomain.Publisher, log zerolog.Logger) domain.Service {
	return &service{
		drafts:    make(map[string]*Orchestrator),
		templates: templates,
		opts:      opts,
		pub:       pub,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *service) Create(ctx context.Context, in domain.NewDraft) (domain.Draft, error) {
	if in.Channel == "" {
		in.Channel = s.opts.Channel
	}
	if in.TemplateType != "" && !tdomain.IsAllowedDocumentType(in.TemplateType) {
		return domain.Draft{}, errors.New("unsupported template type: " + string(in.TemplateType))
	}
	if err := s.checkTemplate(ctx, in.TemplateID, domain.ErrUnknownTemplate); err != nil {
		return domain.Draft{}, err
	}
	o, err := NewOrchestrator(s.newID(), domain.OriginManual, in, s.now().UTC())
	if err != nil {
		return domain.Draft{}, err
	}
	return s.store(ctx, o), nil
}

func (s *service) DraftForResult(ctx context.Context, res lease.Result, to domain.Recipient) (*domain.Draft, error) {
	o, err := DraftForResult(s.newID(), res, to, s.opts, s.now().UTC())
	if err != nil || o == nil {
		return nil, err
	}
	d := s.store(ctx, o)
	return &d, nil
}

// store picks a template for the draft's type when none was chosen, keeps
// the draft and announces it.
func (s *service) store(ctx context.Context, o *Orchestrator) domain.Draft {
	if o.d.TemplateID == "" {
		o.d.TemplateID = s.defaultTemplate(ctx, o.d.TemplateType)
	}
	s.mu.Lock()
	s.drafts[o.d.ID] = o
	d := o.Draft()
	s.mu.Unlock()

	metrics.IncDeliveryDraft(string(d.Origin))
	s.publish(ctx, evdomain.TypeDeliveryDrafted, d.ID, map[string]string{
		"origin":        string(d.Origin),
		"channel":       string(d.Channel),
		"template_type": string(d.TemplateType),
	})
	s.log.Info().Str("delivery_id", d.ID).Str("origin", string(d.Origin)).Str("template_type", string(d.TemplateType)).Msg("delivery drafted")
	return d
}

func (s *service) defaultTemplate(ctx context.Context, tt tdomain.DocumentType) string {
	if s.templates == nil {
		return ""
	}
	items, err := s.templates.List(ctx, tt)
	if err != nil || len(items) == 0 {
		return ""
	}
	return items[0].ID
}

// checkTemplate reports missing when id names a template the store no longer has.
func (s *service) checkTemplate(ctx context.Context, id string, missing error) error {
	if id == "" || s.templates == nil {
		return nil
	}
	if _, err := s.templates.Get(ctx, id); err != nil {
		if errors.Is(err, tdomain.ErrNotFound) {
			return missing
		}
		return err
	}
	return nil
}

func (s *service) Get(ctx context.Context, id string) (domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.drafts[id]
	if !ok {
		return domain.Draft{}, domain.ErrNotFound
	}
	return o.Draft(), nil
}

func (s *service) Update(ctx context.Context, id string, p domain.Patch) (domain.Draft, error) {
	if p.TemplateType != nil && !tdomain.IsAllowedDocumentType(*p.TemplateType) {
		return domain.Draft{}, errors.New("unsupported template type: " + string(*p.TemplateType))
	}
	if p.TemplateID != nil {
		if err := s.checkTemplate(ctx, *p.TemplateID, domain.ErrUnknownTemplate); err != nil {
			return domain.Draft{}, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.drafts[id]
	if !ok {
		return domain.Draft{}, domain.ErrNotFound
	}
	if err := o.Apply(p, s.now().UTC()); err != nil {
		return domain.Draft{}, err
	}
	return o.Draft(), nil
}

func (s *service) Preview(ctx context.Context, id string) (tdomain.Preview, error) {
	s.mu.Lock()
	o, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return tdomain.Preview{}, domain.ErrNotFound
	}
	if o.State() == domain.StateSent {
		s.mu.Unlock()
		return tdomain.Preview{}, domain.ErrAlreadySent
	}
	templateID := o.d.TemplateID
	s.mu.Unlock()

	body := ""
	if templateID != "" && s.templates != nil {
		t, err := s.templates.Get(ctx, templateID)
		if errors.Is(err, tdomain.ErrNotFound) {
			return tdomain.Preview{}, domain.ErrTemplateRemoved
		}
		if err != nil {
			return tdomain.Preview{}, err
		}
		body = t.Body
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return o.Preview(body)
}

func (s *service) Send(ctx context.Context, id string) (domain.Receipt, error) {
	s.mu.Lock()
	o, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return domain.Receipt{}, domain.ErrNotFound
	}
	if o.State() == domain.StateSent {
		s.mu.Unlock()
		return domain.Receipt{}, domain.ErrAlreadySent
	}
	templateID := o.d.TemplateID
	s.mu.Unlock()

	if err := s.checkTemplate(ctx, templateID, domain.ErrTemplateRemoved); err != nil {
		return domain.Receipt{}, err
	}

	s.mu.Lock()
	r, err := o.Send(s.newID(), s.now().UTC())
	s.mu.Unlock()
	if err != nil {
		return domain.Receipt{}, err
	}

	if r.TemplateID != "" && s.templates != nil {
		if _, err := s.templates.RecordUse(ctx, r.TemplateID); err != nil {
			s.log.Warn().Err(err).Str("template_id", r.TemplateID).Msg("record template use failed")
		}
	}
	metrics.IncDeliverySent(string(r.Channel), string(r.TemplateType))
	s.publish(ctx, evdomain.TypeDeliverySent, r.DeliveryID, map[string]string{
		"receipt_id":    r.ID,
		"channel":       string(r.Channel),
		"document_name": r.DocumentName,
	})
	s.log.Info().Str("delivery_id", r.DeliveryID).Str("channel", string(r.Channel)).Str("document", r.DocumentName).Msg("delivery sent")
	return r, nil
}

func (s *service) publish(ctx context.Context, typ, subject string, meta map[string]string) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, evdomain.Event{Type: typ, Subject: subject, Meta: meta, Time: s.now()}); err != nil {
		s.log.Warn().Err(err).Str("type", typ).Msg("publish event failed")
	}
}
