package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	evdomain "github.com/corvusHold/leasedesk/internal/events/domain"
	"github.com/corvusHold/leasedesk/internal/mergefields"
	"github.com/corvusHold/leasedesk/internal/metrics"
	domain "github.com/corvusHold/leasedesk/internal/templates/domain"
)

type service struct {
	repo domain.Repository
	pub  evdomain.Publisher
	log  zerolog.Logger
	now  func() time.Time
}

func New(repo domain.Repository, pub evdomain.Publisher, log zerolog.Logger) domain.Service {
	return &service{repo: repo, pub: pub, log: log, now: time.Now}
}

func (s *service) Add(ctx context.Context, in domain.NewTemplate) (domain.Template, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Template{}, errors.New("template name is required")
	}
	docType := in.DocumentType
	if docType == "" {
		docType = domain.DocumentLease
	}
	if !domain.IsAllowedDocumentType(docType) {
		return domain.Template{}, errors.New("unsupported document type: " + string(docType))
	}
	if in.Size < 0 {
		return domain.Template{}, errors.New("template size must not be negative")
	}
	size := in.Size
	if size == 0 {
		size = int64(len(in.Body))
	}

	now := s.now().UTC()
	t := domain.Template{
		ID:             s.repo.NextID(),
		Name:           name,
		Description:    strings.TrimSpace(in.Description),
		DocumentType:   docType,
		Body:           in.Body,
		Size:           size,
		UploadedAt:     now,
		LastModifiedAt: now,
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return domain.Template{}, err
	}
	s.refreshGauge(ctx)
	s.publish(ctx, evdomain.TypeTemplateAdded, t)
	s.log.Info().Str("template_id", t.ID).Str("name", t.Name).Msg("template added")
	return t, nil
}

func (s *service) Get(ctx context.Context, id string) (domain.Template, error) {
	return s.repo.Get(ctx, id)
}

// List returns all templates, or only those of docType when it is non-empty.
func (s *service) List(ctx context.Context, docType domain.DocumentType) ([]domain.Template, error) {
	items, err := s.repo.List(ctx)
	if err != nil || docType == "" {
		return items, err
	}
	out := items[:0]
	for _, t := range items {
		if t.DocumentType == docType {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshGauge(ctx)
	s.publish(ctx, evdomain.TypeTemplateRemoved, t)
	s.log.Info().Str("template_id", id).Msg("template removed")
	return nil
}

func (s *service) Preview(ctx context.Context, id string, fields domain.PreviewFields) (domain.Preview, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Preview{}, err
	}
	return domain.Preview{
		TemplateID: t.ID,
		Body:       mergefields.Resolve(t.Body, fields),
		Blank:      mergefields.Blank(t.Body, fields),
		Unknown:    mergefields.Unknown(t.Body),
	}, nil
}

// RecordUse bumps the usage count after a document built from the template was sent.
func (s *service) RecordUse(ctx context.Context, id string) (int, error) {
	n, err := s.repo.IncrementUsage(ctx, id, s.now().UTC())
	if err != nil {
		return 0, err
	}
	s.log.Debug().Str("template_id", id).Int("usage_count", n).Msg("template used")
	return n, nil
}

func (s *service) refreshGauge(ctx context.Context) {
	if items, err := s.repo.List(ctx); err == nil {
		metrics.SetTemplatesStored(len(items))
	}
}

func (s *service) publish(ctx context.Context, typ string, t domain.Template) {
	if s.pub == nil {
		return
	}
	err := s.pub.Publish(ctx, evdomain.Event{
		Type:    typ,
		Subject: t.ID,
		Meta:    map[string]string{"name": t.Name, "document_type": string(t.DocumentType)},
		Time:    s.now(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("type", typ).Msg("publish event failed")
	}
}
