package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	evdomain "github.com/corvusHold/leasedesk/internal/events/domain"
	domain "github.com/corvusHold/leasedesk/internal/lease/domain"
	"github.com/corvusHold/leasedesk/internal/metrics"
)

type service struct {
	calc Calculator
	pub  evdomain.Publisher
	log  zerolog.Logger
	now  func() time.Time
}

// New returns a domain.Service that records metrics and publishes an event for
// every successful computation.
func New(calc Calculator, pub evdomain.Publisher, log zerolog.Logger) domain.Service {
	return &service{calc: calc, pub: pub, log: log, now: time.Now}
}

func (s *service) Compute(ctx context.Context, current domain.LeaseRecord, req domain.Request) (domain.Result, error) {
	res, err := s.calc.Compute(current, req)
	if err != nil {
		metrics.IncLeaseComputation(string(req.Kind), outcome(err))
		s.log.Debug().Err(err).Str("tenant_id", current.TenantID).Str("kind", string(req.Kind)).Msg("lease computation rejected")
		return domain.Result{}, err
	}
	metrics.IncLeaseComputation(string(res.Kind), "success")
	metrics.ObserveRentChange(string(res.Kind), res.PreviousRent, res.Lease.MonthlyRent)

	typ := evdomain.TypeRenewalComputed
	if res.Kind == domain.KindExtension {
		typ = evdomain.TypeExtensionComputed
	}
	if s.pub != nil {
		meta := map[string]string{
			"end_date": res.Lease.EndDate.Format(time.DateOnly),
			"rent":     fmt.Sprintf("%.2f", res.Lease.MonthlyRent),
		}
		if res.ExtensionType != "" {
			meta["extension_type"] = string(res.ExtensionType)
		}
		if err := s.pub.Publish(ctx, evdomain.Event{Type: typ, TenantID: current.TenantID, Meta: meta, Time: s.now()}); err != nil {
			s.log.Warn().Err(err).Str("type", typ).Msg("publish event failed")
		}
	}
	for _, w := range res.Warnings {
		s.log.Info().Str("tenant_id", current.TenantID).Str("code", w.Code).Msg(w.Message)
	}
	return res, nil
}

func outcome(err error) string {
	var pe domain.UnsupportedPolicyError
	if errors.As(err, &pe) {
		return "unsupported"
	}
	return "invalid"
}
