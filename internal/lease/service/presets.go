package service

import (
	"slices"
	"strings"

	domain "github.com/corvusHold/leasedesk/internal/lease/domain"
)

// Quick rent shortcuts offered next to the rent field.
var IncreaseShortcuts = []float64{3, 5, 10}

// DefaultRenewalMonths is the term used by the quick presets.
const DefaultRenewalMonths = 12

// Preset names.
const (
	PresetSameTerms = "same-terms"
	PresetPlusFive  = "plus-five"
	PresetCustom    = "custom"
)

func percent(p float64) *float64 { return &p }

// SameTerms renews for a year at the current rent.
func SameTerms() domain.Request {
	return domain.Request{Kind: domain.KindRenewal, Renewal: &domain.RenewalTerms{
		DurationMonths:  DefaultRenewalMonths,
		IncreasePercent: percent(0),
	}}
}

// PlusFivePercent renews for a year with a 5% increase.
func PlusFivePercent() domain.Request {
	return WithIncrease(DefaultRenewalMonths, 5)
}

// WithIncrease renews for months with one of the quick percentage shortcuts.
func WithIncrease(months int, pct float64) domain.Request {
	return domain.Request{Kind: domain.KindRenewal, Renewal: &domain.RenewalTerms{
		DurationMonths:  months,
		IncreasePercent: percent(pct),
	}}
}

// CustomTerms renews to an explicit end date with an explicit rent.
// An empty rent keeps the current amount.
func CustomTerms(endDate, newRent string) domain.Request {
	return domain.Request{Kind: domain.KindRenewal, Renewal: &domain.RenewalTerms{
		Custom:  true,
		EndDate: endDate,
		NewRent: newRent,
	}}
}

// IsShortcut reports whether pct is one of IncreaseShortcuts.
func IsShortcut(pct float64) bool {
	return slices.Contains(IncreaseShortcuts, pct)
}

// PresetOptions carries the inputs only the custom preset needs.
type PresetOptions struct {
	EndDate string
	NewRent string
}

// Preset builds the named preset request.
func Preset(name string, opts PresetOptions) (domain.Request, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PresetSameTerms:
		return SameTerms(), nil
	case PresetPlusFive:
		return PlusFivePercent(), nil
	case PresetCustom:
		return CustomTerms(opts.EndDate, opts.NewRent), nil
	default:
		return domain.Request{}, domain.UnsupportedPolicyError{Field: "preset", Value: name}
	}
}
