package service

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	domain "github.com/corvusHold/leasedesk/internal/lease/domain"
	"github.com/corvusHold/leasedesk/internal/platform/dates"
)

// DefaultDurationToleranceDays is how far an extension's stated duration may
// drift from the calendar days it actually covers before a warning is attached.
const DefaultDurationToleranceDays = 3

// Calculator derives renewed or extended lease snapshots. The zero value uses a
// tolerance of 0 days; use NewCalculator for the default.
type Calculator struct {
	DurationToleranceDays int
}

func NewCalculator() Calculator {
	return Calculator{DurationToleranceDays: DefaultDurationToleranceDays}
}

// Compute is NewCalculator().Compute.
func Compute(current domain.LeaseRecord, req domain.Request) (domain.Result, error) {
	return NewCalculator().Compute(current, req)
}

// CalculateIncrease returns baseRent raised by percent, rounded to the cent.
// Every rent shortcut, including "same terms" (0%), goes through here.
func CalculateIncrease(baseRent, percent float64) float64 {
	return Round2(baseRent * (1 + percent/100))
}

// Increase is CalculateIncrease for caller-supplied percentages: percent must
// be finite and the raised rent must not be negative.
func Increase(baseRent, percent float64) (float64, error) {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return 0, domain.ValidationError{Field: "percent", Message: "must be a number"}
	}
	v := CalculateIncrease(baseRent, percent)
	if v < 0 {
		return 0, domain.ValidationError{Field: "percent", Message: "would make the rent negative"}
	}
	return v, nil
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute validates req against current and returns the updated snapshot.
// current is never modified.
func (c Calculator) Compute(current domain.LeaseRecord, req domain.Request) (domain.Result, error) {
	if current.EndDate.IsZero() {
		return domain.Result{}, domain.ValidationError{Field: "current end_date", Message: "is required"}
	}
	if current.MonthlyRent < 0 || math.IsNaN(current.MonthlyRent) {
		return domain.Result{}, domain.ValidationError{Field: "monthly_rent", Message: "must not be negative"}
	}

	switch req.Kind {
	case domain.KindRenewal:
		if req.Renewal == nil {
			return domain.Result{}, domain.ValidationError{Field: "renewal", Message: "terms are required"}
		}
		return c.renew(current, *req.Renewal)
	case domain.KindExtension:
		if req.Extension == nil {
			return domain.Result{}, domain.ValidationError{Field: "extension", Message: "terms are required"}
		}
		return c.extend(current, *req.Extension)
	default:
		return domain.Result{}, domain.UnsupportedPolicyError{Field: "request kind", Value: string(req.Kind)}
	}
}

func (c Calculator) renew(current domain.LeaseRecord, t domain.RenewalTerms) (domain.Result, error) {
	currentEnd := dates.Day(current.EndDate)

	var end time.Time
	if t.Custom {
		d, err := parseDate("end_date", t.EndDate)
		if err != nil {
			return domain.Result{}, err
		}
		end = d
	} else {
		if !slices.Contains(domain.RenewalDurations, t.DurationMonths) {
			return domain.Result{}, domain.UnsupportedPolicyError{Field: "renewal duration", Value: strconv.Itoa(t.DurationMonths) + " months"}
		}
		end = dates.AddMonths(currentEnd, t.DurationMonths)
	}
	if err := notBefore(end, currentEnd); err != nil {
		return domain.Result{}, err
	}

	var rent float64
	switch {
	case strings.TrimSpace(t.NewRent) != "":
		v, err := parseAmount("new_rent", t.NewRent)
		if err != nil {
			return domain.Result{}, err
		}
		rent = Round2(v)
	case t.IncreasePercent != nil:
		if math.IsNaN(*t.IncreasePercent) || math.IsInf(*t.IncreasePercent, 0) {
			return domain.Result{}, domain.ValidationError{Field: "increase_percent", Message: "must be a number"}
		}
		rent = CalculateIncrease(current.MonthlyRent, *t.IncreasePercent)
	default:
		rent = CalculateIncrease(current.MonthlyRent, 0)
	}
	if rent < 0 {
		return domain.Result{}, domain.ValidationError{Field: "new_rent", Message: "must not be negative"}
	}

	var delta float64
	if strings.TrimSpace(t.DepositDelta) != "" {
		v, err := parseAmount("deposit_delta", t.DepositDelta)
		if err != nil {
			return domain.Result{}, err
		}
		delta = Round2(v)
	}
	deposit := Round2(current.SecurityDeposit + delta)
	if deposit < 0 {
		return domain.Result{}, domain.ValidationError{Field: "deposit_delta", Message: "would make the security deposit negative"}
	}

	next := current
	next.EndDate = end
	next.MonthlyRent = rent
	next.SecurityDeposit = deposit

	return domain.Result{
		Kind:            domain.KindRenewal,
		Lease:           next,
		PreviousEndDate: currentEnd,
		PreviousRent:    current.MonthlyRent,
		DepositDelta:    delta,
		Notes:           strings.TrimSpace(t.Notes),
	}, nil
}

func (c Calculator) extend(current domain.LeaseRecord, t domain.ExtensionTerms) (domain.Result, error) {
	currentEnd := dates.Day(current.EndDate)

	var percent float64
	switch t.Type {
	case domain.ExtensionGrace, domain.ExtensionShortTerm:
	case domain.ExtensionMonthToMonth:
		percent = domain.MonthToMonthIncreasePercent
	default:
		return domain.Result{}, domain.UnsupportedPolicyError{Field: "extension type", Value: string(t.Type)}
	}
	if t.Reason != "" && !validReason(t.Reason) {
		return domain.Result{}, domain.UnsupportedPolicyError{Field: "extension reason", Value: string(t.Reason)}
	}
	if t.DurationDays <= 0 {
		return domain.Result{}, domain.ValidationError{Field: "duration_days", Message: "must be positive"}
	}
	if !t.CustomDuration && !slices.Contains(domain.ExtensionDurations, t.DurationDays) {
		return domain.Result{}, domain.UnsupportedPolicyError{Field: "extension duration", Value: strconv.Itoa(t.DurationDays) + " days"}
	}

	end, err := parseDate("end_date", t.EndDate)
	if err != nil {
		return domain.Result{}, err
	}
	if err := notBefore(end, currentEnd); err != nil {
		return domain.Result{}, err
	}

	var warnings []domain.Warning
	covered := dates.DaysBetween(currentEnd, end)
	if diff := covered - t.DurationDays; diff > c.DurationToleranceDays || -diff > c.DurationToleranceDays {
		warnings = append(warnings, domain.Warning{
			Code:    domain.WarnDurationMismatch,
			Message: fmt.Sprintf("duration is %d days but the new end date is %d days after the current end date", t.DurationDays, covered),
		})
	}

	next := current
	next.EndDate = end
	next.MonthlyRent = CalculateIncrease(current.MonthlyRent, percent)

	return domain.Result{
		Kind:            domain.KindExtension,
		Lease:           next,
		PreviousEndDate: currentEnd,
		PreviousRent:    current.MonthlyRent,
		ExtensionType:   t.Type,
		Prorated:        t.Type == domain.ExtensionShortTerm,
		Reason:          t.Reason,
		Notes:           strings.TrimSpace(t.Notes),
		Warnings:        warnings,
	}, nil
}

func validReason(r domain.Reason) bool {
	switch r {
	case domain.ReasonMovingOut, domain.ReasonWaitingProperty, domain.ReasonLatePayment, domain.ReasonTransition, domain.ReasonOther:
		return true
	}
	return false
}

func notBefore(end, currentEnd time.Time) error {
	if end.Before(currentEnd) {
		return domain.ValidationError{
			Field:   "end_date",
			Message: fmt.Sprintf("%s is before the current end date %s", end.Format(time.DateOnly), currentEnd.Format(time.DateOnly)),
		}
	}
	return nil
}

func parseDate(field, s string) (time.Time, error) {
	d, err := dates.Parse(s)
	if errors.Is(err, dates.ErrEmpty) {
		return time.Time{}, domain.ValidationError{Field: field, Message: "is required"}
	}
	if err != nil {
		return time.Time{}, domain.ValidationError{Field: field, Message: err.Error()}
	}
	return d, nil
}

// parseAmount accepts plain numbers and "$1,500.00" style input.
func parseAmount(field, s string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(s), "$"), ",", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.ValidationError{Field: field, Message: fmt.Sprintf("%q is not a number", s)}
	}
	return v, nil
}

// ParseRent parses a rent amount and rejects negatives.
func ParseRent(field, s string) (float64, error) {
	v, err := parseAmount(field, s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, domain.ValidationError{Field: field, Message: "must not be negative"}
	}
	return Round2(v), nil
}
