package domain

import (
	"errors"
	"strings"

	"github.com/corvusHold/leasedesk/internal/platform/dates"
)

// LeaseInput is the transport form of LeaseRecord with free-text dates.
type LeaseInput struct {
	TenantID        string  `json:"tenant_id" yaml:"tenant_id"`
	TenantName      string  `json:"tenant_name" yaml:"tenant_name" validate:"required,max=200"`
	PropertyName    string  `json:"property_name" yaml:"property_name"`
	UnitNumber      string  `json:"unit_number" yaml:"unit_number"`
	MonthlyRent     float64 `json:"monthly_rent" yaml:"monthly_rent" validate:"gte=0"`
	SecurityDeposit float64 `json:"security_deposit" yaml:"security_deposit" validate:"gte=0"`
	StartDate       string  `json:"start_date" yaml:"start_date"`
	EndDate         string  `json:"end_date" yaml:"end_date" validate:"required"`
}

// Record parses the dates of in. StartDate may be blank.
func (in LeaseInput) Record() (LeaseRecord, error) {
	rec := LeaseRecord{
		TenantID:        in.TenantID,
		TenantName:      strings.TrimSpace(in.TenantName),
		PropertyName:    in.PropertyName,
		UnitNumber:      in.UnitNumber,
		MonthlyRent:     in.MonthlyRent,
		SecurityDeposit: in.SecurityDeposit,
	}
	end, err := dates.Parse(in.EndDate)
	if err != nil {
		return LeaseRecord{}, dateError("end_date", err)
	}
	rec.EndDate = end
	if strings.TrimSpace(in.StartDate) != "" {
		start, err := dates.Parse(in.StartDate)
		if err != nil {
			return LeaseRecord{}, dateError("start_date", err)
		}
		rec.StartDate = start
	}
	return rec, nil
}

func dateError(field string, err error) error {
	if errors.Is(err, dates.ErrEmpty) {
		return ValidationError{Field: field, Message: "is required"}
	}
	return ValidationError{Field: field, Message: err.Error()}
}
