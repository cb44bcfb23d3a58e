package domain

import (
	"context"
	"time"
)

// LeaseRecord is a read-only snapshot of a tenant's current lease.
type LeaseRecord struct {
	TenantID        string    `json:"tenant_id"`
	TenantName      string    `json:"tenant_name"`
	PropertyName    string    `json:"property_name"`
	UnitNumber      string    `json:"unit_number"`
	MonthlyRent     float64   `json:"monthly_rent"`
	SecurityDeposit float64   `json:"security_deposit"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
}

// Kind tags a Request as a renewal or an extension.
type Kind string

const (
	KindRenewal   Kind = "renewal"
	KindExtension Kind = "extension"
)

// Request is the tagged variant handed to the calculator. Exactly one of
// Renewal or Extension must be set, matching Kind.
type Request struct {
	Kind      Kind            `json:"kind"`
	Renewal   *RenewalTerms   `json:"renewal,omitempty"`
	Extension *ExtensionTerms `json:"extension,omitempty"`
}

// RenewalTerms describe a new full term.
type RenewalTerms struct {
	// DurationMonths must be one of RenewalDurations unless Custom is set.
	DurationMonths int  `json:"duration_months,omitempty"`
	Custom         bool `json:"custom,omitempty"`
	// EndDate is required for custom renewals and ignored otherwise.
	EndDate string `json:"end_date,omitempty"`
	// NewRent is an explicit amount; it takes precedence over IncreasePercent.
	NewRent         string   `json:"new_rent,omitempty"`
	IncreasePercent *float64 `json:"increase_percent,omitempty"`
	DepositDelta    string   `json:"deposit_delta,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// ExtensionTerms describe a short, policy-typed continuation.
type ExtensionTerms struct {
	Type           ExtensionType `json:"type"`
	DurationDays   int           `json:"duration_days"`
	CustomDuration bool          `json:"custom_duration,omitempty"`
	EndDate        string        `json:"end_date"`
	Reason         Reason        `json:"reason,omitempty"`
	Notes          string        `json:"notes,omitempty"`
}

// ExtensionType selects the rent policy of an extension.
type ExtensionType string

const (
	ExtensionGrace        ExtensionType = "grace"
	ExtensionMonthToMonth ExtensionType = "month-to-month"
	ExtensionShortTerm    ExtensionType = "short-term"
)

// Reason is the optional justification recorded with an extension.
type Reason string

const (
	ReasonMovingOut       Reason = "moving-out"
	ReasonWaitingProperty Reason = "waiting-property"
	ReasonLatePayment     Reason = "late-payment"
	ReasonTransition      Reason = "transition"
	ReasonOther           Reason = "other"
)

// Fixed choices offered by the renewal and extension forms.
var (
	RenewalDurations   = []int{6, 12, 18, 24}
	ExtensionDurations = []int{7, 14, 30, 60, 90}
)

// MonthToMonthIncreasePercent is the fixed surcharge for month-to-month extensions.
const MonthToMonthIncreasePercent = 10.0

// Warning codes attached to a Result.
const (
	WarnDurationMismatch = "DURATION_MISMATCH"
)

// Warning is a non-fatal observation about a request.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is the outcome of a successful computation. Lease is the updated
// snapshot; it is never persisted by the engine.
type Result struct {
	Kind            Kind          `json:"kind"`
	Lease           LeaseRecord   `json:"lease"`
	PreviousEndDate time.Time     `json:"previous_end_date"`
	PreviousRent    float64       `json:"previous_rent"`
	DepositDelta    float64       `json:"deposit_delta,omitempty"`
	ExtensionType   ExtensionType `json:"extension_type,omitempty"`
	Prorated        bool          `json:"prorated,omitempty"`
	Reason          Reason        `json:"reason,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Warnings        []Warning     `json:"warnings,omitempty"`
}

// Service wraps the calculator for transport layers.
type Service interface {
	Compute(ctx context.Context, current LeaseRecord, req Request) (Result, error)
}
