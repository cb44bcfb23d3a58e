// Package mergefields fills lease templates from tenant, property and landlord data.
//
// Templates reference values through a closed vocabulary of tokens written as
// {{TOKEN}}. Recognized tokens are always replaced (absent values become an
// empty string); anything else between braces is left exactly as written so a
// caller can spot typos or unsupported fields in the output.
package mergefields

import (
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/corvusHold/leasedesk/internal/platform/dates"
)

// Token names, without the surrounding braces.
const (
	TenantName      = "TENANT_NAME"
	TenantEmail     = "TENANT_EMAIL"
	TenantPhone     = "TENANT_PHONE"
	PropertyAddress = "PROPERTY_ADDRESS"
	UnitNumber      = "UNIT_NUMBER"
	MonthlyRent     = "MONTHLY_RENT"
	SecurityDeposit = "SECURITY_DEPOSIT"
	LeaseStartDate  = "LEASE_START_DATE"
	LeaseEndDate    = "LEASE_END_DATE"
	LeaseTerm       = "LEASE_TERM"
	LandlordName    = "LANDLORD_NAME"
	LandlordPhone   = "LANDLORD_PHONE"
	LandlordEmail   = "LANDLORD_EMAIL"
	CurrentDate     = "CURRENT_DATE"
)

var vocabulary = []string{
	TenantName, TenantEmail, TenantPhone,
	PropertyAddress, UnitNumber,
	MonthlyRent, SecurityDeposit,
	LeaseStartDate, LeaseEndDate, LeaseTerm,
	LandlordName, LandlordPhone, LandlordEmail,
	CurrentDate,
}

// Vocabulary returns the recognized tokens in display order, wrapped in braces.
func Vocabulary() []string {
	out := make([]string, len(vocabulary))
	for i, name := range vocabulary {
		out[i] = Placeholder(name)
	}
	return out
}

// Placeholder wraps a token name in braces.
func Placeholder(name string) string { return "{{" + name + "}}" }

// Fields is the data a template is resolved against. Nil pointers and empty
// strings resolve to an empty string.
type Fields struct {
	TenantName      string     `json:"tenant_name,omitempty" yaml:"tenant_name"`
	TenantEmail     string     `json:"tenant_email,omitempty" yaml:"tenant_email"`
	TenantPhone     string     `json:"tenant_phone,omitempty" yaml:"tenant_phone"`
	PropertyAddress string     `json:"property_address,omitempty" yaml:"property_address"`
	UnitNumber      string     `json:"unit_number,omitempty" yaml:"unit_number"`
	MonthlyRent     *float64   `json:"monthly_rent,omitempty" yaml:"monthly_rent"`
	SecurityDeposit *float64   `json:"security_deposit,omitempty" yaml:"security_deposit"`
	LeaseStartDate  *time.Time `json:"lease_start_date,omitempty" yaml:"lease_start_date"`
	LeaseEndDate    *time.Time `json:"lease_end_date,omitempty" yaml:"lease_end_date"`
	LeaseTerm       string     `json:"lease_term,omitempty" yaml:"lease_term"`
	LandlordName    string     `json:"landlord_name,omitempty" yaml:"landlord_name"`
	LandlordPhone   string     `json:"landlord_phone,omitempty" yaml:"landlord_phone"`
	LandlordEmail   string     `json:"landlord_email,omitempty" yaml:"landlord_email"`
	CurrentDate     *time.Time `json:"current_date,omitempty" yaml:"current_date"`
}

// value returns the rendered value of a recognized token.
func (f Fields) value(name string) (string, bool) {
	switch name {
	case TenantName:
		return f.TenantName, true
	case TenantEmail:
		return f.TenantEmail, true
	case TenantPhone:
		return f.TenantPhone, true
	case PropertyAddress:
		return f.PropertyAddress, true
	case UnitNumber:
		return f.UnitNumber, true
	case MonthlyRent:
		return Currency(f.MonthlyRent), true
	case SecurityDeposit:
		return Currency(f.SecurityDeposit), true
	case LeaseStartDate:
		return Date(f.LeaseStartDate), true
	case LeaseEndDate:
		return Date(f.LeaseEndDate), true
	case LeaseTerm:
		return f.LeaseTerm, true
	case LandlordName:
		return f.LandlordName, true
	case LandlordPhone:
		return f.LandlordPhone, true
	case LandlordEmail:
		return f.LandlordEmail, true
	case CurrentDate:
		return Date(f.CurrentDate), true
	}
	return "", false
}

// Currency renders an amount as "$1,500" or "$1,500.50".
func Currency(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return ""
	}
	amount := math.Round(*v*100) / 100
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	if amount == math.Trunc(amount) {
		return sign + "$" + humanize.Comma(int64(amount))
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", amount)
}

// Date renders a date as "January 2, 2006".
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dates.Display)
}

// Term describes the span between two dates, e.g. "12 months".
func Term(start, end time.Time) string {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return ""
	}
	n := dates.MonthsBetween(start, end)
	switch {
	case n == 1:
		return "1 month"
	case n > 1:
		return strconv.Itoa(n) + " months"
	}
	d := dates.DaysBetween(start, end)
	if d == 1 {
		return "1 day"
	}
	return strconv.Itoa(d) + " days"
}
