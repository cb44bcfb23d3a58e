package mergefields

import (
	"strings"
	"time"

	ldomain "github.com/corvusHold/leasedesk/internal/lease/domain"
	"github.com/corvusHold/leasedesk/internal/platform/dates"
)

// Input is the transport form of Fields: dates are free text in any layout
// dates.Parse accepts. It is what HTTP bodies and CLI YAML files decode into.
type Input struct {
	TenantName      string   `json:"tenant_name" yaml:"tenant_name"`
	TenantEmail     string   `json:"tenant_email" yaml:"tenant_email" validate:"omitempty,email"`
	TenantPhone     string   `json:"tenant_phone" yaml:"tenant_phone"`
	PropertyAddress string   `json:"property_address" yaml:"property_address"`
	UnitNumber      string   `json:"unit_number" yaml:"unit_number"`
	MonthlyRent     *float64 `json:"monthly_rent" yaml:"monthly_rent" validate:"omitempty,gte=0"`
	SecurityDeposit *float64 `json:"security_deposit" yaml:"security_deposit" validate:"omitempty,gte=0"`
	LeaseStartDate  string   `json:"lease_start_date" yaml:"lease_start_date"`
	LeaseEndDate    string   `json:"lease_end_date" yaml:"lease_end_date"`
	LeaseTerm       string   `json:"lease_term" yaml:"lease_term"`
	LandlordName    string   `json:"landlord_name" yaml:"landlord_name"`
	LandlordPhone   string   `json:"landlord_phone" yaml:"landlord_phone"`
	LandlordEmail   string   `json:"landlord_email" yaml:"landlord_email" validate:"omitempty,email"`
	CurrentDate     string   `json:"current_date" yaml:"current_date"`
}

// Fields parses the dates in in. A blank date stays absent. When LeaseTerm is
// blank and both lease dates are present it is derived from them.
func (in Input) Fields() (Fields, error) {
	f := Fields{
		TenantName:      in.TenantName,
		TenantEmail:     in.TenantEmail,
		TenantPhone:     in.TenantPhone,
		PropertyAddress: in.PropertyAddress,
		UnitNumber:      in.UnitNumber,
		MonthlyRent:     in.MonthlyRent,
		SecurityDeposit: in.SecurityDeposit,
		LeaseTerm:       in.LeaseTerm,
		LandlordName:    in.LandlordName,
		LandlordPhone:   in.LandlordPhone,
		LandlordEmail:   in.LandlordEmail,
	}
	var err error
	if f.LeaseStartDate, err = optionalDate("lease_start_date", in.LeaseStartDate); err != nil {
		return Fields{}, err
	}
	if f.LeaseEndDate, err = optionalDate("lease_end_date", in.LeaseEndDate); err != nil {
		return Fields{}, err
	}
	if f.CurrentDate, err = optionalDate("current_date", in.CurrentDate); err != nil {
		return Fields{}, err
	}
	if f.LeaseTerm == "" && f.LeaseStartDate != nil && f.LeaseEndDate != nil {
		f.LeaseTerm = Term(*f.LeaseStartDate, *f.LeaseEndDate)
	}
	return f, nil
}

// WithLandlordDefaults fills blank landlord fields from ll.
func (in Input) WithLandlordDefaults(ll Landlord) Input {
	if in.LandlordName == "" {
		in.LandlordName = ll.Name
	}
	if in.LandlordPhone == "" {
		in.LandlordPhone = ll.Phone
	}
	if in.LandlordEmail == "" {
		in.LandlordEmail = ll.Email
	}
	return in
}

func optionalDate(field, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := dates.Parse(s)
	if err != nil {
		return nil, ldomain.ValidationError{Field: field, Message: err.Error()}
	}
	return &t, nil
}
