package mergefields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	ldomain "github.com/corvusHold/leasedesk/internal/lease/domain"
)

func TestInput_Fields(t *testing.T) {
	rent := 1200.0
	in := Input{
		TenantName:     "Alice",
		MonthlyRent:    &rent,
		LeaseStartDate: "Jan 15, 2024",
		LeaseEndDate:   "2025-01-15",
	}
	f, err := in.Fields()
	require.NoError(t, err)
	assert.Equal(t, "12 months", f.LeaseTerm)
	assert.Nil(t, f.CurrentDate)
	assert.Equal(t, "Alice: $1,200 until January 15, 2025", Resolve("{{TENANT_NAME}}: {{MONTHLY_RENT}} until {{LEASE_END_DATE}}", f))

	var ve ldomain.ValidationError
	_, err = Input{CurrentDate: "tomorrow"}.Fields()
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "current_date", ve.Field)

	_, err = Input{LeaseEndDate: "soon"}.Fields()
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "lease_end_date", ve.Field)
}

func TestInput_YAML(t *testing.T) {
	doc := []byte(`
tenant_name: Bob Lee
unit_number: "12"
monthly_rent: 950.5
lease_end_date: Oct 15, 2025
`)
	var in Input
	require.NoError(t, yaml.Unmarshal(doc, &in))
	f, err := in.Fields()
	require.NoError(t, err)
	assert.Equal(t, "Bob Lee / 12 / $950.50 / October 15, 2025", Resolve("{{TENANT_NAME}} / {{UNIT_NUMBER}} / {{MONTHLY_RENT}} / {{LEASE_END_DATE}}", f))
}

func TestInput_WithLandlordDefaults(t *testing.T) {
	in := Input{LandlordName: "Override"}.WithLandlordDefaults(Landlord{Name: "Default", Phone: "555", Email: "l@example.com"})
	assert.Equal(t, "Override", in.LandlordName)
	assert.Equal(t, "555", in.LandlordPhone)
	assert.Equal(t, "l@example.com", in.LandlordEmail)
}
