package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaseInput_Record(t *testing.T) {
	rec, err := LeaseInput{TenantName: " Alice Johnson ", MonthlyRent: 1500, StartDate: "Jan 15, 2024", EndDate: "2025-01-15"}.Record()
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", rec.TenantName)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), rec.StartDate)
	assert.Equal(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), rec.EndDate)

	rec, err = LeaseInput{EndDate: "2025-01-15"}.Record()
	require.NoError(t, err)
	assert.True(t, rec.StartDate.IsZero())

	var ve ValidationError
	_, err = LeaseInput{}.Record()
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "end_date", ve.Field)
	assert.Equal(t, "is required", ve.Message)

	_, err = LeaseInput{EndDate: "2025-01-15", StartDate: "later"}.Record()
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "start_date", ve.Field)
}
