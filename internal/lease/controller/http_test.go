package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ddomain "github.com/corvusHold/leasedesk/internal/delivery/domain"
	dsvc "github.com/corvusHold/leasedesk/internal/delivery/service"
	evsvc "github.com/corvusHold/leasedesk/internal/events/service"
	domain "github.com/corvusHold/leasedesk/internal/lease/domain"
	svc "github.com/corvusHold/leasedesk/internal/lease/service"
	"github.com/corvusHold/leasedesk/internal/platform/validation"
	tdomain "github.com/corvusHold/leasedesk/internal/templates/domain"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Validator = validation.New()
	drafts := dsvc.New(nil, dsvc.DraftOptions{}, evsvc.Nop{}, zerolog.Nop())
	New(svc.New(svc.NewCalculator(), evsvc.Nop{}, zerolog.Nop()), zerolog.Nop()).WithRenewalDrafts(drafts).Register(e)
	return e
}

func post(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const alice = `{"tenant_id":"T-1","tenant_name":"Alice Johnson","property_name":"Sunset Apartments","unit_number":"4B",
	"monthly_rent":1500,"security_deposit":1500,"start_date":"2024-01-15","end_date":"2025-01-15"}`

func TestCompute_RenewalOpensDraft(t *testing.T) {
	e := newTestServer(t)
	body := `{"lease":` + alice + `,"request":{"kind":"renewal","renewal":{"duration_months":12,"increase_percent":5}},
		"recipient":{"email":"alice@example.com"}}`
	rec := post(e, "/api/v1/leases/compute", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp computeResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1575.0, resp.Result.Lease.MonthlyRent)
	assert.Equal(t, "2026-01-15", resp.Result.Lease.EndDate.Format("2006-01-02"))
	require.NotNil(t, resp.Delivery)
	assert.Equal(t, ddomain.StateDrafting, resp.Delivery.State)
	assert.Equal(t, tdomain.DocumentRenewal, resp.Delivery.TemplateType)
	assert.Equal(t, "alice_johnson_lease_01_24_01_26.pdf", resp.Delivery.DocumentName)
}

func TestCompute_ExtensionNoDraft(t *testing.T) {
	e := newTestServer(t)
	body := `{"lease":` + alice + `,"request":{"kind":"extension","extension":{"type":"month-to-month","duration_days":30,"end_date":"2025-02-14"}}}`
	rec := post(e, "/api/v1/leases/compute", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp computeResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1650.0, resp.Result.Lease.MonthlyRent)
	assert.Nil(t, resp.Delivery)
	assert.NotContains(t, rec.Body.String(), `"delivery"`)
}

func TestCompute_Errors(t *testing.T) {
	e := newTestServer(t)
	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{"unsupported duration", `{"lease":` + alice + `,"request":{"kind":"renewal","renewal":{"duration_months":9}}}`, "unsupported_policy"},
		{"custom before end", `{"lease":` + alice + `,"request":{"kind":"renewal","renewal":{"custom":true,"end_date":"2025-01-14"}}}`, "validation_failed"},
		{"unknown kind", `{"lease":` + alice + `,"request":{"kind":"sublet"}}`, "unsupported_policy"},
		{"missing tenant", `{"lease":{"end_date":"2025-01-15"},"request":{"kind":"renewal"}}`, "validation_failed"},
		{"bad lease date", `{"lease":{"tenant_name":"A","end_date":"whenever"},"request":{"kind":"renewal"}}`, "validation_failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(e, "/api/v1/leases/compute", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			var body validation.ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

func TestPresets(t *testing.T) {
	e := newTestServer(t)

	rec := post(e, "/api/v1/leases/presets/"+svc.PresetSameTerms, `{"lease":`+alice+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp computeResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1500.0, resp.Result.Lease.MonthlyRent)

	rec = post(e, "/api/v1/leases/presets/"+svc.PresetCustom, `{"lease":`+alice+`,"end_date":"2025-01-15","new_rent":"$1,600"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1600.0, resp.Result.Lease.MonthlyRent)
	assert.Equal(t, domain.KindRenewal, resp.Result.Kind)

	rec = post(e, "/api/v1/leases/presets/double-rent", `{"lease":`+alice+`}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIncrease(t *testing.T) {
	e := newTestServer(t)
	get := func(q string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/leases/increase?"+q, nil))
		return rec
	}
	rec := get("rent=1000&percent=3")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp increaseResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1030.0, resp.NewRent)
	assert.True(t, resp.Shortcut)

	rec = get("rent=1000&percent=-100")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp.NewRent)

	for _, q := range []string{
		"rent=-5&percent=3",
		"rent=1000",
		"rent=1000&percent=-150",
		"rent=1000&percent=NaN",
		"rent=1000&percent=Inf",
		"rent=1000&percent=-Inf",
	} {
		rec := get(q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.Contains(t, rec.Body.String(), `"fields"`, q)
	}
}

func TestDocumentName(t *testing.T) {
	e := newTestServer(t)
	rec := post(e, "/api/v1/documents/name", `{"tenant_name":"Alice Johnson","start_date":"2024-01-15","end_date":"Oct 15, 2025"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"name":"alice_johnson_lease_01_24_10_25.pdf"}`, rec.Body.String())

	rec = post(e, "/api/v1/documents/name", `{"tenant_name":"   ","start_date":"2024-01-15","end_date":"2025-10-15"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = post(e, "/api/v1/documents/name", `{"tenant_name":"A"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
