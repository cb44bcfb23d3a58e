// Package documents derives canonical file names for generated lease documents.
package documents

import (
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/corvusHold/leasedesk/internal/lease/domain"
	"github.com/corvusHold/leasedesk/internal/platform/dates"
)

// Extension of every generated document.
const Extension = ".pdf"

// Name returns "{name}_lease_{MM}_{YY}_{MM}_{YY}.pdf" for the tenant and lease
// period. Dates may be given in any form dates.Parse accepts; the same day
// written differently yields the same name.
func Name(tenantName, startDate, endDate string) (string, error) {
	start, err := parse("start_date", startDate)
	if err != nil {
		return "", err
	}
	end, err := parse("end_date", endDate)
	if err != nil {
		return "", err
	}
	return NameFor(tenantName, start, end)
}

// NameFor is Name for already-parsed dates.
func NameFor(tenantName string, start, end time.Time) (string, error) {
	slug := Slug(tenantName)
	if slug == "" {
		return "", domain.ValidationError{Field: "tenant_name", Message: "is required"}
	}
	if start.IsZero() {
		return "", domain.ValidationError{Field: "start_date", Message: "is required"}
	}
	if end.IsZero() {
		return "", domain.ValidationError{Field: "end_date", Message: "is required"}
	}
	return fmt.Sprintf("%s_lease_%s_%s%s", slug, period(start), period(end), Extension), nil
}

// Slug lower-cases name and collapses each whitespace run into one underscore.
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

func period(t time.Time) string {
	return t.Format("01_06")
}

func parse(field, s string) (time.Time, error) {
	t, err := dates.Parse(s)
	if errors.Is(err, dates.ErrEmpty) {
		return time.Time{}, domain.ValidationError{Field: field, Message: "is required"}
	}
	if err != nil {
		return time.Time{}, domain.ValidationError{Field: field, Message: err.Error()}
	}
	return t, nil
}
