package mergefields

import (
	"strings"
	"time"
)

// Resolve replaces every recognized {{TOKEN}} in template with its value from
// fields. Unrecognized tokens and unmatched braces are copied through verbatim.
func Resolve(template string, fields Fields) string {
	var b strings.Builder
	b.Grow(len(template))
	scan(template, func(literal, token string) {
		b.WriteString(literal)
		if token == "" {
			return
		}
		if v, ok := fields.value(token); ok {
			b.WriteString(v)
			return
		}
		b.WriteString(Placeholder(token))
	})
	return b.String()
}

// Blank lists the recognized tokens in template whose value resolves to an
// empty string, in order of first appearance.
func Blank(template string, fields Fields) []string {
	var out []string
	seen := map[string]bool{}
	scan(template, func(_, token string) {
		if token == "" || seen[token] {
			return
		}
		seen[token] = true
		if v, ok := fields.value(token); ok && v == "" {
			out = append(out, Placeholder(token))
		}
	})
	return out
}

// Unknown lists the brace tokens in template that are not in the vocabulary.
func Unknown(template string) []string {
	var out []string
	seen := map[string]bool{}
	scan(template, func(_, token string) {
		if token == "" || seen[token] {
			return
		}
		seen[token] = true
		if _, ok := (Fields{}).value(token); !ok {
			out = append(out, Placeholder(token))
		}
	})
	return out
}

// scan walks template and calls fn with each run of literal text followed by
// the name inside the next {{...}} pair. token is empty for the trailing literal.
// A "{{" with no closing "}}" is treated as literal text. When a second "{{"
// appears before the closing braces, scanning restarts from it so
// "{{ {{UNIT_NUMBER}}" still resolves the inner token.
func scan(template string, fn func(literal, token string)) {
	rest := template
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			fn(rest, "")
			return
		}
		end := strings.Index(rest[start+2:], "}}")
		if end == -1 {
			fn(rest, "")
			return
		}
		inner := rest[start+2 : start+2+end]
		if i := strings.LastIndex(inner, "{{"); i != -1 {
			// "{{" followed by another "{{": emit the first part as literal
			cut := start + 2 + i
			fn(rest[:cut], "")
			rest = rest[cut:]
			continue
		}
		fn(rest[:start], inner)
		rest = rest[start+2+end+2:]
	}
}

// Landlord identifies the party sending the lease.
type Landlord struct {
	Name  string `json:"name" yaml:"name"`
	Phone string `json:"phone" yaml:"phone"`
	Email string `json:"email" yaml:"email"`
}

// Tenant contact details not carried on the lease record.
type Tenant struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Phone string `json:"phone" yaml:"phone"`
}

// Lease is the subset of a lease snapshot a template can reference.
type Lease struct {
	PropertyAddress string
	UnitNumber      string
	MonthlyRent     float64
	SecurityDeposit float64
	StartDate       time.Time
	EndDate         time.Time
}

// FromLease assembles Fields from the records handed over by the caller.
// now is the "current date"; pass it explicitly so resolution stays repeatable.
func FromLease(l Lease, t Tenant, ll Landlord, now time.Time) Fields {
	rent, deposit := l.MonthlyRent, l.SecurityDeposit
	f := Fields{
		TenantName:      t.Name,
		TenantEmail:     t.Email,
		TenantPhone:     t.Phone,
		PropertyAddress: l.PropertyAddress,
		UnitNumber:      l.UnitNumber,
		MonthlyRent:     &rent,
		SecurityDeposit: &deposit,
		LeaseTerm:       Term(l.StartDate, l.EndDate),
		LandlordName:    ll.Name,
		LandlordPhone:   ll.Phone,
		LandlordEmail:   ll.Email,
	}
	if !l.StartDate.IsZero() {
		s := l.StartDate
		f.LeaseStartDate = &s
	}
	if !l.EndDate.IsZero() {
		e := l.EndDate
		f.LeaseEndDate = &e
	}
	if !now.IsZero() {
		f.CurrentDate = &now
	}
	return f
}
