package service

import (
	"net/url"
	"strings"

	"github.com/corvusHold/leasedesk/internal/delivery/domain"
	"github.com/corvusHold/leasedesk/internal/mergefields"
)

// DefaultMessage greets the tenant by first name and names the unit and property.
func DefaultMessage(to domain.Recipient, f mergefields.Fields) string {
	return "Hi " + firstName(to, f) + ", please find attached your lease agreement for " +
		place(f) + ". Let me know if you have any questions."
}

// RenewalMessage is DefaultMessage for a renewed lease; it also states the new
// end date and rent when they are known.
func RenewalMessage(to domain.Recipient, f mergefields.Fields) string {
	msg := "Hi " + firstName(to, f) + ", your lease renewal for " + place(f) + " is ready for review."
	end, rent := mergefields.Date(f.LeaseEndDate), mergefields.Currency(f.MonthlyRent)
	switch {
	case end != "" && rent != "":
		msg += " The renewed lease runs until " + end + " at " + rent + " per month."
	case end != "":
		msg += " The renewed lease runs until " + end + "."
	}
	return msg + " Please review and sign at your earliest convenience."
}

func firstName(to domain.Recipient, f mergefields.Fields) string {
	name := to.Name
	if strings.TrimSpace(name) == "" {
		name = f.TenantName
	}
	if parts := strings.Fields(name); len(parts) > 0 {
		return parts[0]
	}
	return "there"
}

func place(f mergefields.Fields) string {
	unit, property := strings.TrimSpace(f.UnitNumber), strings.TrimSpace(f.PropertyAddress)
	switch {
	case unit != "" && property != "":
		return "Unit " + unit + " at " + property
	case property != "":
		return property
	case unit != "":
		return "Unit " + unit
	}
	return "your home"
}

// NormalizePhone keeps only the digits of s.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink builds a wa.me deep link, or "" when phone has no digits.
func WhatsAppLink(phone, message string) string {
	digits := NormalizePhone(phone)
	if digits == "" {
		return ""
	}
	link := "https://wa.me/" + digits
	if message != "" {
		link += "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	}
	return link
}
