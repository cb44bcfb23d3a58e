package service

import (
	"context"

	domain "github.com/corvusHold/leasedesk/internal/templates/domain"
)

// Defaults are the templates a fresh workspace starts with.
var Defaults = []domain.NewTemplate{
	{
		Name:         "Standard Residential Lease",
		Description:  "12-month residential lease agreement",
		DocumentType: domain.DocumentLease,
		Body: `RESIDENTIAL LEASE AGREEMENT

This agreement is made on {{CURRENT_DATE}} between {{LANDLORD_NAME}} ("Landlord") and {{TENANT_NAME}} ("Tenant").

Premises: {{PROPERTY_ADDRESS}}, Unit {{UNIT_NUMBER}}
Term: {{LEASE_TERM}}, from {{LEASE_START_DATE}} to {{LEASE_END_DATE}}
Monthly rent: {{MONTHLY_RENT}}
Security deposit: {{SECURITY_DEPOSIT}}

Landlord contact: {{LANDLORD_PHONE}} / {{LANDLORD_EMAIL}}
Tenant contact: {{TENANT_PHONE}} / {{TENANT_EMAIL}}
`,
	},
	{
		Name:         "Lease Renewal Agreement",
		Description:  "Renewal of an existing lease with updated terms",
		DocumentType: domain.DocumentRenewal,
		Body: `LEASE RENEWAL AGREEMENT

Dated {{CURRENT_DATE}}.

{{LANDLORD_NAME}} and {{TENANT_NAME}} agree to renew the lease for {{PROPERTY_ADDRESS}}, Unit {{UNIT_NUMBER}}.
The renewed term runs until {{LEASE_END_DATE}} at a monthly rent of {{MONTHLY_RENT}}.
The security deposit held is {{SECURITY_DEPOSIT}}.
`,
	},
	{
		Name:         "Lease Extension Addendum",
		Description:  "Short-term extension of an expiring lease",
		DocumentType: domain.DocumentExtension,
		Body: `LEASE EXTENSION ADDENDUM

The lease between {{LANDLORD_NAME}} and {{TENANT_NAME}} for {{PROPERTY_ADDRESS}}, Unit {{UNIT_NUMBER}} is extended to {{LEASE_END_DATE}}.
Monthly rent during the extension: {{MONTHLY_RENT}}.
`,
	},
}

// Seed adds Defaults to svc.
func Seed(ctx context.Context, svc domain.Service) error {
	for _, in := range Defaults {
		if _, err := svc.Add(ctx, in); err != nil {
			return err
		}
	}
	return nil
}
