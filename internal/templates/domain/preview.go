package domain

import "github.com/corvusHold/leasedesk/internal/mergefields"

// PreviewFields are the merge values a preview is resolved against.
type PreviewFields = mergefields.Fields

// Preview is a resolved template body plus the tokens a caller may want to fix.
type Preview struct {
	TemplateID string   `json:"template_id"`
	Body       string   `json:"body"`
	Blank      []string `json:"blank,omitempty"`
	Unknown    []string `json:"unknown,omitempty"`
}
