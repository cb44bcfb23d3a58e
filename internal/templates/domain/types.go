package domain

import (
	"context"
	"errors"
	"time"
)

// DocumentType classifies what a template produces.
type DocumentType string

const (
	DocumentLease     DocumentType = "lease"
	DocumentRenewal   DocumentType = "renewal"
	DocumentExtension DocumentType = "extension"
)

// IsAllowedDocumentType reports whether t is a known document type.
func IsAllowedDocumentType(t DocumentType) bool {
	switch t {
	case DocumentLease, DocumentRenewal, DocumentExtension:
		return true
	default:
		return false
	}
}

// Template is an uploaded lease document with merge tokens.
type Template struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	DocumentType   DocumentType `json:"document_type"`
	Body           string       `json:"body,omitempty"`
	Size           int64        `json:"size"`
	UsageCount     int          `json:"usage_count"`
	UploadedAt     time.Time    `json:"uploaded_at"`
	LastModifiedAt time.Time    `json:"last_modified_at"`
	LastUsedAt     *time.Time   `json:"last_used_at,omitempty"`
}

// NewTemplate is the caller input for Add.
type NewTemplate struct {
	Name         string
	Description  string
	DocumentType DocumentType
	Body         string
	// Size of the uploaded file; defaults to len(Body) when zero.
	Size int64
}

// ErrNotFound is returned for unknown template ids.
var ErrNotFound = errors.New("template not found")

// Repository abstracts template storage.
type Repository interface {
	Insert(ctx context.Context, t Template) error
	Get(ctx context.Context, id string) (Template, error)
	List(ctx context.Context) ([]Template, error)
	Delete(ctx context.Context, id string) error
	// IncrementUsage adds one to the usage count and returns the new count.
	IncrementUsage(ctx context.Context, id string, at time.Time) (int, error)
	NextID() string
}

// Service encapsulates template business rules.
type Service interface {
	Add(ctx context.Context, in NewTemplate) (Template, error)
	Get(ctx context.Context, id string) (Template, error)
	List(ctx context.Context, docType DocumentType) ([]Template, error)
	Remove(ctx context.Context, id string) error
	// Preview resolves the stored body; it never changes the usage count.
	Preview(ctx context.Context, id string, fields PreviewFields) (Preview, error)
	RecordUse(ctx context.Context, id string) (int, error)
}
