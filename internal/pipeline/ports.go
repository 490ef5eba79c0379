package pipeline

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"phonecheck/internal/audit"
	"phonecheck/internal/domain"
)

// CarrierPort fetches carrier/country data for a normalized number. The
// implementation degrades to Unknown values on failure, so the port has no
// error return.
type CarrierPort interface {
	Fetch(ctx context.Context, number string) domain.CarrierInfo
}

// SearchPort gathers scam-report evidence for a normalized number. Failures
// come back as degraded evidence, never as an error.
type SearchPort interface {
	Search(ctx context.Context, number string) domain.SearchEvidence
}

// AllowlistPort answers whether a number is operator-trusted, with its
// annotation when present.
type AllowlistPort interface {
	Lookup(number string) (string, bool)
}

// AuditPort emits audit events. Defined here rather than importing the
// audit publisher directly to keep module boundaries mockable.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
