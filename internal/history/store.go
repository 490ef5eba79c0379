package history

import (
	"context"

	"phonecheck/internal/domain"
)

// Store is the append-only log of past decisions. Implementations must make
// Append all-or-nothing per call and must serialize concurrent writers so a
// failed or concurrent append never corrupts previously stored entries.
//
// Recent returns at most limit decisions in chronological order,
// most-recent-last. Swap with concrete storage without touching the pipeline.
type Store interface {
	Append(ctx context.Context, decision domain.Decision) error
	Recent(ctx context.Context, limit int) ([]domain.Decision, error)
}
