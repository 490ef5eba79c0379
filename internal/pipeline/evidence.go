package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"phonecheck/internal/domain"
)

// evidenceTimeout bounds both lookups together so a stalled provider cannot
// block an evaluation past its own adapter timeout.
const evidenceTimeout = 15 * time.Second

type gatheredEvidence struct {
	Carrier   domain.CarrierInfo
	Search    domain.SearchEvidence
	FetchedAt time.Time
}

// gatherEvidence runs the carrier lookup and the web evidence search in
// parallel and joins before returning. Both adapters degrade internally, so
// the group never observes an error; classification always sees complete
// (possibly degraded) evidence, never partial data.
func (s *Service) gatherEvidence(ctx context.Context, number string) gatheredEvidence {
	ctx, cancel := context.WithTimeout(ctx, evidenceTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	evidence := gatheredEvidence{FetchedAt: time.Now().UTC()}

	g.Go(func() error {
		start := time.Now()
		evidence.Carrier = s.carrier.Fetch(ctx, number)
		s.metrics.ObserveEvidenceLatency("carrier", time.Since(start))
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		evidence.Search = s.search.Search(ctx, number)
		s.metrics.ObserveEvidenceLatency("search", time.Since(start))
		return nil
	})

	_ = g.Wait()
	return evidence
}
