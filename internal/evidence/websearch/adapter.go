package websearch

import (
	"context"
	"log/slog"
	"time"

	"phonecheck/internal/domain"
)

// Adapter wraps a Client with the pipeline's degradation contract: provider
// failures become a tagged degraded result, never an error. The degraded
// marker is distinct from genuine snippets so error text can never feed the
// keyword classifier.
type Adapter struct {
	client  Client
	timeout time.Duration
	logger  *slog.Logger
}

func NewAdapter(client Client, timeout time.Duration, logger *slog.Logger) *Adapter {
	return &Adapter{client: client, timeout: timeout, logger: logger}
}

// Search looks for scam reports mentioning the number. It never returns an
// error; a stalled provider is cut off by the bounded timeout.
func (a *Adapter) Search(ctx context.Context, number string) domain.SearchEvidence {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	query := number + " scam OR spam OR fraud"
	snippets, err := a.client.Search(ctx, query)
	if err != nil {
		a.logger.WarnContext(ctx, "evidence search degraded",
			"number", number,
			"error", err,
		)
		return domain.DegradedEvidence(err.Error())
	}
	return domain.SearchEvidence{Snippets: snippets}
}

// MockClient returns canned snippets with a configurable latency.
type MockClient struct {
	Latency  time.Duration
	Snippets []string
	Err      error
}

func (c MockClient) Search(_ context.Context, _ string) ([]string, error) {
	time.Sleep(c.Latency)
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Snippets, nil
}
