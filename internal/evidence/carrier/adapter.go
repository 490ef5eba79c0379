package carrier

import (
	"context"
	"log/slog"
	"time"

	"phonecheck/internal/domain"
)

// Adapter wraps a Client with the pipeline's degradation contract: every
// provider failure (network, timeout, bad response) collapses to
// Unknown/Unknown so the evaluation keeps going.
type Adapter struct {
	client  Client
	timeout time.Duration
	logger  *slog.Logger
}

func NewAdapter(client Client, timeout time.Duration, logger *slog.Logger) *Adapter {
	return &Adapter{client: client, timeout: timeout, logger: logger}
}

// Fetch looks up carrier details for a normalized number. It never returns an
// error; a stalled provider is cut off by the bounded timeout.
func (a *Adapter) Fetch(ctx context.Context, number string) domain.CarrierInfo {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	info, err := a.client.Lookup(ctx, number)
	if err != nil {
		a.logger.WarnContext(ctx, "carrier lookup degraded",
			"number", number,
			"error", err,
		)
		return domain.UnknownCarrier()
	}
	return info
}
