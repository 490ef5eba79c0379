package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sink receives audit events. Implementations must be safe for concurrent
// use.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher captures structured audit events and fans them out to every
// configured sink. It is append-only so tests can swap sinks easily.
type Publisher struct {
	sinks []Sink
}

func NewPublisher(sinks ...Sink) *Publisher {
	return &Publisher{sinks: sinks}
}

// Emit stamps defaults and delivers the event to all sinks. Every sink is
// attempted even when an earlier one fails; the joined error is for the
// caller to log, not to act on.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
