package audit

import (
	"context"

	"github.com/google/uuid"

	"hdc/pkg/requestcontext"
)

// Store is an append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByBookingID(ctx context.Context, bookingID int64) ([]Event, error)
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// Emit assigns an id and timestamp where missing and appends the event.
// A nil publisher discards events.
func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if p == nil || p.store == nil {
		return nil
	}
	if base.ID == "" {
		base.ID = uuid.NewString()
	}
	if base.Timestamp.IsZero() {
		base.Timestamp = requestcontext.Now(ctx)
	}
	return p.store.Append(ctx, base)
}

func (p *Publisher) List(ctx context.Context, bookingID int64) ([]Event, error) {
	if p == nil || p.store == nil {
		return nil, nil
	}
	return p.store.ListByBookingID(ctx, bookingID)
}
