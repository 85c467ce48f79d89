package audit

import "context"

// ChannelStore buffers events on a channel for a Worker to drain. It
// decouples request handling from the durable sink.
type ChannelStore struct {
	inbox    chan Event
	fallback Store
}

// NewChannelStore returns a buffered channel sink. fallback serves reads
// and receives events when the buffer is full.
func NewChannelStore(size int, fallback Store) *ChannelStore {
	return &ChannelStore{inbox: make(chan Event, size), fallback: fallback}
}

func (s *ChannelStore) Append(ctx context.Context, event Event) error {
	select {
	case s.inbox <- event:
		return nil
	default:
		return s.fallback.Append(ctx, event)
	}
}

func (s *ChannelStore) ListByBookingID(ctx context.Context, bookingID int64) ([]Event, error) {
	return s.fallback.ListByBookingID(ctx, bookingID)
}

// Inbox exposes the event channel for a Worker.
func (s *ChannelStore) Inbox() <-chan Event {
	return s.inbox
}

// Worker consumes audit events from a channel and persists them. It keeps
// background processing testable without wiring queue implementations in
// the request path.
type Worker struct {
	store Store
	inbox <-chan Event
}

func NewWorker(store Store, inbox <-chan Event) *Worker {
	return &Worker{store: store, inbox: inbox}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
		}
	}
}
