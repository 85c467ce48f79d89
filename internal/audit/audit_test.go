package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdc/pkg/requestcontext"
)

func TestPublisherFillsIdentityFields(t *testing.T) {
	store := NewMemoryStore()
	publisher := NewPublisher(store)

	err := publisher.Emit(context.Background(), Event{
		Username:  "CA_USER",
		Role:      "CA",
		Action:    ActionRecordStarted,
		BookingID: 123,
	})
	require.NoError(t, err)

	events, err := store.ListByBookingID(context.Background(), 123)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, ActionRecordStarted, events[0].Action)
}

func TestPublisherUsesRequestScopedTime(t *testing.T) {
	store := NewMemoryStore()
	publisher := NewPublisher(store)

	at := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), at)

	require.NoError(t, publisher.Emit(ctx, Event{Action: ActionHandover, BookingID: 7}))

	events, err := store.ListByBookingID(ctx, 7)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, at, events[0].Timestamp)
}

func TestNilPublisherDiscards(t *testing.T) {
	var publisher *Publisher
	err := publisher.Emit(context.Background(), Event{Action: ActionHandover})
	assert.NoError(t, err)
}

func TestMemoryStoreFiltersByBooking(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Event{ID: "a", BookingID: 1, Action: ActionRecordStarted}))
	require.NoError(t, store.Append(ctx, Event{ID: "b", BookingID: 2, Action: ActionRecordStarted}))
	require.NoError(t, store.Append(ctx, Event{ID: "c", BookingID: 1, Action: ActionHandover}))

	events, err := store.ListByBookingID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].ID)
	assert.Equal(t, "c", events[1].ID)
}

func TestWorkerDrainsChannelToStore(t *testing.T) {
	sink := NewMemoryStore()
	channel := NewChannelStore(8, sink)
	worker := NewWorker(sink, channel.Inbox())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(ctx)
	}()

	require.NoError(t, channel.Append(ctx, Event{ID: "a", BookingID: 1, Action: ActionSectionUpdated}))

	require.Eventually(t, func() bool {
		events, err := sink.ListByBookingID(context.Background(), 1)
		return err == nil && len(events) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestChannelStoreFallsBackWhenFull(t *testing.T) {
	sink := NewMemoryStore()
	channel := NewChannelStore(1, sink)
	ctx := context.Background()

	// No worker running: the second append overflows into the fallback.
	require.NoError(t, channel.Append(ctx, Event{ID: "buffered", BookingID: 1}))
	require.NoError(t, channel.Append(ctx, Event{ID: "overflow", BookingID: 1}))

	events, err := sink.ListByBookingID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "overflow", events[0].ID)
}

func TestChannelStoreReadsFromFallback(t *testing.T) {
	sink := NewMemoryStore()
	channel := NewChannelStore(8, sink)
	ctx := context.Background()

	require.NoError(t, sink.Append(ctx, Event{ID: "a", BookingID: 9}))

	events, err := channel.ListByBookingID(ctx, 9)
	require.NoError(t, err)
	require.Len(t, events, 1)
}
