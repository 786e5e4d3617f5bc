package projection

import (
	"context"
	"sync"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain/booking"
	"github.com/David-19-dev/abdouperformence-sub001/internal/events"
)

// Subscription is a live handle onto the calendar feed. Each server-pushed
// snapshot is delivered on C; Cancel releases the subscription.
type Subscription struct {
	C      <-chan []CalendarEvent
	cancel func()
}

// Cancel releases the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.cancel()
}

// Feed maintains a live calendar view of the booking collection. It listens
// to the booking change topic and, on every notification, reloads the full
// set, re-maps it and pushes the snapshot to all subscribers.
type Feed struct {
	consumer *events.Consumer
	repo     booking.Repository
	logger   *zap.Logger

	mu       sync.RWMutex
	snapshot []CalendarEvent
	subs     map[int]chan []CalendarEvent
	nextID   int
	closed   bool
}

// NewFeed creates a calendar feed consuming the booking change topic.
func NewFeed(brokers []string, groupID string, repo booking.Repository, logger *zap.Logger) *Feed {
	consumer := events.NewConsumer(brokers, groupID, events.TopicBookingEvents, logger)
	return &Feed{
		consumer: consumer,
		repo:     repo,
		logger:   logger,
		subs:     make(map[int]chan []CalendarEvent),
	}
}

// Start loads the initial snapshot and then blocks consuming change events
// until the context is cancelled. A reload failure leaves the previous
// snapshot stale rather than clearing it.
func (f *Feed) Start(ctx context.Context) error {
	if err := f.reload(ctx); err != nil {
		f.logger.Error("initial calendar load failed", zap.Error(err))
	}
	return f.consumer.Consume(ctx, f.handleMessage)
}

// Snapshot returns the most recently computed event set.
func (f *Feed) Snapshot() []CalendarEvent {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]CalendarEvent, len(f.snapshot))
	copy(out, f.snapshot)
	return out
}

// Subscribe registers a consumer of snapshot pushes. The channel holds only
// the latest snapshot: a slow subscriber sees stale snapshots replaced, not
// queued.
func (f *Feed) Subscribe() *Subscription {
	ch := make(chan []CalendarEvent, 1)

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = ch
	f.mu.Unlock()

	var once sync.Once
	return &Subscription{
		C: ch,
		cancel: func() {
			once.Do(func() {
				f.mu.Lock()
				delete(f.subs, id)
				f.mu.Unlock()
			})
		},
	}
}

// Close shuts down the underlying consumer.
func (f *Feed) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return f.consumer.Close()
}

func (f *Feed) handleMessage(ctx context.Context, msg kafkago.Message) error {
	ce, err := events.ParseCloudEvent(msg.Value)
	if err != nil {
		f.logger.Error("malformed event on booking topic", zap.Error(err))
		return nil
	}

	switch ce.Type {
	case events.BookingCreated, events.BookingUpdated, events.BookingStatusChanged, events.BookingDeleted:
		return f.reload(ctx)
	default:
		f.logger.Debug("ignoring unhandled booking event type", zap.String("type", ce.Type))
		return nil
	}
}

func (f *Feed) reload(ctx context.Context) error {
	bookings, err := f.repo.List(ctx)
	if err != nil {
		return err
	}
	snapshot := MapBookings(bookings)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.snapshot = snapshot
	for _, ch := range f.subs {
		// Replace any undelivered snapshot with the fresh one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
	return nil
}
