package events

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestPublishContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	d.Subscribe(EventJobCreated, func(ctx context.Context, e Event) error {
		return errors.New("handler failure")
	})
	var delivered bool
	d.Subscribe(EventJobCreated, func(ctx context.Context, e Event) error {
		delivered = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventJobCreated}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !delivered {
		t.Fatal("handler error stopped delivery to later handlers")
	}
}

func TestSubscribeScopedToEventType(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var calls int
	d.Subscribe(EventJobUpdated, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventJobCreated})
	if calls != 0 {
		t.Fatal("handler received event of a different type")
	}
	_ = d.Publish(context.Background(), Event{Type: EventJobUpdated})
	if calls != 1 {
		t.Fatalf("handler called %d times, want 1", calls)
	}
}
