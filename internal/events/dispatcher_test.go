package events

import (
	"context"
	"errors"
	"testing"
)

func TestPublishInvokesAllSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls int
	d.Subscribe(EventRequestCreated, func(context.Context, Event) error {
		calls++
		return errors.New("first handler fails")
	})
	d.Subscribe(EventRequestCreated, func(context.Context, Event) error {
		calls++
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventRequestCreated}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected both handlers to run, got %d", calls)
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventUserRegistered}); err != nil {
		t.Fatalf("publish to empty topic failed: %v", err)
	}
}
