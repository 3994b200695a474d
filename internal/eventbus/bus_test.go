package eventbus

import (
	"context"
	"errors"
	"testing"
)

func TestBusPublishBroadcast(t *testing.T) {
	bus := NewBus()
	calledA := false
	calledB := false

	bus.Subscribe(InstanceEventCreated, func(ctx context.Context, event InstanceEvent) error {
		calledA = true
		return nil
	})
	bus.Subscribe(InstanceEventCreated, func(ctx context.Context, event InstanceEvent) error {
		calledB = true
		return nil
	})

	if err := bus.Publish(context.Background(), InstanceEvent{Type: InstanceEventCreated}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !calledA || !calledB {
		t.Fatalf("expected handlers to be called")
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	called := false
	unsubscribe := bus.Subscribe(InstanceEventUpgraded, func(ctx context.Context, event InstanceEvent) error {
		called = true
		return nil
	})
	unsubscribe()

	if err := bus.Publish(context.Background(), InstanceEvent{Type: InstanceEventUpgraded}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("expected handler to be unsubscribed")
	}
}

func TestBusPublishJoinErrors(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(InstanceEventCompleted, func(ctx context.Context, event InstanceEvent) error {
		return errors.New("err-a")
	})
	bus.Subscribe(InstanceEventCompleted, func(ctx context.Context, event InstanceEvent) error {
		return errors.New("err-b")
	})

	if err := bus.Publish(context.Background(), InstanceEvent{Type: InstanceEventCompleted}); err == nil {
		t.Fatalf("expected error")
	}
}
