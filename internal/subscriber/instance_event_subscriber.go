package subscriber

import (
	"context"

	"github.com/careerladder/backend/internal/eventbus"
	"k8s.io/klog/v2"
)

// InstanceEventSubscriber logs checklist instance lifecycle events. It is
// the single consumer of the bus today; notification delivery would hang
// off the same subscription points.
type InstanceEventSubscriber struct{}

func NewInstanceEventSubscriber() *InstanceEventSubscriber {
	return &InstanceEventSubscriber{}
}

func (s *InstanceEventSubscriber) Register(bus *eventbus.Bus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.InstanceEventCreated, s.handleCreated)
	bus.Subscribe(eventbus.InstanceEventUpgraded, s.handleUpgraded)
	bus.Subscribe(eventbus.InstanceEventCompleted, s.handleCompleted)
}

func (s *InstanceEventSubscriber) handleCreated(ctx context.Context, event eventbus.InstanceEvent) error {
	klog.V(6).Infof("user checklist created: userID=%d, checklist=%q, version=%s, instanceID=%d",
		event.UserID, event.ChecklistName, event.Version, event.UserChecklistID)
	return nil
}

func (s *InstanceEventSubscriber) handleUpgraded(ctx context.Context, event eventbus.InstanceEvent) error {
	klog.V(6).Infof("user checklist upgraded: userID=%d, checklist=%q, version=%s, instanceID=%d",
		event.UserID, event.ChecklistName, event.Version, event.UserChecklistID)
	return nil
}

func (s *InstanceEventSubscriber) handleCompleted(ctx context.Context, event eventbus.InstanceEvent) error {
	klog.V(6).Infof("user checklist completed: userID=%d, checklist=%q, instanceID=%d",
		event.UserID, event.ChecklistName, event.UserChecklistID)
	return nil
}
