package eventbus

import "context"

type InstanceEventType string

const (
	InstanceEventCreated   InstanceEventType = "InstanceCreated"
	InstanceEventUpgraded  InstanceEventType = "InstanceUpgraded"
	InstanceEventCompleted InstanceEventType = "InstanceCompleted"
)

// InstanceEvent describes a lifecycle change of a user checklist instance.
type InstanceEvent struct {
	Type            InstanceEventType
	UserID          uint
	UserChecklistID uint
	ChecklistID     uint
	ChecklistName   string
	Version         string
}

type InstanceEventHandler func(ctx context.Context, event InstanceEvent) error
