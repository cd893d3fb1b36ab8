package model

import "time"

const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionAssigned = "assigned"
)

type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

type Notification struct {
	ID          string                 `json:"id"`
	PCName      string                 `json:"pc_name"`
	TaskID      *int64                 `json:"task_id"`
	ProjectName string                 `json:"project_name"`
	TaskName    *string                `json:"task_name"`
	Action      string                 `json:"action"`
	Changes     map[string]FieldChange `json:"changes,omitempty"`
	IsRead      bool                   `json:"is_read"`
	CreatedAt   time.Time              `json:"created_at"`
}

type NotificationFilter struct {
	PCName     string
	UnreadOnly bool
	Limit      int
}

const (
	DeliverySending = "sending"
	DeliverySent    = "sent"
	DeliveryFailed  = "failed"
)

// Delivery is an assignment email waiting to go out, joined with the
// recipient address taken from the team member sharing the notification's pc_name.
type Delivery struct {
	Notification Notification
	Email        string
	MemberName   string
}
