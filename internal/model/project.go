package model

import "time"

const (
	ProjectNotStarted = "Not Started"
	ProjectInProgress = "In Progress"
	ProjectCompleted  = "Completed"
	ProjectOnHold     = "On Hold"
	ProjectRejected   = "Rejected"
)

// ProjectStatuses is the set of labels a project may carry.
var ProjectStatuses = []string{
	ProjectNotStarted,
	ProjectInProgress,
	ProjectCompleted,
	ProjectOnHold,
	ProjectRejected,
}

type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
