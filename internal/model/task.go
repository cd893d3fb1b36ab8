package model

import "time"

type Task struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Assignee  *string   `json:"assignee"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TaskFilter struct {
	ProjectID int64
	Status    *string
}

// TaskPatch carries the fields a PATCH request wants to change. Nil means unchanged.
type TaskPatch struct {
	Name     *string `json:"name"`
	Status   *string `json:"status"`
	Assignee *string `json:"assignee"`
}
