package model

type TeamMember struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	TeamID       int64   `json:"team_id"`
	PCName       string  `json:"pc_name"`
	Email        *string `json:"email,omitempty"`
	DisplayOrder int     `json:"display_order"`
}

type DisplayOrderUpdate struct {
	ID           int64 `json:"id"`
	DisplayOrder int   `json:"display_order"`
}

type ReorderFailure struct {
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

// ReorderResult reports the outcome of every update in a reorder batch.
// Updates listed in Succeeded stay applied even when Failed is non-empty.
type ReorderResult struct {
	Succeeded []int64          `json:"succeeded"`
	Failed    []ReorderFailure `json:"failed"`
}

func (r ReorderResult) OK() bool {
	return len(r.Failed) == 0
}
