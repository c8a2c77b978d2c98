package domain

import "time"

type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "DRAFT"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

// Project is a development project listed by a promoter. The sanctions job
// only cares about active projects and their last published update.
type Project struct {
	ID           int32         `json:"id"`
	PromoterID   int32         `json:"promoter_id"`
	Name         string        `json:"name"`
	Status       ProjectStatus `json:"status"`
	Delayed      bool          `json:"delayed"`
	LastUpdateAt *time.Time    `json:"last_update_at,omitempty"`
	CreatedOn    string        `json:"created_on"`
}
