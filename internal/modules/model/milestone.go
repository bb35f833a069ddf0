package model

import (
	"time"

	"github.com/google/uuid"
)

// Milestone holds a derived ProgressPercent. The value is never set by a
// caller directly: it is recomputed from the linked tasks after every task
// create or update that references the milestone.
type Milestone struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	Name        string     `gorm:"type:text;not null" json:"name"`
	DueAt       *time.Time `json:"due_at,omitempty"`

	ProgressPercent int `gorm:"not null;default:0;check:progress_percent >= 0 AND progress_percent <= 100" json:"progress_percent"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Milestone <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Milestone) TableName() string { return "milestones" }
