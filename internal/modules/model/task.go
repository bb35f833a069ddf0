package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusReview     = "review"
	TaskStatusDone       = "done"
)

// Task carries its own IsDeleted soft-delete flag, distinct from hard
// deletion: soft-deleted tasks drop out of default listings but stay
// addressable by ID.
type Task struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ProjectID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"project_id"`
	MilestoneID *uuid.UUID        `gorm:"type:uuid;index" json:"milestone_id,omitempty"`
	Title       string            `gorm:"type:text;not null" json:"title"`
	Description string            `gorm:"type:text" json:"description"`
	Status      string            `gorm:"type:text;not null;default:'todo';check:status IN ('todo','in_progress','review','done')" json:"status"`
	Assignee    string            `gorm:"type:text" json:"assignee"`
	DueAt       *time.Time        `json:"due_at,omitempty"`
	Meta        datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"meta"`

	IsDeleted bool `gorm:"not null;default:false;index" json:"is_deleted"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Task <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Task <-> Milestone
	Milestone *Milestone `gorm:"foreignKey:MilestoneID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"-"`
}

func (Task) TableName() string { return "tasks" }
