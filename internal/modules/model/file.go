package model

import (
	"time"

	"github.com/google/uuid"
)

// File references the object-store payload; only metadata lives here.
// Archival mirrors the owning project's archive state: archiving a project
// moves its files into the project archive folder and flags them.
type File struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ClientID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	ProjectID   *uuid.UUID `gorm:"type:uuid;index" json:"project_id,omitempty"`
	FolderID    *string    `gorm:"type:text;index" json:"folder_id,omitempty"`

	Name     string `gorm:"type:text;not null" json:"name"`
	Category string `gorm:"type:text;not null;default:'document'" json:"category"`
	S3Key    string `gorm:"column:s3_key;type:text;not null" json:"s3_key"`
	URL      string `gorm:"type:text" json:"url"`
	MIME     string `gorm:"column:mime;type:text" json:"mime"`
	SizeB    int64  `gorm:"column:size_bigint;type:bigint;not null;default:0" json:"size_b"`

	IsArchived bool       `gorm:"not null;default:false;index" json:"is_archived"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	ArchivedBy string     `gorm:"type:text" json:"archived_by,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (File) TableName() string { return "files" }
