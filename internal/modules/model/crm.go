package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SocialLink struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Platform    string    `gorm:"type:text;not null" json:"platform"`
	URL         string    `gorm:"type:text;not null" json:"url"`
	Handle      string    `gorm:"type:text" json:"handle"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SocialLink) TableName() string { return "social_links" }

type Note struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ClientID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"client_id"`
	Title       string            `gorm:"type:text" json:"title"`
	Body        string            `gorm:"type:text;not null" json:"body"`
	Author      string            `gorm:"type:text" json:"author"`
	Meta        datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"meta"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Note) TableName() string { return "notes" }

// Meeting creation provisions a meeting folder under the client's meetings
// root so recordings and minutes have a deterministic destination.
type Meeting struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"workspace_id"`
	ClientID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	Title       string     `gorm:"type:text;not null" json:"title"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Location    string     `gorm:"type:text" json:"location"`
	Notes       string     `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Meeting) TableName() string { return "meetings" }
