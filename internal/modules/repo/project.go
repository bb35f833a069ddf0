package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	Update(ctx context.Context, p *model.Project) error
	Get(ctx context.Context, workspaceID, projectID uuid.UUID) (*model.Project, error)
	ListByClient(ctx context.Context, workspaceID, clientID uuid.UUID, includeArchived bool) ([]*model.Project, error)
	SetArchived(ctx context.Context, workspaceID, projectID uuid.UUID, archived bool, at *time.Time, actor string, status string) error
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepo) Update(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", p.WorkspaceID).
		Where(&model.Project{ID: p.ID}).Updates(p).Error
}

func (r *projectRepo) Get(ctx context.Context, workspaceID, projectID uuid.UUID) (*model.Project, error) {
	var p model.Project
	if err := r.db.WithContext(ctx).Where("workspace_id = ? AND id = ?", workspaceID, projectID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByClient returns a client's projects; archived projects are excluded
// from the default view.
func (r *projectRepo) ListByClient(ctx context.Context, workspaceID, clientID uuid.UUID, includeArchived bool) ([]*model.Project, error) {
	q := r.db.WithContext(ctx).Where("workspace_id = ? AND client_id = ?", workspaceID, clientID)
	if !includeArchived {
		q = q.Where("is_archived = false")
	}

	var projects []*model.Project
	return projects, q.Order("created_at DESC").Find(&projects).Error
}

// SetArchived updates the archive flag and metadata in one statement. A nil
// timestamp clears the archival metadata (unarchive).
func (r *projectRepo) SetArchived(ctx context.Context, workspaceID, projectID uuid.UUID, archived bool, at *time.Time, actor string, status string) error {
	updates := map[string]interface{}{
		"is_archived": archived,
		"archived_at": at,
		"archived_by": actor,
	}
	if status != "" {
		updates["status"] = status
	}
	return r.db.WithContext(ctx).Model(&model.Project{}).
		Where("workspace_id = ? AND id = ?", workspaceID, projectID).
		Updates(updates).Error
}
