package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"gorm.io/gorm"
)

type MilestoneRepo interface {
	Create(ctx context.Context, m *model.Milestone) error
	Update(ctx context.Context, m *model.Milestone) error
	Get(ctx context.Context, workspaceID, milestoneID uuid.UUID) (*model.Milestone, error)
	ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.Milestone, error)
	SetProgress(ctx context.Context, workspaceID, milestoneID uuid.UUID, percent int) error
}

type milestoneRepo struct{ db *gorm.DB }

func NewMilestoneRepo(db *gorm.DB) MilestoneRepo {
	return &milestoneRepo{db: db}
}

func (r *milestoneRepo) Create(ctx context.Context, m *model.Milestone) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *milestoneRepo) Update(ctx context.Context, m *model.Milestone) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", m.WorkspaceID).
		Where(&model.Milestone{ID: m.ID}).Updates(m).Error
}

func (r *milestoneRepo) Get(ctx context.Context, workspaceID, milestoneID uuid.UUID) (*model.Milestone, error) {
	var m model.Milestone
	if err := r.db.WithContext(ctx).Where("workspace_id = ? AND id = ?", workspaceID, milestoneID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *milestoneRepo) ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.Milestone, error) {
	var milestones []*model.Milestone
	return milestones, r.db.WithContext(ctx).
		Where("workspace_id = ? AND project_id = ?", workspaceID, projectID).
		Order("created_at ASC").Find(&milestones).Error
}

// SetProgress writes the derived percentage. Only the recalculation path
// calls this; handlers never set progress directly.
func (r *milestoneRepo) SetProgress(ctx context.Context, workspaceID, milestoneID uuid.UUID, percent int) error {
	return r.db.WithContext(ctx).Model(&model.Milestone{}).
		Where("workspace_id = ? AND id = ?", workspaceID, milestoneID).
		Update("progress_percent", percent).Error
}
