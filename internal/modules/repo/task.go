package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"gorm.io/gorm"
)

type TaskRepo interface {
	Create(ctx context.Context, t *model.Task) error
	Update(ctx context.Context, t *model.Task) error
	Get(ctx context.Context, workspaceID, taskID uuid.UUID) (*model.Task, error)
	ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID, includeDeleted bool) ([]*model.Task, error)
	SetDeleted(ctx context.Context, workspaceID, taskID uuid.UUID, deleted bool) error
	CountByMilestone(ctx context.Context, workspaceID, milestoneID uuid.UUID) (total int64, completed int64, err error)
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *taskRepo) Update(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", t.WorkspaceID).
		Where(&model.Task{ID: t.ID}).Updates(t).Error
}

// Get fetches by ID regardless of the soft-delete flag: soft-deleted tasks
// stay addressable for audit.
func (r *taskRepo) Get(ctx context.Context, workspaceID, taskID uuid.UUID) (*model.Task, error) {
	var t model.Task
	if err := r.db.WithContext(ctx).Where("workspace_id = ? AND id = ?", workspaceID, taskID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID, includeDeleted bool) ([]*model.Task, error) {
	q := r.db.WithContext(ctx).Where("workspace_id = ? AND project_id = ?", workspaceID, projectID)
	if !includeDeleted {
		q = q.Where("is_deleted = false")
	}

	var tasks []*model.Task
	return tasks, q.Order("created_at ASC").Find(&tasks).Error
}

func (r *taskRepo) SetDeleted(ctx context.Context, workspaceID, taskID uuid.UUID, deleted bool) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("workspace_id = ? AND id = ?", workspaceID, taskID).
		Update("is_deleted", deleted).Error
}

// CountByMilestone counts every task row referencing the milestone, and how
// many of those are done. Soft-deleted rows count too; only views filter
// them.
func (r *taskRepo) CountByMilestone(ctx context.Context, workspaceID, milestoneID uuid.UUID) (int64, int64, error) {
	var total, completed int64

	base := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("workspace_id = ? AND milestone_id = ?", workspaceID, milestoneID)

	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", model.TaskStatusDone).Count(&completed).Error; err != nil {
		return 0, 0, err
	}

	return total, completed, nil
}
