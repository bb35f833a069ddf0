package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"gorm.io/gorm"
)

type ActivityRepo interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
	ListWithCursor(ctx context.Context, workspaceID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int) ([]*model.ActivityLog, error)
}

type activityRepo struct{ db *gorm.DB }

func NewActivityRepo(db *gorm.DB) ActivityRepo {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListWithCursor pages newest-first through the audit trail.
func (r *activityRepo) ListWithCursor(ctx context.Context, workspaceID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int) ([]*model.ActivityLog, error) {
	q := r.db.WithContext(ctx).Where("workspace_id = ?", workspaceID)

	if !afterCreatedAt.IsZero() && afterID != uuid.Nil {
		q = q.Where("(created_at < ?) OR (created_at = ? AND id < ?)", afterCreatedAt, afterCreatedAt, afterID)
	}

	var entries []*model.ActivityLog
	return entries, q.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error
}
