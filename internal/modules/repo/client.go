package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"gorm.io/gorm"
)

type ClientRepo interface {
	Create(ctx context.Context, c *model.Client) error
	Update(ctx context.Context, c *model.Client) error
	Get(ctx context.Context, workspaceID, clientID uuid.UUID) (*model.Client, error)
	ListWithCursor(ctx context.Context, workspaceID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]*model.Client, error)
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepo(db *gorm.DB) ClientRepo {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) Update(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", c.WorkspaceID).
		Where(&model.Client{ID: c.ID}).Updates(c).Error
}

func (r *clientRepo) Get(ctx context.Context, workspaceID, clientID uuid.UUID) (*model.Client, error) {
	var c model.Client
	if err := r.db.WithContext(ctx).Where("workspace_id = ? AND id = ?", workspaceID, clientID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) ListWithCursor(ctx context.Context, workspaceID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]*model.Client, error) {
	q := r.db.WithContext(ctx).Where("workspace_id = ?", workspaceID)

	if !afterCreatedAt.IsZero() && afterID != uuid.Nil {
		comparisonOp := ">"
		if timeDesc {
			comparisonOp = "<"
		}
		q = q.Where(
			"(created_at "+comparisonOp+" ?) OR (created_at = ? AND id "+comparisonOp+" ?)",
			afterCreatedAt, afterCreatedAt, afterID,
		)
	}

	orderBy := "created_at ASC, id ASC"
	if timeDesc {
		orderBy = "created_at DESC, id DESC"
	}

	var clients []*model.Client
	return clients, q.Order(orderBy).Limit(limit).Find(&clients).Error
}
