package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"gorm.io/gorm"
)

type WorkspaceRepo interface {
	Create(ctx context.Context, ws *model.Workspace) error
	Get(ctx context.Context, id uuid.UUID) (*model.Workspace, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type workspaceRepo struct{ db *gorm.DB }

func NewWorkspaceRepo(db *gorm.DB) WorkspaceRepo {
	return &workspaceRepo{db: db}
}

func (r *workspaceRepo) Create(ctx context.Context, ws *model.Workspace) error {
	return r.db.WithContext(ctx).Create(ws).Error
}

func (r *workspaceRepo) Get(ctx context.Context, id uuid.UUID) (*model.Workspace, error) {
	var ws model.Workspace
	if err := r.db.WithContext(ctx).Where(&model.Workspace{ID: id}).First(&ws).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *workspaceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Workspace{ID: id}).Error
}
