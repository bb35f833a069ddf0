package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"gorm.io/gorm"
)

type FileRepo interface {
	Create(ctx context.Context, f *model.File) error
	Get(ctx context.Context, workspaceID, fileID uuid.UUID) (*model.File, error)
	ListByFolder(ctx context.Context, workspaceID uuid.UUID, folderID string) ([]*model.File, error)
	ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.File, error)
	Move(ctx context.Context, workspaceID, fileID uuid.UUID, folderID *string) error
	Delete(ctx context.Context, workspaceID, fileID uuid.UUID) error
}

type fileRepo struct{ db *gorm.DB }

func NewFileRepo(db *gorm.DB) FileRepo {
	return &fileRepo{db: db}
}

func (r *fileRepo) Create(ctx context.Context, f *model.File) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fileRepo) Get(ctx context.Context, workspaceID, fileID uuid.UUID) (*model.File, error) {
	var f model.File
	if err := r.db.WithContext(ctx).Where("workspace_id = ? AND id = ?", workspaceID, fileID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) ListByFolder(ctx context.Context, workspaceID uuid.UUID, folderID string) ([]*model.File, error) {
	var files []*model.File
	return files, r.db.WithContext(ctx).
		Where("workspace_id = ? AND folder_id = ?", workspaceID, folderID).
		Order("created_at ASC").Find(&files).Error
}

func (r *fileRepo) ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.File, error) {
	var files []*model.File
	return files, r.db.WithContext(ctx).
		Where("workspace_id = ? AND project_id = ?", workspaceID, projectID).
		Order("created_at ASC").Find(&files).Error
}

func (r *fileRepo) Move(ctx context.Context, workspaceID, fileID uuid.UUID, folderID *string) error {
	return r.db.WithContext(ctx).Model(&model.File{}).
		Where("workspace_id = ? AND id = ?", workspaceID, fileID).
		Update("folder_id", folderID).Error
}

func (r *fileRepo) Delete(ctx context.Context, workspaceID, fileID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&model.File{ID: fileID}).Error
}
