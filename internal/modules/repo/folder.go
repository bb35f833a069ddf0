package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FolderTreeCounts struct {
	Folders int64 `json:"folders"`
	Files   int64 `json:"files"`
}

type FolderRepo interface {
	Upsert(ctx context.Context, folders []model.Folder) error
	Get(ctx context.Context, workspaceID uuid.UUID, folderID string) (*model.Folder, error)
	Rename(ctx context.Context, workspaceID uuid.UUID, folderID, name string) error
	ListChildren(ctx context.Context, workspaceID uuid.UUID, parentID string) ([]model.Folder, error)
	ListByClient(ctx context.Context, workspaceID, clientID uuid.UUID) ([]model.Folder, error)
	CollectSubtree(ctx context.Context, workspaceID uuid.UUID, rootID string) ([]string, error)
	DeleteTree(ctx context.Context, workspaceID uuid.UUID, rootID string) (FolderTreeCounts, error)
}

type folderRepo struct{ db *gorm.DB }

func NewFolderRepo(db *gorm.DB) FolderRepo {
	return &folderRepo{db: db}
}

// Upsert writes folder records keyed by their deterministic IDs. Re-running
// provisioning overwrites identical rows instead of duplicating them.
func (r *folderRepo) Upsert(ctx context.Context, folders []model.Folder) error {
	if len(folders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "parent_id", "updated_at"}),
	}).Create(&folders).Error
}

func (r *folderRepo) Get(ctx context.Context, workspaceID uuid.UUID, folderID string) (*model.Folder, error) {
	var f model.Folder
	if err := r.db.WithContext(ctx).Where("workspace_id = ? AND id = ?", workspaceID, folderID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *folderRepo) Rename(ctx context.Context, workspaceID uuid.UUID, folderID, name string) error {
	return r.db.WithContext(ctx).Model(&model.Folder{}).
		Where("workspace_id = ? AND id = ?", workspaceID, folderID).
		Update("name", name).Error
}

func (r *folderRepo) ListChildren(ctx context.Context, workspaceID uuid.UUID, parentID string) ([]model.Folder, error) {
	var folders []model.Folder
	return folders, r.db.WithContext(ctx).
		Where("workspace_id = ? AND parent_id = ?", workspaceID, parentID).
		Order("name ASC").Find(&folders).Error
}

func (r *folderRepo) ListByClient(ctx context.Context, workspaceID, clientID uuid.UUID) ([]model.Folder, error) {
	var folders []model.Folder
	return folders, r.db.WithContext(ctx).
		Where("workspace_id = ? AND client_id = ?", workspaceID, clientID).
		Order("id ASC").Find(&folders).Error
}

// CollectSubtree gathers the IDs of a folder and all its descendants with an
// explicit breadth-first worklist: one query per tree level, no recursion.
// The seen set terminates the walk if a parent_id cycle ever appears in the
// data; each folder is collected once.
func (r *folderRepo) CollectSubtree(ctx context.Context, workspaceID uuid.UUID, rootID string) ([]string, error) {
	ids := []string{rootID}
	seen := map[string]struct{}{rootID: {}}
	frontier := []string{rootID}

	for len(frontier) > 0 {
		var children []string
		err := r.db.WithContext(ctx).Model(&model.Folder{}).
			Where("workspace_id = ? AND parent_id IN ?", workspaceID, frontier).
			Pluck("id", &children).Error
		if err != nil {
			return nil, fmt.Errorf("collect folder children: %w", err)
		}

		next := make([]string, 0, len(children))
		for _, id := range children {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
			next = append(next, id)
		}
		frontier = next
	}

	return ids, nil
}

// DeleteTree removes a folder subtree and every file row it contains, as one
// transaction: all of it applies or none of it does.
func (r *folderRepo) DeleteTree(ctx context.Context, workspaceID uuid.UUID, rootID string) (FolderTreeCounts, error) {
	ids, err := r.CollectSubtree(ctx, workspaceID, rootID)
	if err != nil {
		return FolderTreeCounts{}, err
	}

	var counts FolderTreeCounts
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("workspace_id = ? AND folder_id IN ?", workspaceID, ids).Delete(&model.File{})
		if res.Error != nil {
			return fmt.Errorf("delete files in subtree: %w", res.Error)
		}
		counts.Files = res.RowsAffected

		res = tx.Where("workspace_id = ? AND id IN ?", workspaceID, ids).Delete(&model.Folder{})
		if res.Error != nil {
			return fmt.Errorf("delete folders in subtree: %w", res.Error)
		}
		counts.Folders = res.RowsAffected
		return nil
	})
	if err != nil {
		return FolderTreeCounts{}, err
	}
	return counts, nil
}
