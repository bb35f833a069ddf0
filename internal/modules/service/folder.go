package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
)

type FolderService interface {
	Get(ctx context.Context, workspaceID uuid.UUID, folderID string) (*model.Folder, error)
	Rename(ctx context.Context, workspaceID uuid.UUID, folderID, name string) error
	ListChildren(ctx context.Context, workspaceID uuid.UUID, parentID string) ([]model.Folder, error)
	ListByClient(ctx context.Context, workspaceID, clientID uuid.UUID) ([]model.Folder, error)
	DeleteTree(ctx context.Context, workspaceID uuid.UUID, rootID string) (repo.FolderTreeCounts, error)
}

type folderService struct {
	r repo.FolderRepo
}

func NewFolderService(r repo.FolderRepo) FolderService {
	return &folderService{r: r}
}

func (s *folderService) Get(ctx context.Context, workspaceID uuid.UUID, folderID string) (*model.Folder, error) {
	if folderID == "" {
		return nil, errors.New("folder id is empty")
	}
	return s.r.Get(ctx, workspaceID, folderID)
}

func (s *folderService) Rename(ctx context.Context, workspaceID uuid.UUID, folderID, name string) error {
	if folderID == "" {
		return errors.New("folder id is empty")
	}
	if name == "" {
		return errors.New("folder name is empty")
	}
	return s.r.Rename(ctx, workspaceID, folderID, name)
}

func (s *folderService) ListChildren(ctx context.Context, workspaceID uuid.UUID, parentID string) ([]model.Folder, error) {
	return s.r.ListChildren(ctx, workspaceID, parentID)
}

func (s *folderService) ListByClient(ctx context.Context, workspaceID, clientID uuid.UUID) ([]model.Folder, error) {
	return s.r.ListByClient(ctx, workspaceID, clientID)
}

// DeleteTree removes the folder with all its descendants and the files filed
// under them, in one transaction.
func (s *folderService) DeleteTree(ctx context.Context, workspaceID uuid.UUID, rootID string) (repo.FolderTreeCounts, error) {
	if rootID == "" {
		return repo.FolderTreeCounts{}, errors.New("folder id is empty")
	}
	return s.r.DeleteTree(ctx, workspaceID, rootID)
}
