package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/infra/blob"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
	"go.uber.org/zap"
)

// blobStore is the slice of blob.S3Deps the file service needs.
type blobStore interface {
	UploadFormFile(ctx context.Context, keyPrefix string, fh *multipart.FileHeader) (*blob.UploadedMeta, error)
	PresignGet(ctx context.Context, key string, expire time.Duration) (string, error)
	DeleteObject(ctx context.Context, key string) error
}

type UploadRequest struct {
	WorkspaceID uuid.UUID
	ClientID    uuid.UUID
	ProjectID   *uuid.UUID
	TaskID      *uuid.UUID
	Category    string
	Header      *multipart.FileHeader
}

type FileService interface {
	Upload(ctx context.Context, req UploadRequest) (*model.File, error)
	GetByID(ctx context.Context, workspaceID, fileID uuid.UUID) (*model.File, error)
	GetURL(ctx context.Context, workspaceID, fileID uuid.UUID, expire time.Duration) (string, error)
	ListByFolder(ctx context.Context, workspaceID uuid.UUID, folderID string) ([]*model.File, error)
	ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.File, error)
	Move(ctx context.Context, workspaceID, fileID uuid.UUID, folderID *string) error
	Delete(ctx context.Context, workspaceID, fileID uuid.UUID) error
}

type fileService struct {
	r         repo.FileRepo
	folders   repo.FolderRepo
	provision ProvisionService
	store     blobStore
	log       *zap.Logger
}

func NewFileService(r repo.FileRepo, folders repo.FolderRepo, provision ProvisionService, store blobStore, log *zap.Logger) FileService {
	return &fileService{r: r, folders: folders, provision: provision, store: store, log: log}
}

// Upload streams the payload into the bucket, resolves the destination
// folder by category and records the metadata row. A file whose category
// resolves to no folder is stored unfiled rather than rejected.
func (s *fileService) Upload(ctx context.Context, req UploadRequest) (*model.File, error) {
	if req.Header == nil {
		return nil, errors.New("file payload is missing")
	}
	if req.ClientID == uuid.Nil {
		return nil, errors.New("client id is empty")
	}

	meta, err := s.store.UploadFormFile(ctx, fmt.Sprintf("workspaces/%s", req.WorkspaceID), req.Header)
	if err != nil {
		return nil, fmt.Errorf("upload payload: %w", err)
	}

	clientID := req.ClientID
	dest, err := s.provision.ResolveDestination(ctx, req.WorkspaceID, req.Category, req.TaskID, req.ProjectID, &clientID)
	if err != nil {
		return nil, fmt.Errorf("resolve destination folder: %w", err)
	}

	f := &model.File{
		WorkspaceID: req.WorkspaceID,
		ClientID:    req.ClientID,
		ProjectID:   req.ProjectID,
		Name:        req.Header.Filename,
		Category:    req.Category,
		S3Key:       meta.Key,
		MIME:        meta.MIME,
		SizeB:       meta.SizeB,
	}
	if dest != nil {
		f.FolderID = &dest.ID
	}

	if err := s.r.Create(ctx, f); err != nil {
		// best-effort rollback of the orphaned payload
		if derr := s.store.DeleteObject(ctx, meta.Key); derr != nil {
			s.log.Sugar().Warnw("orphaned object cleanup failed", "key", meta.Key, "err", derr)
		}
		return nil, fmt.Errorf("create file record: %w", err)
	}
	return f, nil
}

func (s *fileService) GetByID(ctx context.Context, workspaceID, fileID uuid.UUID) (*model.File, error) {
	if fileID == uuid.Nil {
		return nil, errors.New("file id is empty")
	}
	return s.r.Get(ctx, workspaceID, fileID)
}

func (s *fileService) GetURL(ctx context.Context, workspaceID, fileID uuid.UUID, expire time.Duration) (string, error) {
	f, err := s.r.Get(ctx, workspaceID, fileID)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, f.S3Key, expire)
}

func (s *fileService) ListByFolder(ctx context.Context, workspaceID uuid.UUID, folderID string) ([]*model.File, error) {
	return s.r.ListByFolder(ctx, workspaceID, folderID)
}

func (s *fileService) ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.File, error) {
	return s.r.ListByProject(ctx, workspaceID, projectID)
}

// Move re-files a record. A nil folderID detaches the file; a non-nil one
// must name an existing folder in the same workspace.
func (s *fileService) Move(ctx context.Context, workspaceID, fileID uuid.UUID, folderID *string) error {
	if folderID != nil {
		if _, err := s.folders.Get(ctx, workspaceID, *folderID); err != nil {
			return fmt.Errorf("destination folder: %w", err)
		}
	}
	return s.r.Move(ctx, workspaceID, fileID, folderID)
}

// Delete removes the metadata row first, then the payload. Object deletion
// failure is logged: the row is already gone and a sweeper can reclaim the
// object later.
func (s *fileService) Delete(ctx context.Context, workspaceID, fileID uuid.UUID) error {
	f, err := s.r.Get(ctx, workspaceID, fileID)
	if err != nil {
		return err
	}
	if err := s.r.Delete(ctx, workspaceID, fileID); err != nil {
		return err
	}
	if err := s.store.DeleteObject(ctx, f.S3Key); err != nil {
		s.log.Sugar().Warnw("object deletion failed", "key", f.S3Key, "err", err)
	}
	return nil
}
