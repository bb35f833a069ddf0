package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/config"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
	"github.com/iris-hq/iris-os/internal/pkg/utils"
)

type WorkspaceService interface {
	Create(ctx context.Context, name string) (*model.Workspace, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type workspaceService struct {
	r   repo.WorkspaceRepo
	cfg *config.Config
}

func NewWorkspaceService(r repo.WorkspaceRepo, cfg *config.Config) WorkspaceService {
	return &workspaceService{r: r, cfg: cfg}
}

// Create mints the workspace with a fresh secret key. The key is the only
// credential a tenant ever holds, so it is returned exactly once here.
func (s *workspaceService) Create(ctx context.Context, name string) (*model.Workspace, error) {
	if name == "" {
		return nil, errors.New("workspace name is empty")
	}

	key, err := utils.GenerateKey(s.cfg.Root.WorkspaceKeyPrefix)
	if err != nil {
		return nil, err
	}

	ws := &model.Workspace{
		Name:      name,
		SecretKey: key,
	}
	if err := s.r.Create(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *workspaceService) GetByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error) {
	return s.r.Get(ctx, id)
}

func (s *workspaceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.r.Delete(ctx, id)
}
