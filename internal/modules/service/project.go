package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
	"go.uber.org/zap"
)

type ProjectService interface {
	Create(ctx context.Context, p *model.Project) error
	Update(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, workspaceID, projectID uuid.UUID) (*model.Project, error)
	ListByClient(ctx context.Context, workspaceID, clientID uuid.UUID, includeArchived bool) ([]*model.Project, error)
}

type projectService struct {
	r         repo.ProjectRepo
	provision ProvisionService
	log       *zap.Logger
}

func NewProjectService(r repo.ProjectRepo, provision ProvisionService, log *zap.Logger) ProjectService {
	return &projectService{r: r, provision: provision, log: log}
}

// Create persists the project and its folder subtree under the owning
// client. Provisioning failure never blocks project creation.
func (s *projectService) Create(ctx context.Context, p *model.Project) error {
	if err := s.r.Create(ctx, p); err != nil {
		return err
	}

	if err := s.provision.ProvisionProjectFolder(ctx, p.WorkspaceID, p.ID, p.Name, p.ClientID, p.Code); err != nil {
		s.log.Sugar().Warnw("project folder provisioning failed",
			"project_id", p.ID, "workspace_id", p.WorkspaceID, "err", err)
	}
	return nil
}

func (s *projectService) Update(ctx context.Context, p *model.Project) error {
	if p.ID == uuid.Nil {
		return errors.New("project id is empty")
	}
	return s.r.Update(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, workspaceID, projectID uuid.UUID) (*model.Project, error) {
	if projectID == uuid.Nil {
		return nil, errors.New("project id is empty")
	}
	return s.r.Get(ctx, workspaceID, projectID)
}

func (s *projectService) ListByClient(ctx context.Context, workspaceID, clientID uuid.UUID, includeArchived bool) ([]*model.Project, error) {
	return s.r.ListByClient(ctx, workspaceID, clientID, includeArchived)
}
