package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
	"go.uber.org/zap"
)

type ClientService interface {
	Create(ctx context.Context, c *model.Client) error
	Update(ctx context.Context, c *model.Client) error
	GetByID(ctx context.Context, workspaceID, clientID uuid.UUID) (*model.Client, error)
	ListWithCursor(ctx context.Context, workspaceID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]*model.Client, error)
}

type clientService struct {
	r         repo.ClientRepo
	provision ProvisionService
	log       *zap.Logger
}

func NewClientService(r repo.ClientRepo, provision ProvisionService, log *zap.Logger) ClientService {
	return &clientService{r: r, provision: provision, log: log}
}

// Create persists the client and synthesizes its folder subtree. Folder
// provisioning failure is logged and swallowed: the client record is the
// source of truth, folders can be healed by a later provisioning pass.
func (s *clientService) Create(ctx context.Context, c *model.Client) error {
	if err := s.r.Create(ctx, c); err != nil {
		return err
	}

	if err := s.provision.ProvisionClientFolders(ctx, c.WorkspaceID, c.ID, c.Name); err != nil {
		s.log.Sugar().Warnw("client folder provisioning failed",
			"client_id", c.ID, "workspace_id", c.WorkspaceID, "err", err)
	}
	return nil
}

func (s *clientService) Update(ctx context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		return errors.New("client id is empty")
	}
	return s.r.Update(ctx, c)
}

func (s *clientService) GetByID(ctx context.Context, workspaceID, clientID uuid.UUID) (*model.Client, error) {
	if clientID == uuid.Nil {
		return nil, errors.New("client id is empty")
	}
	return s.r.Get(ctx, workspaceID, clientID)
}

func (s *clientService) ListWithCursor(ctx context.Context, workspaceID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]*model.Client, error) {
	return s.r.ListWithCursor(ctx, workspaceID, afterCreatedAt, afterID, limit, timeDesc)
}
