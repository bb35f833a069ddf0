package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
	"go.uber.org/zap"
)

type TaskService interface {
	Create(ctx context.Context, t *model.Task, clientID uuid.UUID) error
	Update(ctx context.Context, t *model.Task) error
	GetByID(ctx context.Context, workspaceID, taskID uuid.UUID) (*model.Task, error)
	ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID, includeDeleted bool) ([]*model.Task, error)
	SoftDelete(ctx context.Context, workspaceID, taskID uuid.UUID) error
	Restore(ctx context.Context, workspaceID, taskID uuid.UUID) error
	HardDelete(ctx context.Context, workspaceID, taskID uuid.UUID) error
}

type taskService struct {
	r          repo.TaskRepo
	cascades   repo.CascadeRepo
	milestones MilestoneService
	provision  ProvisionService
	log        *zap.Logger
}

func NewTaskService(r repo.TaskRepo, cascades repo.CascadeRepo, milestones MilestoneService, provision ProvisionService, log *zap.Logger) TaskService {
	return &taskService{r: r, cascades: cascades, milestones: milestones, provision: provision, log: log}
}

// Create persists the task, provisions its folder and recalculates the
// linked milestone. Folder provisioning is best-effort: its failure never
// blocks task creation.
func (s *taskService) Create(ctx context.Context, t *model.Task, clientID uuid.UUID) error {
	if err := s.r.Create(ctx, t); err != nil {
		return fmt.Errorf("create task record: %w", err)
	}

	if err := s.provision.ProvisionTaskFolder(ctx, t.WorkspaceID, t.ID, t.Title, t.ProjectID, clientID); err != nil {
		s.log.Sugar().Warnw("task folder provisioning failed", "task_id", t.ID, "err", err)
	}

	if t.MilestoneID != nil {
		if _, err := s.milestones.Recalc(ctx, t.WorkspaceID, *t.MilestoneID); err != nil {
			return err
		}
	}
	return nil
}

// Update writes the change, then recalculates the milestone the task now
// references. Tasks moved off a milestone leave the old milestone's figure
// untouched until its next recalculation.
func (s *taskService) Update(ctx context.Context, t *model.Task) error {
	if t.ID == uuid.Nil {
		return errors.New("task id is empty")
	}

	if err := s.r.Update(ctx, t); err != nil {
		return fmt.Errorf("update task record: %w", err)
	}

	if t.MilestoneID != nil {
		if _, err := s.milestones.Recalc(ctx, t.WorkspaceID, *t.MilestoneID); err != nil {
			return err
		}
	}
	return nil
}

func (s *taskService) GetByID(ctx context.Context, workspaceID, taskID uuid.UUID) (*model.Task, error) {
	if taskID == uuid.Nil {
		return nil, errors.New("task id is empty")
	}
	return s.r.Get(ctx, workspaceID, taskID)
}

func (s *taskService) ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID, includeDeleted bool) ([]*model.Task, error) {
	return s.r.ListByProject(ctx, workspaceID, projectID, includeDeleted)
}

// SoftDelete flags the task out of default views. The row stays, and no
// milestone recalculation fires on deletion.
func (s *taskService) SoftDelete(ctx context.Context, workspaceID, taskID uuid.UUID) error {
	return s.r.SetDeleted(ctx, workspaceID, taskID, true)
}

func (s *taskService) Restore(ctx context.Context, workspaceID, taskID uuid.UUID) error {
	return s.r.SetDeleted(ctx, workspaceID, taskID, false)
}

// HardDelete removes the task with its folder subtree and contained files.
func (s *taskService) HardDelete(ctx context.Context, workspaceID, taskID uuid.UUID) error {
	return s.cascades.DeleteTaskCascade(ctx, workspaceID, taskID)
}
