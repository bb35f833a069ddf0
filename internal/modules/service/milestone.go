package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
)

// MilestoneService owns milestone CRUD and the derived progress field.
// ProgressPercent is only ever written by Recalc; it is always reproducible
// from the tasks referencing the milestone.
type MilestoneService interface {
	Create(ctx context.Context, m *model.Milestone) error
	Update(ctx context.Context, m *model.Milestone) error
	GetByID(ctx context.Context, workspaceID, milestoneID uuid.UUID) (*model.Milestone, error)
	ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.Milestone, error)
	Recalc(ctx context.Context, workspaceID, milestoneID uuid.UUID) (int, error)
}

type milestoneService struct {
	r     repo.MilestoneRepo
	tasks repo.TaskRepo
}

func NewMilestoneService(r repo.MilestoneRepo, tasks repo.TaskRepo) MilestoneService {
	return &milestoneService{r: r, tasks: tasks}
}

func (s *milestoneService) Create(ctx context.Context, m *model.Milestone) error {
	// progress starts derived, not caller-supplied
	m.ProgressPercent = 0
	return s.r.Create(ctx, m)
}

func (s *milestoneService) Update(ctx context.Context, m *model.Milestone) error {
	if m.ID == uuid.Nil {
		return errors.New("milestone id is empty")
	}
	// Updates never touch the derived field; zero it so gorm's
	// non-zero-field update skips it.
	m.ProgressPercent = 0
	return s.r.Update(ctx, m)
}

func (s *milestoneService) GetByID(ctx context.Context, workspaceID, milestoneID uuid.UUID) (*model.Milestone, error) {
	if milestoneID == uuid.Nil {
		return nil, errors.New("milestone id is empty")
	}
	return s.r.Get(ctx, workspaceID, milestoneID)
}

func (s *milestoneService) ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.Milestone, error) {
	return s.r.ListByProject(ctx, workspaceID, projectID)
}

// Recalc recomputes progress as round(100 * completed / total), 0 when no
// tasks link to the milestone. Idempotent: the same task set always yields
// the same percentage.
func (s *milestoneService) Recalc(ctx context.Context, workspaceID, milestoneID uuid.UUID) (int, error) {
	total, completed, err := s.tasks.CountByMilestone(ctx, workspaceID, milestoneID)
	if err != nil {
		return 0, fmt.Errorf("count milestone tasks: %w", err)
	}

	percent := 0
	if total > 0 {
		percent = int(math.Round(100 * float64(completed) / float64(total)))
	}

	if err := s.r.SetProgress(ctx, workspaceID, milestoneID, percent); err != nil {
		return 0, fmt.Errorf("write milestone progress: %w", err)
	}
	return percent, nil
}
