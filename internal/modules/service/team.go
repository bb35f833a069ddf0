package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
)

type TeamService interface {
	CreateMember(ctx context.Context, m *model.Member) error
	ListMembers(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.Member, error)
	DeleteMember(ctx context.Context, workspaceID, memberID uuid.UUID) error

	CreateMarketingAsset(ctx context.Context, a *model.MarketingAsset) error
	ListMarketingAssets(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.MarketingAsset, error)
	DeleteMarketingAsset(ctx context.Context, workspaceID, assetID uuid.UUID) error

	CreateAssignment(ctx context.Context, a *model.FreelancerAssignment) error
	ListAssignments(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.FreelancerAssignment, error)
	DeleteAssignment(ctx context.Context, workspaceID, assignmentID uuid.UUID) error

	ListActivity(ctx context.Context, workspaceID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int) ([]*model.ActivityLog, error)
}

type teamService struct {
	r        repo.TeamRepo
	activity repo.ActivityRepo
}

func NewTeamService(r repo.TeamRepo, activity repo.ActivityRepo) TeamService {
	return &teamService{r: r, activity: activity}
}

func (s *teamService) CreateMember(ctx context.Context, m *model.Member) error {
	return s.r.CreateMember(ctx, m)
}

func (s *teamService) ListMembers(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.Member, error) {
	return s.r.ListMembers(ctx, workspaceID, projectID)
}

func (s *teamService) DeleteMember(ctx context.Context, workspaceID, memberID uuid.UUID) error {
	return s.r.DeleteMember(ctx, workspaceID, memberID)
}

func (s *teamService) CreateMarketingAsset(ctx context.Context, a *model.MarketingAsset) error {
	return s.r.CreateMarketingAsset(ctx, a)
}

func (s *teamService) ListMarketingAssets(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.MarketingAsset, error) {
	return s.r.ListMarketingAssets(ctx, workspaceID, projectID)
}

func (s *teamService) DeleteMarketingAsset(ctx context.Context, workspaceID, assetID uuid.UUID) error {
	return s.r.DeleteMarketingAsset(ctx, workspaceID, assetID)
}

func (s *teamService) CreateAssignment(ctx context.Context, a *model.FreelancerAssignment) error {
	return s.r.CreateAssignment(ctx, a)
}

func (s *teamService) ListAssignments(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.FreelancerAssignment, error) {
	return s.r.ListAssignments(ctx, workspaceID, projectID)
}

func (s *teamService) DeleteAssignment(ctx context.Context, workspaceID, assignmentID uuid.UUID) error {
	return s.r.DeleteAssignment(ctx, workspaceID, assignmentID)
}

func (s *teamService) ListActivity(ctx context.Context, workspaceID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int) ([]*model.ActivityLog, error) {
	return s.activity.ListWithCursor(ctx, workspaceID, afterCreatedAt, afterID, limit)
}
