package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"gorm.io/gorm"
)

// TeamRepo groups the project-scoped staffing and marketing collections.
type TeamRepo interface {
	CreateMember(ctx context.Context, m *model.Member) error
	ListMembers(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.Member, error)
	DeleteMember(ctx context.Context, workspaceID, memberID uuid.UUID) error

	CreateMarketingAsset(ctx context.Context, a *model.MarketingAsset) error
	ListMarketingAssets(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.MarketingAsset, error)
	DeleteMarketingAsset(ctx context.Context, workspaceID, assetID uuid.UUID) error

	CreateAssignment(ctx context.Context, a *model.FreelancerAssignment) error
	ListAssignments(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.FreelancerAssignment, error)
	DeleteAssignment(ctx context.Context, workspaceID, assignmentID uuid.UUID) error
}

type teamRepo struct{ db *gorm.DB }

func NewTeamRepo(db *gorm.DB) TeamRepo {
	return &teamRepo{db: db}
}

func (r *teamRepo) CreateMember(ctx context.Context, m *model.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *teamRepo) ListMembers(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.Member, error) {
	var members []*model.Member
	return members, r.db.WithContext(ctx).
		Where("workspace_id = ? AND project_id = ?", workspaceID, projectID).
		Order("name ASC").Find(&members).Error
}

func (r *teamRepo) DeleteMember(ctx context.Context, workspaceID, memberID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&model.Member{ID: memberID}).Error
}

func (r *teamRepo) CreateMarketingAsset(ctx context.Context, a *model.MarketingAsset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *teamRepo) ListMarketingAssets(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.MarketingAsset, error) {
	var assets []*model.MarketingAsset
	return assets, r.db.WithContext(ctx).
		Where("workspace_id = ? AND project_id = ?", workspaceID, projectID).
		Order("created_at DESC").Find(&assets).Error
}

func (r *teamRepo) DeleteMarketingAsset(ctx context.Context, workspaceID, assetID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&model.MarketingAsset{ID: assetID}).Error
}

func (r *teamRepo) CreateAssignment(ctx context.Context, a *model.FreelancerAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *teamRepo) ListAssignments(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.FreelancerAssignment, error) {
	var assignments []*model.FreelancerAssignment
	return assignments, r.db.WithContext(ctx).
		Where("workspace_id = ? AND project_id = ?", workspaceID, projectID).
		Order("created_at DESC").Find(&assignments).Error
}

func (r *teamRepo) DeleteAssignment(ctx context.Context, workspaceID, assignmentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&model.FreelancerAssignment{ID: assignmentID}).Error
}
