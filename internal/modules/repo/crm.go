package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"gorm.io/gorm"
)

// CRMRepo groups the client-scoped relationship collections: social links,
// notes and meetings.
type CRMRepo interface {
	CreateSocialLink(ctx context.Context, l *model.SocialLink) error
	ListSocialLinks(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.SocialLink, error)
	DeleteSocialLink(ctx context.Context, workspaceID, linkID uuid.UUID) error

	CreateNote(ctx context.Context, n *model.Note) error
	UpdateNote(ctx context.Context, n *model.Note) error
	ListNotes(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Note, error)
	DeleteNote(ctx context.Context, workspaceID, noteID uuid.UUID) error

	CreateMeeting(ctx context.Context, m *model.Meeting) error
	UpdateMeeting(ctx context.Context, m *model.Meeting) error
	ListMeetings(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Meeting, error)
	DeleteMeeting(ctx context.Context, workspaceID, meetingID uuid.UUID) error
}

type crmRepo struct{ db *gorm.DB }

func NewCRMRepo(db *gorm.DB) CRMRepo {
	return &crmRepo{db: db}
}

func (r *crmRepo) CreateSocialLink(ctx context.Context, l *model.SocialLink) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *crmRepo) ListSocialLinks(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.SocialLink, error) {
	var links []*model.SocialLink
	return links, r.db.WithContext(ctx).
		Where("workspace_id = ? AND client_id = ?", workspaceID, clientID).
		Order("platform ASC").Find(&links).Error
}

func (r *crmRepo) DeleteSocialLink(ctx context.Context, workspaceID, linkID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&model.SocialLink{ID: linkID}).Error
}

func (r *crmRepo) CreateNote(ctx context.Context, n *model.Note) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *crmRepo) UpdateNote(ctx context.Context, n *model.Note) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", n.WorkspaceID).
		Where(&model.Note{ID: n.ID}).Updates(n).Error
}

func (r *crmRepo) ListNotes(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Note, error) {
	var notes []*model.Note
	return notes, r.db.WithContext(ctx).
		Where("workspace_id = ? AND client_id = ?", workspaceID, clientID).
		Order("created_at DESC").Find(&notes).Error
}

func (r *crmRepo) DeleteNote(ctx context.Context, workspaceID, noteID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&model.Note{ID: noteID}).Error
}

func (r *crmRepo) CreateMeeting(ctx context.Context, m *model.Meeting) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *crmRepo) UpdateMeeting(ctx context.Context, m *model.Meeting) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", m.WorkspaceID).
		Where(&model.Meeting{ID: m.ID}).Updates(m).Error
}

func (r *crmRepo) ListMeetings(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Meeting, error) {
	var meetings []*model.Meeting
	return meetings, r.db.WithContext(ctx).
		Where("workspace_id = ? AND client_id = ?", workspaceID, clientID).
		Order("scheduled_at ASC").Find(&meetings).Error
}

func (r *crmRepo) DeleteMeeting(ctx context.Context, workspaceID, meetingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&model.Meeting{ID: meetingID}).Error
}
