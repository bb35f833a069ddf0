package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
	"go.uber.org/zap"
)

type CRMService interface {
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

type crmService struct {
	r         repo.CRMRepo
	provision ProvisionService
	log       *zap.Logger
}

func NewCRMService(r repo.CRMRepo, provision ProvisionService, log *zap.Logger) CRMService {
	return &crmService{r: r, provision: provision, log: log}
}

func (s *crmService) CreateSocialLink(ctx context.Context, l *model.SocialLink) error {
	return s.r.CreateSocialLink(ctx, l)
}

func (s *crmService) ListSocialLinks(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.SocialLink, error) {
	return s.r.ListSocialLinks(ctx, workspaceID, clientID)
}

func (s *crmService) DeleteSocialLink(ctx context.Context, workspaceID, linkID uuid.UUID) error {
	return s.r.DeleteSocialLink(ctx, workspaceID, linkID)
}

func (s *crmService) CreateNote(ctx context.Context, n *model.Note) error {
	return s.r.CreateNote(ctx, n)
}

func (s *crmService) UpdateNote(ctx context.Context, n *model.Note) error {
	return s.r.UpdateNote(ctx, n)
}

func (s *crmService) ListNotes(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Note, error) {
	return s.r.ListNotes(ctx, workspaceID, clientID)
}

func (s *crmService) DeleteNote(ctx context.Context, workspaceID, noteID uuid.UUID) error {
	return s.r.DeleteNote(ctx, workspaceID, noteID)
}

// CreateMeeting persists the meeting and provisions its folder under the
// client's meetings subfolder. Provisioning failure never blocks creation.
func (s *crmService) CreateMeeting(ctx context.Context, m *model.Meeting) error {
	if err := s.r.CreateMeeting(ctx, m); err != nil {
		return err
	}

	if err := s.provision.ProvisionMeetingFolder(ctx, m.WorkspaceID, m.ID, m.Title, m.ClientID); err != nil {
		s.log.Sugar().Warnw("meeting folder provisioning failed", "meeting_id", m.ID, "err", err)
	}
	return nil
}

func (s *crmService) UpdateMeeting(ctx context.Context, m *model.Meeting) error {
	return s.r.UpdateMeeting(ctx, m)
}

func (s *crmService) ListMeetings(ctx context.Context, workspaceID, clientID uuid.UUID) ([]*model.Meeting, error) {
	return s.r.ListMeetings(ctx, workspaceID, clientID)
}

func (s *crmService) DeleteMeeting(ctx context.Context, workspaceID, meetingID uuid.UUID) error {
	return s.r.DeleteMeeting(ctx, workspaceID, meetingID)
}
