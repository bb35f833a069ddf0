package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	mq "github.com/iris-hq/iris-os/internal/infra/queue"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
	"github.com/iris-hq/iris-os/internal/pkg/folderid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const archivedNamePrefix = "[Archived] "

// ClientDeleteResult reports phase one of a client deletion. Asset deletion
// is a separate call with its own result; the two never share an outcome.
type ClientDeleteResult struct {
	Counts repo.ClientCascadeCounts `json:"counts"`
}

// AssetDeleteResult reports the optional second phase.
type AssetDeleteResult struct {
	Counts repo.AssetCascadeCounts `json:"counts"`
}

// CascadeService guarantees referential cleanliness when clients or
// projects are destroyed, and archive-state consistency on project
// archival. Each operation records an audit entry and publishes a
// best-effort audit event.
type CascadeService interface {
	DeleteProject(ctx context.Context, workspaceID, projectID uuid.UUID, actor string) (repo.ProjectCascadeCounts, error)
	DeleteClient(ctx context.Context, workspaceID, clientID uuid.UUID, actor string, assetsRequested bool) (*ClientDeleteResult, error)
	DeleteClientAssets(ctx context.Context, workspaceID, clientID uuid.UUID, actor string) (*AssetDeleteResult, error)
	ArchiveProject(ctx context.Context, workspaceID, projectID uuid.UUID, actor string) error
	UnarchiveProject(ctx context.Context, workspaceID, projectID uuid.UUID, actor string) error
}

type cascadeService struct {
	cascades  repo.CascadeRepo
	projects  repo.ProjectRepo
	folders   repo.FolderRepo
	activity  repo.ActivityRepo
	provision ProvisionService
	log       *zap.Logger
	mq        *amqp.Connection
	queue     string
}

func NewCascadeService(
	cascades repo.CascadeRepo,
	projects repo.ProjectRepo,
	folders repo.FolderRepo,
	activity repo.ActivityRepo,
	provision ProvisionService,
	log *zap.Logger,
	mqConn *amqp.Connection,
	auditQueue string,
) CascadeService {
	return &cascadeService{
		cascades:  cascades,
		projects:  projects,
		folders:   folders,
		activity:  activity,
		provision: provision,
		log:       log,
		mq:        mqConn,
		queue:     auditQueue,
	}
}

// publishAudit pushes the audit event to the broker. Best-effort: broker
// trouble is logged, never surfaced to the caller.
func (s *cascadeService) publishAudit(ctx context.Context, action string, payload any) {
	if s.mq == nil {
		return
	}
	p, err := mq.NewPublisher(s.mq, s.queue, s.log)
	if err != nil {
		s.log.Sugar().Warnw("audit publisher unavailable", "action", action, "err", err)
		return
	}
	defer p.Close()

	if err := p.PublishJSON(ctx, map[string]any{
		"action":  action,
		"at":      time.Now().UTC(),
		"payload": payload,
	}); err != nil {
		s.log.Sugar().Warnw("audit publish failed", "action", action, "err", err)
	}
}

func (s *cascadeService) recordActivity(ctx context.Context, entry *model.ActivityLog) {
	if err := s.activity.Create(ctx, entry); err != nil {
		s.log.Sugar().Warnw("activity record failed", "action", entry.Action, "err", err)
	}
}

func (s *cascadeService) DeleteProject(ctx context.Context, workspaceID, projectID uuid.UUID, actor string) (repo.ProjectCascadeCounts, error) {
	counts, err := s.cascades.DeleteProjectCascade(ctx, workspaceID, projectID)
	if err != nil {
		return repo.ProjectCascadeCounts{}, fmt.Errorf("delete project cascade: %w", err)
	}

	s.recordActivity(ctx, &model.ActivityLog{
		WorkspaceID: workspaceID,
		Action:      model.ActivityProjectDeleted,
		Actor:       actor,
		Detail: map[string]interface{}{
			"project_id":    projectID.String(),
			"deleted_tasks": counts.Tasks,
			"deleted_files": counts.Files,
		},
	})
	s.publishAudit(ctx, model.ActivityProjectDeleted, counts)

	return counts, nil
}

// DeleteClient runs phase one. assetsRequested records the operator's
// choice in the audit entry; the asset deletion itself is a separate call.
func (s *cascadeService) DeleteClient(ctx context.Context, workspaceID, clientID uuid.UUID, actor string, assetsRequested bool) (*ClientDeleteResult, error) {
	counts, err := s.cascades.DeleteClientCore(ctx, workspaceID, clientID)
	if err != nil {
		return nil, fmt.Errorf("delete client: %w", err)
	}

	assets := model.ActivityClientAssetsRetained
	if assetsRequested {
		assets = model.ActivityClientAssetsDeleted
	}
	s.recordActivity(ctx, &model.ActivityLog{
		WorkspaceID: workspaceID,
		Action:      model.ActivityClientDeleted,
		Actor:       actor,
		Detail: map[string]interface{}{
			"client_id":        clientID.String(),
			"deleted_projects": counts.Projects,
			"deleted_tasks":    counts.Tasks,
			"assets":           assets,
		},
	})
	s.publishAudit(ctx, model.ActivityClientDeleted, counts)

	return &ClientDeleteResult{Counts: counts}, nil
}

func (s *cascadeService) DeleteClientAssets(ctx context.Context, workspaceID, clientID uuid.UUID, actor string) (*AssetDeleteResult, error) {
	counts, err := s.cascades.DeleteClientAssets(ctx, workspaceID, clientID)
	if err != nil {
		return nil, fmt.Errorf("delete client assets: %w", err)
	}

	s.recordActivity(ctx, &model.ActivityLog{
		WorkspaceID: workspaceID,
		Action:      model.ActivityClientAssetsDeleted,
		Actor:       actor,
		Detail: map[string]interface{}{
			"client_id":       clientID.String(),
			"deleted_folders": counts.Folders,
			"deleted_files":   counts.Files,
		},
	})
	s.publishAudit(ctx, model.ActivityClientAssetsDeleted, counts)

	return &AssetDeleteResult{Counts: counts}, nil
}

func (s *cascadeService) ArchiveProject(ctx context.Context, workspaceID, projectID uuid.UUID, actor string) error {
	p, err := s.projects.Get(ctx, workspaceID, projectID)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	if _, err := s.provision.EnsureClientArchiveRoot(ctx, workspaceID, p.ClientID); err != nil {
		return err
	}
	archiveFolderID, err := s.provision.ProvisionProjectArchiveFolder(ctx, workspaceID, projectID, p.Name, p.ClientID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	moved, err := s.cascades.ArchiveProjectFiles(ctx, workspaceID, projectID, archiveFolderID, now, actor)
	if err != nil {
		return fmt.Errorf("archive project files: %w", err)
	}

	if err := s.projects.SetArchived(ctx, workspaceID, projectID, true, &now, actor, model.ProjectStatusArchived); err != nil {
		return fmt.Errorf("mark project archived: %w", err)
	}

	s.recordActivity(ctx, &model.ActivityLog{
		WorkspaceID: workspaceID,
		ClientID:    &p.ClientID,
		Action:      model.ActivityProjectArchived,
		Actor:       actor,
		Detail: map[string]interface{}{
			"project_id":  projectID.String(),
			"moved_files": moved,
		},
	})
	s.publishAudit(ctx, model.ActivityProjectArchived, map[string]any{"project_id": projectID, "moved_files": moved})

	return nil
}

func (s *cascadeService) UnarchiveProject(ctx context.Context, workspaceID, projectID uuid.UUID, actor string) error {
	p, err := s.projects.Get(ctx, workspaceID, projectID)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	if err := s.projects.SetArchived(ctx, workspaceID, projectID, false, nil, "", model.ProjectStatusActive); err != nil {
		return fmt.Errorf("mark project active: %w", err)
	}

	// A missing archive folder is tolerated: skip the rename, still unflag
	// the files.
	archiveFolderID := folderid.ProjectArchive(projectID)
	folder, err := s.folders.Get(ctx, workspaceID, archiveFolderID)
	switch {
	case err == nil:
		if strings.HasPrefix(folder.Name, archivedNamePrefix) {
			name := strings.TrimPrefix(folder.Name, archivedNamePrefix)
			if err := s.folders.Rename(ctx, workspaceID, archiveFolderID, name); err != nil {
				return fmt.Errorf("rename archive folder: %w", err)
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no-op
	default:
		return fmt.Errorf("load archive folder: %w", err)
	}

	unflagged, err := s.cascades.UnarchiveProjectFiles(ctx, workspaceID, projectID)
	if err != nil {
		return fmt.Errorf("unarchive project files: %w", err)
	}

	s.recordActivity(ctx, &model.ActivityLog{
		WorkspaceID: workspaceID,
		ClientID:    &p.ClientID,
		Action:      model.ActivityProjectUnarchived,
		Actor:       actor,
		Detail: map[string]interface{}{
			"project_id":      projectID.String(),
			"unflagged_files": unflagged,
		},
	})
	s.publishAudit(ctx, model.ActivityProjectUnarchived, map[string]any{"project_id": projectID, "unflagged_files": unflagged})

	return nil
}
