package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
	"github.com/iris-hq/iris-os/internal/pkg/folderid"
	"gorm.io/gorm"
)

// Fixed display names for the provisioned subtrees. IDs derive from the
// lower-cased form via folderid.
var clientSubfolderNames = map[string]string{
	"projects":     "Projects",
	"strategies":   "Strategies",
	"videos":       "Videos",
	"photos":       "Photos",
	"documents":    "Documents",
	"deliverables": "Deliverables",
	"meetings":     "Meetings",
	"archive":      "Archive",
}

var projectSubfolderNames = map[string]string{
	"tasks":        "Tasks",
	"videos":       "Videos",
	"photos":       "Photos",
	"documents":    "Documents",
	"deliverables": "Deliverables",
}

// ProvisionService synthesizes the standard folder subtrees so uploads have
// a deterministic destination. Every method is an idempotent upsert keyed by
// the composite folder IDs: re-running provisioning overwrites identical
// records, never duplicates them.
type ProvisionService interface {
	ProvisionClientFolders(ctx context.Context, workspaceID, clientID uuid.UUID, clientName string) error
	ProvisionProjectFolder(ctx context.Context, workspaceID, projectID uuid.UUID, projectName string, clientID uuid.UUID, projectCode string) error
	ProvisionTaskFolder(ctx context.Context, workspaceID, taskID uuid.UUID, taskTitle string, projectID, clientID uuid.UUID) error
	ProvisionMeetingFolder(ctx context.Context, workspaceID, meetingID uuid.UUID, title string, clientID uuid.UUID) error
	EnsureClientArchiveRoot(ctx context.Context, workspaceID, clientID uuid.UUID) (string, error)
	ProvisionProjectArchiveFolder(ctx context.Context, workspaceID, projectID uuid.UUID, projectName string, clientID uuid.UUID) (string, error)
	ResolveDestination(ctx context.Context, workspaceID uuid.UUID, category string, taskID, projectID, clientID *uuid.UUID) (*model.Folder, error)
}

type provisionService struct {
	folders repo.FolderRepo
}

func NewProvisionService(folders repo.FolderRepo) ProvisionService {
	return &provisionService{folders: folders}
}

func (s *provisionService) ProvisionClientFolders(ctx context.Context, workspaceID, clientID uuid.UUID, clientName string) error {
	rootID := folderid.ClientRoot(clientID)

	records := make([]model.Folder, 0, 1+len(folderid.ClientSubfolders))
	records = append(records, model.Folder{
		ID:          rootID,
		WorkspaceID: workspaceID,
		ClientID:    clientID,
		Name:        clientName,
		IsRoot:      true,
	})
	for _, sub := range folderid.ClientSubfolders {
		parent := rootID
		records = append(records, model.Folder{
			ID:            folderid.ClientSub(clientID, sub),
			WorkspaceID:   workspaceID,
			ClientID:      clientID,
			Name:          clientSubfolderNames[sub],
			ParentID:      &parent,
			IsArchiveRoot: sub == "archive",
		})
	}

	if err := s.folders.Upsert(ctx, records); err != nil {
		return fmt.Errorf("provision client folders: %w", err)
	}
	return nil
}

func (s *provisionService) ProvisionProjectFolder(ctx context.Context, workspaceID, projectID uuid.UUID, projectName string, clientID uuid.UUID, projectCode string) error {
	displayName := projectName
	if projectCode != "" {
		displayName = projectCode + " - " + projectName
	}

	projectFolderID := folderid.Project(projectID)
	parent := folderid.ClientSub(clientID, "projects")

	records := make([]model.Folder, 0, 1+len(folderid.ProjectSubfolders))
	records = append(records, model.Folder{
		ID:          projectFolderID,
		WorkspaceID: workspaceID,
		ClientID:    clientID,
		ProjectID:   &projectID,
		Name:        displayName,
		ParentID:    &parent,
	})
	for _, sub := range folderid.ProjectSubfolders {
		parentID := projectFolderID
		records = append(records, model.Folder{
			ID:          folderid.ProjectSub(projectID, sub),
			WorkspaceID: workspaceID,
			ClientID:    clientID,
			ProjectID:   &projectID,
			Name:        projectSubfolderNames[sub],
			ParentID:    &parentID,
		})
	}

	if err := s.folders.Upsert(ctx, records); err != nil {
		return fmt.Errorf("provision project folder: %w", err)
	}
	return nil
}

func (s *provisionService) ProvisionTaskFolder(ctx context.Context, workspaceID, taskID uuid.UUID, taskTitle string, projectID, clientID uuid.UUID) error {
	parent := folderid.ProjectSub(projectID, "tasks")
	name := folderid.SanitizeName(taskTitle)
	if name == "" {
		name = folderid.Task(taskID)
	}

	err := s.folders.Upsert(ctx, []model.Folder{{
		ID:           folderid.Task(taskID),
		WorkspaceID:  workspaceID,
		ClientID:     clientID,
		ProjectID:    &projectID,
		TaskID:       &taskID,
		Name:         name,
		ParentID:     &parent,
		IsTaskFolder: true,
	}})
	if err != nil {
		return fmt.Errorf("provision task folder: %w", err)
	}
	return nil
}

func (s *provisionService) ProvisionMeetingFolder(ctx context.Context, workspaceID, meetingID uuid.UUID, title string, clientID uuid.UUID) error {
	parent := folderid.ClientSub(clientID, "meetings")
	name := folderid.SanitizeName(title)
	if name == "" {
		name = folderid.Meeting(meetingID)
	}

	err := s.folders.Upsert(ctx, []model.Folder{{
		ID:              folderid.Meeting(meetingID),
		WorkspaceID:     workspaceID,
		ClientID:        clientID,
		MeetingID:       &meetingID,
		Name:            name,
		ParentID:        &parent,
		IsMeetingFolder: true,
	}})
	if err != nil {
		return fmt.Errorf("provision meeting folder: %w", err)
	}
	return nil
}

// EnsureClientArchiveRoot creates the client's archive root if it is
// missing and returns its ID.
func (s *provisionService) EnsureClientArchiveRoot(ctx context.Context, workspaceID, clientID uuid.UUID) (string, error) {
	id := folderid.ClientSub(clientID, "archive")
	parent := folderid.ClientRoot(clientID)

	err := s.folders.Upsert(ctx, []model.Folder{{
		ID:            id,
		WorkspaceID:   workspaceID,
		ClientID:      clientID,
		Name:          clientSubfolderNames["archive"],
		ParentID:      &parent,
		IsArchiveRoot: true,
	}})
	if err != nil {
		return "", fmt.Errorf("ensure archive root: %w", err)
	}
	return id, nil
}

func (s *provisionService) ProvisionProjectArchiveFolder(ctx context.Context, workspaceID, projectID uuid.UUID, projectName string, clientID uuid.UUID) (string, error) {
	id := folderid.ProjectArchive(projectID)
	parent := folderid.ClientSub(clientID, "archive")

	err := s.folders.Upsert(ctx, []model.Folder{{
		ID:               id,
		WorkspaceID:      workspaceID,
		ClientID:         clientID,
		ProjectID:        &projectID,
		Name:             "[Archived] " + projectName,
		ParentID:         &parent,
		IsProjectArchive: true,
	}})
	if err != nil {
		return "", fmt.Errorf("provision project archive folder: %w", err)
	}
	return id, nil
}

// ResolveDestination picks the folder an uploaded file lands in, in priority
// order: the task's folder, then the project's category subfolder, then the
// client's category subfolder. Returns nil when no context yields a folder.
func (s *provisionService) ResolveDestination(ctx context.Context, workspaceID uuid.UUID, category string, taskID, projectID, clientID *uuid.UUID) (*model.Folder, error) {
	if taskID != nil {
		f, err := s.folders.Get(ctx, workspaceID, folderid.Task(*taskID))
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resolve task folder: %w", err)
		}
	}

	if projectID != nil {
		if id := folderid.ProjectCategoryFolder(*projectID, category); id != "" {
			f, err := s.folders.Get(ctx, workspaceID, id)
			if err == nil {
				return f, nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("resolve project folder: %w", err)
			}
		}
	}

	if clientID != nil {
		if id := folderid.ClientCategoryFolder(*clientID, category); id != "" {
			f, err := s.folders.Get(ctx, workspaceID, id)
			if err == nil {
				return f, nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("resolve client folder: %w", err)
			}
		}
	}

	return nil, nil
}
