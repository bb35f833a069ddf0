package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"gorm.io/gorm"
)

// ProjectCascadeCounts summarizes what one project deletion removed.
type ProjectCascadeCounts struct {
	Tasks                 int64 `json:"tasks"`
	Folders               int64 `json:"folders"`
	Files                 int64 `json:"files"`
	Milestones            int64 `json:"milestones"`
	Members               int64 `json:"members"`
	ActivityLogs          int64 `json:"activity_logs"`
	MarketingAssets       int64 `json:"marketing_assets"`
	FreelancerAssignments int64 `json:"freelancer_assignments"`
}

// ClientCascadeCounts summarizes phase one of a client deletion: entity data
// only, never folders or files.
type ClientCascadeCounts struct {
	Projects    int64 `json:"projects"`
	Tasks       int64 `json:"tasks"`
	Invoices    int64 `json:"invoices"`
	Quotations  int64 `json:"quotations"`
	Approvals   int64 `json:"approvals"`
	Payments    int64 `json:"payments"`
	SocialLinks int64 `json:"social_links"`
	Notes       int64 `json:"notes"`
	Meetings    int64 `json:"meetings"`
}

// AssetCascadeCounts summarizes the optional second phase: folders and files
// tied to the client.
type AssetCascadeCounts struct {
	Folders int64 `json:"folders"`
	Files   int64 `json:"files"`
}

// CascadeRepo owns the multi-collection deletions. Each method is one
// transaction: either every listed deletion applies or none does. There is
// deliberately no cross-session coordination; a row created concurrently
// with a cascade can be missed by the collecting query.
type CascadeRepo interface {
	DeleteProjectCascade(ctx context.Context, workspaceID, projectID uuid.UUID) (ProjectCascadeCounts, error)
	DeleteClientCore(ctx context.Context, workspaceID, clientID uuid.UUID) (ClientCascadeCounts, error)
	DeleteClientAssets(ctx context.Context, workspaceID, clientID uuid.UUID) (AssetCascadeCounts, error)
	DeleteTaskCascade(ctx context.Context, workspaceID, taskID uuid.UUID) error
	ArchiveProjectFiles(ctx context.Context, workspaceID, projectID uuid.UUID, archiveFolderID string, at time.Time, actor string) (int64, error)
	UnarchiveProjectFiles(ctx context.Context, workspaceID, projectID uuid.UUID) (int64, error)
}

type cascadeRepo struct{ db *gorm.DB }

func NewCascadeRepo(db *gorm.DB) CascadeRepo {
	return &cascadeRepo{db: db}
}

func deleteScoped(tx *gorm.DB, out *int64, where string, args []any, m any) error {
	res := tx.Where(where, args...).Delete(m)
	if res.Error != nil {
		return res.Error
	}
	if out != nil {
		*out = res.RowsAffected
	}
	return nil
}

// DeleteProjectCascade removes the project and every project-scoped record
// in one transaction. On any failure the whole cascade rolls back and the
// project is left untouched.
func (r *cascadeRepo) DeleteProjectCascade(ctx context.Context, workspaceID, projectID uuid.UUID) (ProjectCascadeCounts, error) {
	var counts ProjectCascadeCounts

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := tx.Where("workspace_id = ? AND id = ?", workspaceID, projectID).First(&project).Error; err != nil {
			return err
		}

		where := "workspace_id = ? AND project_id = ?"
		args := []any{workspaceID, projectID}

		steps := []struct {
			out *int64
			m   any
		}{
			{&counts.Tasks, &model.Task{}},
			{&counts.Files, &model.File{}},
			{&counts.Folders, &model.Folder{}},
			{&counts.Milestones, &model.Milestone{}},
			{&counts.Members, &model.Member{}},
			{&counts.ActivityLogs, &model.ActivityLog{}},
			{&counts.MarketingAssets, &model.MarketingAsset{}},
			{&counts.FreelancerAssignments, &model.FreelancerAssignment{}},
		}
		for _, s := range steps {
			if err := deleteScoped(tx, s.out, where, args, s.m); err != nil {
				return fmt.Errorf("delete project dependents: %w", err)
			}
		}

		if err := tx.Delete(&project).Error; err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return nil
	})
	if err != nil {
		return ProjectCascadeCounts{}, err
	}
	return counts, nil
}

// DeleteClientCore is phase one of client deletion: the client row, its
// projects with their project-scoped children (second-level fan-out through
// the collected project IDs), and the client-scoped collections. Folders and
// files are explicitly not touched here.
func (r *cascadeRepo) DeleteClientCore(ctx context.Context, workspaceID, clientID uuid.UUID) (ClientCascadeCounts, error) {
	var counts ClientCascadeCounts

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var client model.Client
		if err := tx.Where("workspace_id = ? AND id = ?", workspaceID, clientID).First(&client).Error; err != nil {
			return err
		}

		var projectIDs []uuid.UUID
		if err := tx.Model(&model.Project{}).
			Where("workspace_id = ? AND client_id = ?", workspaceID, clientID).
			Pluck("id", &projectIDs).Error; err != nil {
			return fmt.Errorf("collect project ids: %w", err)
		}

		if len(projectIDs) > 0 {
			where := "workspace_id = ? AND project_id IN ?"
			args := []any{workspaceID, projectIDs}
			for _, m := range []any{
				&model.Milestone{}, &model.Member{}, &model.ActivityLog{},
				&model.MarketingAsset{}, &model.FreelancerAssignment{},
			} {
				if err := deleteScoped(tx, nil, where, args, m); err != nil {
					return fmt.Errorf("delete project dependents: %w", err)
				}
			}
			if err := deleteScoped(tx, &counts.Tasks, where, args, &model.Task{}); err != nil {
				return fmt.Errorf("delete tasks: %w", err)
			}
		}

		where := "workspace_id = ? AND client_id = ?"
		args := []any{workspaceID, clientID}

		steps := []struct {
			out *int64
			m   any
		}{
			{&counts.Projects, &model.Project{}},
			{&counts.Invoices, &model.Invoice{}},
			{&counts.Quotations, &model.Quotation{}},
			{&counts.Approvals, &model.ClientApproval{}},
			{&counts.Payments, &model.Payment{}},
			{&counts.SocialLinks, &model.SocialLink{}},
			{&counts.Notes, &model.Note{}},
			{&counts.Meetings, &model.Meeting{}},
		}
		for _, s := range steps {
			if err := deleteScoped(tx, s.out, where, args, s.m); err != nil {
				return fmt.Errorf("delete client dependents: %w", err)
			}
		}

		if err := tx.Delete(&client).Error; err != nil {
			return fmt.Errorf("delete client: %w", err)
		}
		return nil
	})
	if err != nil {
		return ClientCascadeCounts{}, err
	}
	return counts, nil
}

// DeleteClientAssets is phase two: folders and files tied to the client, in
// a transaction of its own. Its failure is independent of phase one; a
// client whose entity data is gone but whose assets remain is an accepted
// terminal state.
func (r *cascadeRepo) DeleteClientAssets(ctx context.Context, workspaceID, clientID uuid.UUID) (AssetCascadeCounts, error) {
	var counts AssetCascadeCounts

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		where := "workspace_id = ? AND client_id = ?"
		args := []any{workspaceID, clientID}

		if err := deleteScoped(tx, &counts.Files, where, args, &model.File{}); err != nil {
			return fmt.Errorf("delete client files: %w", err)
		}
		if err := deleteScoped(tx, &counts.Folders, where, args, &model.Folder{}); err != nil {
			return fmt.Errorf("delete client folders: %w", err)
		}
		return nil
	})
	if err != nil {
		return AssetCascadeCounts{}, err
	}
	return counts, nil
}

// DeleteTaskCascade hard-deletes a task together with its folder subtree and
// the files inside it.
func (r *cascadeRepo) DeleteTaskCascade(ctx context.Context, workspaceID, taskID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task model.Task
		if err := tx.Where("workspace_id = ? AND id = ?", workspaceID, taskID).First(&task).Error; err != nil {
			return err
		}

		var folderIDs []string
		if err := tx.Model(&model.Folder{}).
			Where("workspace_id = ? AND task_id = ?", workspaceID, taskID).
			Pluck("id", &folderIDs).Error; err != nil {
			return fmt.Errorf("collect task folders: %w", err)
		}

		if len(folderIDs) > 0 {
			if err := deleteScoped(tx, nil, "workspace_id = ? AND folder_id IN ?", []any{workspaceID, folderIDs}, &model.File{}); err != nil {
				return fmt.Errorf("delete task files: %w", err)
			}
			if err := deleteScoped(tx, nil, "workspace_id = ? AND id IN ?", []any{workspaceID, folderIDs}, &model.Folder{}); err != nil {
				return fmt.Errorf("delete task folders: %w", err)
			}
		}

		return tx.Delete(&task).Error
	})
}

// ArchiveProjectFiles moves every file of the project into the archive
// folder and flags it, as a single batch.
func (r *cascadeRepo) ArchiveProjectFiles(ctx context.Context, workspaceID, projectID uuid.UUID, archiveFolderID string, at time.Time, actor string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.File{}).
		Where("workspace_id = ? AND project_id = ?", workspaceID, projectID).
		Updates(map[string]interface{}{
			"folder_id":   archiveFolderID,
			"is_archived": true,
			"archived_at": at,
			"archived_by": actor,
		})
	return res.RowsAffected, res.Error
}

// UnarchiveProjectFiles clears the archive flags on every file previously
// archived under the project, as a single batch. Files stay in whatever
// folder they are in; only the flags reset.
func (r *cascadeRepo) UnarchiveProjectFiles(ctx context.Context, workspaceID, projectID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.File{}).
		Where("workspace_id = ? AND project_id = ? AND is_archived = true", workspaceID, projectID).
		Updates(map[string]interface{}{
			"is_archived": false,
			"archived_at": nil,
			"archived_by": "",
		})
	return res.RowsAffected, res.Error
}
