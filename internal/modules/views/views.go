// Package views derives display collections from an explicit snapshot of
// entity slices. Nothing here reads from storage or holds state: callers
// load a Snapshot, pass it in, and get filtered results back. Recompute on
// demand instead of relying on ambient shared collections.
package views

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
)

// Snapshot is one consistent read of a workspace's collections.
type Snapshot struct {
	Clients    []model.Client    `json:"clients"`
	Projects   []model.Project   `json:"projects"`
	Tasks      []model.Task      `json:"tasks"`
	Milestones []model.Milestone `json:"milestones"`
	Folders    []model.Folder    `json:"folders"`
	Files      []model.File      `json:"files"`
}

// ActiveProjects filters out archived projects.
func ActiveProjects(s *Snapshot) []model.Project {
	out := make([]model.Project, 0, len(s.Projects))
	for _, p := range s.Projects {
		if !p.IsArchived {
			out = append(out, p)
		}
	}
	return out
}

// TasksForProject returns the project's tasks; soft-deleted tasks are
// excluded from this default view.
func TasksForProject(s *Snapshot, projectID uuid.UUID) []model.Task {
	var out []model.Task
	for _, t := range s.Tasks {
		if t.ProjectID == projectID && !t.IsDeleted {
			out = append(out, t)
		}
	}
	return out
}

// TasksForMilestone returns the non-soft-deleted tasks linked to a
// milestone.
func TasksForMilestone(s *Snapshot, milestoneID uuid.UUID) []model.Task {
	var out []model.Task
	for _, t := range s.Tasks {
		if t.MilestoneID != nil && *t.MilestoneID == milestoneID && !t.IsDeleted {
			out = append(out, t)
		}
	}
	return out
}

// FolderChildren returns the direct children of a folder.
func FolderChildren(s *Snapshot, parentID string) []model.Folder {
	var out []model.Folder
	for _, f := range s.Folders {
		if f.ParentID != nil && *f.ParentID == parentID {
			out = append(out, f)
		}
	}
	return out
}

// RootFolders returns the client root folders in the snapshot.
func RootFolders(s *Snapshot) []model.Folder {
	var out []model.Folder
	for _, f := range s.Folders {
		if f.IsRoot {
			out = append(out, f)
		}
	}
	return out
}

// FilesInFolder returns the files sitting directly in a folder.
func FilesInFolder(s *Snapshot, folderID string) []model.File {
	var out []model.File
	for _, f := range s.Files {
		if f.FolderID != nil && *f.FolderID == folderID {
			out = append(out, f)
		}
	}
	return out
}

// ArchivedFiles returns the files currently carrying the archive flag.
func ArchivedFiles(s *Snapshot) []model.File {
	var out []model.File
	for _, f := range s.Files {
		if f.IsArchived {
			out = append(out, f)
		}
	}
	return out
}

// ClientOverview aggregates per-client counts for the dashboard.
type ClientOverview struct {
	Client       model.Client `json:"client"`
	ProjectCount int          `json:"project_count"`
	OpenTasks    int          `json:"open_tasks"`
	FileCount    int          `json:"file_count"`
}

// Overview rolls the snapshot up into one row per client, sorted by client
// name.
func Overview(s *Snapshot) []ClientOverview {
	projectsByClient := make(map[uuid.UUID][]model.Project, len(s.Clients))
	for _, p := range s.Projects {
		projectsByClient[p.ClientID] = append(projectsByClient[p.ClientID], p)
	}

	openTasksByProject := make(map[uuid.UUID]int)
	for _, t := range s.Tasks {
		if !t.IsDeleted && t.Status != model.TaskStatusDone {
			openTasksByProject[t.ProjectID]++
		}
	}

	filesByClient := make(map[uuid.UUID]int)
	for _, f := range s.Files {
		filesByClient[f.ClientID]++
	}

	out := make([]ClientOverview, 0, len(s.Clients))
	for _, c := range s.Clients {
		row := ClientOverview{Client: c, FileCount: filesByClient[c.ID]}
		for _, p := range projectsByClient[c.ID] {
			if !p.IsArchived {
				row.ProjectCount++
			}
			row.OpenTasks += openTasksByProject[p.ID]
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Client.Name) < strings.ToLower(out[j].Client.Name)
	})
	return out
}
