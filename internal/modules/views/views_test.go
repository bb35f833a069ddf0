package views

import (
	"testing"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/pkg/folderid"
	"github.com/stretchr/testify/assert"
)

func TestActiveProjects(t *testing.T) {
	active := model.Project{ID: uuid.New(), Name: "Rebrand"}
	archived := model.Project{ID: uuid.New(), Name: "Old site", IsArchived: true}
	s := &Snapshot{Projects: []model.Project{active, archived}}

	got := ActiveProjects(s)
	assert.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].ID)
}

func TestTasksForProject_ExcludesSoftDeleted(t *testing.T) {
	projectID := uuid.New()
	s := &Snapshot{Tasks: []model.Task{
		{ID: uuid.New(), ProjectID: projectID, Title: "Write brief"},
		{ID: uuid.New(), ProjectID: projectID, Title: "Scrapped idea", IsDeleted: true},
		{ID: uuid.New(), ProjectID: uuid.New(), Title: "Someone else's"},
	}}

	got := TasksForProject(s, projectID)
	assert.Len(t, got, 1)
	assert.Equal(t, "Write brief", got[0].Title)
}

func TestTasksForMilestone(t *testing.T) {
	milestoneID := uuid.New()
	other := uuid.New()
	s := &Snapshot{Tasks: []model.Task{
		{ID: uuid.New(), MilestoneID: &milestoneID, Title: "In scope"},
		{ID: uuid.New(), MilestoneID: &milestoneID, Title: "Deleted", IsDeleted: true},
		{ID: uuid.New(), MilestoneID: &other, Title: "Other milestone"},
		{ID: uuid.New(), Title: "Unlinked"},
	}}

	got := TasksForMilestone(s, milestoneID)
	assert.Len(t, got, 1)
	assert.Equal(t, "In scope", got[0].Title)
}

func TestFolderViews(t *testing.T) {
	clientID := uuid.New()
	rootID := folderid.ClientRoot(clientID)
	docsID := folderid.ClientSub(clientID, "documents")
	s := &Snapshot{
		Folders: []model.Folder{
			{ID: rootID, ClientID: clientID, Name: "Acme Corp", IsRoot: true},
			{ID: docsID, ClientID: clientID, Name: "Documents", ParentID: &rootID},
		},
		Files: []model.File{
			{ID: uuid.New(), ClientID: clientID, Name: "brief.pdf", FolderID: &docsID},
			{ID: uuid.New(), ClientID: clientID, Name: "unfiled.pdf"},
		},
	}

	roots := RootFolders(s)
	assert.Len(t, roots, 1)
	assert.Equal(t, rootID, roots[0].ID)

	children := FolderChildren(s, rootID)
	assert.Len(t, children, 1)
	assert.Equal(t, docsID, children[0].ID)

	files := FilesInFolder(s, docsID)
	assert.Len(t, files, 1)
	assert.Equal(t, "brief.pdf", files[0].Name)
}

func TestArchivedFiles(t *testing.T) {
	s := &Snapshot{Files: []model.File{
		{ID: uuid.New(), Name: "live.pdf"},
		{ID: uuid.New(), Name: "old.pdf", IsArchived: true},
	}}

	got := ArchivedFiles(s)
	assert.Len(t, got, 1)
	assert.Equal(t, "old.pdf", got[0].Name)
}

func TestOverview(t *testing.T) {
	zenith := model.Client{ID: uuid.New(), Name: "Zenith Media"}
	acme := model.Client{ID: uuid.New(), Name: "acme corp"}

	activeProject := model.Project{ID: uuid.New(), ClientID: zenith.ID}
	archivedProject := model.Project{ID: uuid.New(), ClientID: zenith.ID, IsArchived: true}

	s := &Snapshot{
		Clients:  []model.Client{zenith, acme},
		Projects: []model.Project{activeProject, archivedProject},
		Tasks: []model.Task{
			{ID: uuid.New(), ProjectID: activeProject.ID, Status: "todo"},
			{ID: uuid.New(), ProjectID: activeProject.ID, Status: model.TaskStatusDone},
			{ID: uuid.New(), ProjectID: activeProject.ID, Status: "in_progress", IsDeleted: true},
			{ID: uuid.New(), ProjectID: archivedProject.ID, Status: "todo"},
		},
		Files: []model.File{
			{ID: uuid.New(), ClientID: zenith.ID},
			{ID: uuid.New(), ClientID: zenith.ID},
		},
	}

	got := Overview(s)
	assert.Len(t, got, 2)

	// sorted case-insensitively by client name
	assert.Equal(t, acme.ID, got[0].Client.ID)
	assert.Equal(t, zenith.ID, got[1].Client.ID)

	assert.Equal(t, 0, got[0].ProjectCount)
	assert.Equal(t, 0, got[0].OpenTasks)
	assert.Equal(t, 0, got[0].FileCount)

	// archived projects are not counted, but their open tasks still are
	assert.Equal(t, 1, got[1].ProjectCount)
	assert.Equal(t, 2, got[1].OpenTasks)
	assert.Equal(t, 2, got[1].FileCount)
}
