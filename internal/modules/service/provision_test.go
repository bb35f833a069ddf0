package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
	"github.com/iris-hq/iris-os/internal/pkg/folderid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockFolderRepo is a mock implementation of FolderRepo
type MockFolderRepo struct {
	mock.Mock
}

func (m *MockFolderRepo) Upsert(ctx context.Context, folders []model.Folder) error {
	args := m.Called(ctx, folders)
	return args.Error(0)
}

func (m *MockFolderRepo) Get(ctx context.Context, workspaceID uuid.UUID, folderID string) (*model.Folder, error) {
	args := m.Called(ctx, workspaceID, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockFolderRepo) Rename(ctx context.Context, workspaceID uuid.UUID, folderID, name string) error {
	args := m.Called(ctx, workspaceID, folderID, name)
	return args.Error(0)
}

func (m *MockFolderRepo) ListChildren(ctx context.Context, workspaceID uuid.UUID, parentID string) ([]model.Folder, error) {
	args := m.Called(ctx, workspaceID, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Folder), args.Error(1)
}

func (m *MockFolderRepo) ListByClient(ctx context.Context, workspaceID, clientID uuid.UUID) ([]model.Folder, error) {
	args := m.Called(ctx, workspaceID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Folder), args.Error(1)
}

func (m *MockFolderRepo) CollectSubtree(ctx context.Context, workspaceID uuid.UUID, rootID string) ([]string, error) {
	args := m.Called(ctx, workspaceID, rootID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFolderRepo) DeleteTree(ctx context.Context, workspaceID uuid.UUID, rootID string) (repo.FolderTreeCounts, error) {
	args := m.Called(ctx, workspaceID, rootID)
	return args.Get(0).(repo.FolderTreeCounts), args.Error(1)
}

func TestProvisionService_ProvisionClientFolders(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	clientID := uuid.New()

	var captured [][]model.Folder
	folders := &MockFolderRepo{}
	folders.On("Upsert", ctx, mock.AnythingOfType("[]model.Folder")).
		Run(func(args mock.Arguments) {
			captured = append(captured, args.Get(1).([]model.Folder))
		}).
		Return(nil)

	svc := NewProvisionService(folders)

	err := svc.ProvisionClientFolders(ctx, workspaceID, clientID, "Acme Corp")
	assert.NoError(t, err)
	// running it again must produce the exact same records
	err = svc.ProvisionClientFolders(ctx, workspaceID, clientID, "Acme Corp")
	assert.NoError(t, err)

	assert.Len(t, captured, 2)
	assert.Equal(t, captured[0], captured[1])

	records := captured[0]
	assert.Len(t, records, 1+len(folderid.ClientSubfolders))

	ids := make(map[string]model.Folder, len(records))
	for _, f := range records {
		ids[f.ID] = f
	}

	root, ok := ids[folderid.ClientRoot(clientID)]
	assert.True(t, ok)
	assert.True(t, root.IsRoot)
	assert.Nil(t, root.ParentID)
	assert.Equal(t, "Acme Corp", root.Name)

	archive, ok := ids[folderid.ClientSub(clientID, "archive")]
	assert.True(t, ok)
	assert.True(t, archive.IsArchiveRoot)
	assert.Equal(t, folderid.ClientRoot(clientID), *archive.ParentID)

	for _, sub := range folderid.ClientSubfolders {
		f, ok := ids[folderid.ClientSub(clientID, sub)]
		assert.True(t, ok, "missing subfolder %s", sub)
		assert.Equal(t, workspaceID, f.WorkspaceID)
		assert.Equal(t, clientID, f.ClientID)
	}
}

func TestProvisionService_ProvisionProjectFolder(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	clientID := uuid.New()
	projectID := uuid.New()

	tests := []struct {
		name     string
		code     string
		wantName string
	}{
		{name: "with code", code: "ACM-01", wantName: "ACM-01 - Rebrand"},
		{name: "without code", code: "", wantName: "Rebrand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []model.Folder
			folders := &MockFolderRepo{}
			folders.On("Upsert", ctx, mock.AnythingOfType("[]model.Folder")).
				Run(func(args mock.Arguments) {
					records = args.Get(1).([]model.Folder)
				}).
				Return(nil)

			svc := NewProvisionService(folders)
			err := svc.ProvisionProjectFolder(ctx, workspaceID, projectID, "Rebrand", clientID, tt.code)
			assert.NoError(t, err)

			assert.Len(t, records, 1+len(folderid.ProjectSubfolders))
			assert.Equal(t, folderid.Project(projectID), records[0].ID)
			assert.Equal(t, tt.wantName, records[0].Name)
			assert.Equal(t, folderid.ClientSub(clientID, "projects"), *records[0].ParentID)

			for _, f := range records[1:] {
				assert.Equal(t, folderid.Project(projectID), *f.ParentID)
			}
		})
	}
}

func TestProvisionService_ProvisionTaskFolder_NameFallback(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	clientID := uuid.New()
	projectID := uuid.New()
	taskID := uuid.New()

	var records []model.Folder
	folders := &MockFolderRepo{}
	folders.On("Upsert", ctx, mock.AnythingOfType("[]model.Folder")).
		Run(func(args mock.Arguments) {
			records = args.Get(1).([]model.Folder)
		}).
		Return(nil)

	svc := NewProvisionService(folders)

	// a title that sanitizes to nothing falls back to the folder ID
	err := svc.ProvisionTaskFolder(ctx, workspaceID, taskID, "!!!", projectID, clientID)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, folderid.Task(taskID), records[0].ID)
	assert.Equal(t, folderid.Task(taskID), records[0].Name)
	assert.True(t, records[0].IsTaskFolder)
	assert.Equal(t, folderid.ProjectSub(projectID, "tasks"), *records[0].ParentID)
}

func TestProvisionService_ResolveDestination(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	clientID := uuid.New()
	projectID := uuid.New()
	taskID := uuid.New()

	taskFolder := &model.Folder{ID: folderid.Task(taskID)}
	projectDocs := &model.Folder{ID: folderid.ProjectSub(projectID, "documents")}
	clientStrategies := &model.Folder{ID: folderid.ClientSub(clientID, "strategies")}

	tests := []struct {
		name     string
		category string
		taskID   *uuid.UUID
		setup    func(*MockFolderRepo)
		want     *model.Folder
	}{
		{
			name:     "task folder wins over everything",
			category: "document",
			taskID:   &taskID,
			setup: func(m *MockFolderRepo) {
				m.On("Get", ctx, workspaceID, folderid.Task(taskID)).Return(taskFolder, nil)
			},
			want: taskFolder,
		},
		{
			name:     "project presentation lands in documents",
			category: "presentation",
			setup: func(m *MockFolderRepo) {
				m.On("Get", ctx, workspaceID, folderid.ProjectSub(projectID, "documents")).Return(projectDocs, nil)
			},
			want: projectDocs,
		},
		{
			name:     "client presentation lands in strategies",
			category: "presentation",
			setup: func(m *MockFolderRepo) {
				m.On("Get", ctx, workspaceID, folderid.ProjectSub(projectID, "documents")).
					Return(nil, gorm.ErrRecordNotFound)
				m.On("Get", ctx, workspaceID, folderid.ClientSub(clientID, "strategies")).
					Return(clientStrategies, nil)
			},
			want: clientStrategies,
		},
		{
			name:     "nothing resolves",
			category: "document",
			setup: func(m *MockFolderRepo) {
				m.On("Get", ctx, workspaceID, mock.AnythingOfType("string")).
					Return(nil, gorm.ErrRecordNotFound)
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folders := &MockFolderRepo{}
			tt.setup(folders)

			svc := NewProvisionService(folders)
			got, err := svc.ResolveDestination(ctx, workspaceID, tt.category, tt.taskID, &projectID, &clientID)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			folders.AssertExpectations(t)
		})
	}
}

func TestProvisionService_ResolveDestination_RepoError(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	taskID := uuid.New()

	folders := &MockFolderRepo{}
	folders.On("Get", ctx, workspaceID, folderid.Task(taskID)).
		Return(nil, errors.New("connection refused"))

	svc := NewProvisionService(folders)
	got, err := svc.ResolveDestination(ctx, workspaceID, "document", &taskID, nil, nil)

	assert.Error(t, err)
	assert.Nil(t, got)
}
