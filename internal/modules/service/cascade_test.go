package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
	"github.com/iris-hq/iris-os/internal/pkg/folderid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MockCascadeRepo is a mock implementation of CascadeRepo
type MockCascadeRepo struct {
	mock.Mock
}

func (m *MockCascadeRepo) DeleteProjectCascade(ctx context.Context, workspaceID, projectID uuid.UUID) (repo.ProjectCascadeCounts, error) {
	args := m.Called(ctx, workspaceID, projectID)
	return args.Get(0).(repo.ProjectCascadeCounts), args.Error(1)
}

func (m *MockCascadeRepo) DeleteClientCore(ctx context.Context, workspaceID, clientID uuid.UUID) (repo.ClientCascadeCounts, error) {
	args := m.Called(ctx, workspaceID, clientID)
	return args.Get(0).(repo.ClientCascadeCounts), args.Error(1)
}

func (m *MockCascadeRepo) DeleteClientAssets(ctx context.Context, workspaceID, clientID uuid.UUID) (repo.AssetCascadeCounts, error) {
	args := m.Called(ctx, workspaceID, clientID)
	return args.Get(0).(repo.AssetCascadeCounts), args.Error(1)
}

func (m *MockCascadeRepo) DeleteTaskCascade(ctx context.Context, workspaceID, taskID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, taskID)
	return args.Error(0)
}

func (m *MockCascadeRepo) ArchiveProjectFiles(ctx context.Context, workspaceID, projectID uuid.UUID, archiveFolderID string, at time.Time, actor string) (int64, error) {
	args := m.Called(ctx, workspaceID, projectID, archiveFolderID, at, actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCascadeRepo) UnarchiveProjectFiles(ctx context.Context, workspaceID, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, workspaceID, projectID)
	return args.Get(0).(int64), args.Error(1)
}

// MockProjectRepo is a mock implementation of ProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) Update(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) Get(ctx context.Context, workspaceID, projectID uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, workspaceID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) ListByClient(ctx context.Context, workspaceID, clientID uuid.UUID, includeArchived bool) ([]*model.Project, error) {
	args := m.Called(ctx, workspaceID, clientID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Project), args.Error(1)
}

func (m *MockProjectRepo) SetArchived(ctx context.Context, workspaceID, projectID uuid.UUID, archived bool, at *time.Time, actor string, status string) error {
	args := m.Called(ctx, workspaceID, projectID, archived, at, actor, status)
	return args.Error(0)
}

// MockActivityRepo is a mock implementation of ActivityRepo
type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Create(ctx context.Context, entry *model.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityRepo) ListWithCursor(ctx context.Context, workspaceID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int) ([]*model.ActivityLog, error) {
	args := m.Called(ctx, workspaceID, afterCreatedAt, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ActivityLog), args.Error(1)
}

// MockProvisionService is a mock implementation of ProvisionService
type MockProvisionService struct {
	mock.Mock
}

func (m *MockProvisionService) ProvisionClientFolders(ctx context.Context, workspaceID, clientID uuid.UUID, clientName string) error {
	args := m.Called(ctx, workspaceID, clientID, clientName)
	return args.Error(0)
}

func (m *MockProvisionService) ProvisionProjectFolder(ctx context.Context, workspaceID, projectID uuid.UUID, projectName string, clientID uuid.UUID, projectCode string) error {
	args := m.Called(ctx, workspaceID, projectID, projectName, clientID, projectCode)
	return args.Error(0)
}

func (m *MockProvisionService) ProvisionTaskFolder(ctx context.Context, workspaceID, taskID uuid.UUID, taskTitle string, projectID, clientID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, taskID, taskTitle, projectID, clientID)
	return args.Error(0)
}

func (m *MockProvisionService) ProvisionMeetingFolder(ctx context.Context, workspaceID, meetingID uuid.UUID, title string, clientID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, meetingID, title, clientID)
	return args.Error(0)
}

func (m *MockProvisionService) EnsureClientArchiveRoot(ctx context.Context, workspaceID, clientID uuid.UUID) (string, error) {
	args := m.Called(ctx, workspaceID, clientID)
	return args.String(0), args.Error(1)
}

func (m *MockProvisionService) ProvisionProjectArchiveFolder(ctx context.Context, workspaceID, projectID uuid.UUID, projectName string, clientID uuid.UUID) (string, error) {
	args := m.Called(ctx, workspaceID, projectID, projectName, clientID)
	return args.String(0), args.Error(1)
}

func (m *MockProvisionService) ResolveDestination(ctx context.Context, workspaceID uuid.UUID, category string, taskID, projectID, clientID *uuid.UUID) (*model.Folder, error) {
	args := m.Called(ctx, workspaceID, category, taskID, projectID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

type cascadeMocks struct {
	cascades  *MockCascadeRepo
	projects  *MockProjectRepo
	folders   *MockFolderRepo
	activity  *MockActivityRepo
	provision *MockProvisionService
}

func newCascadeService(t *testing.T) (CascadeService, cascadeMocks) {
	t.Helper()
	m := cascadeMocks{
		cascades:  &MockCascadeRepo{},
		projects:  &MockProjectRepo{},
		folders:   &MockFolderRepo{},
		activity:  &MockActivityRepo{},
		provision: &MockProvisionService{},
	}
	svc := NewCascadeService(m.cascades, m.projects, m.folders, m.activity, m.provision, zap.NewNop(), nil, "iris.audit")
	return svc, m
}

func TestCascadeService_DeleteProject(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	projectID := uuid.New()

	tests := []struct {
		name    string
		setup   func(cascadeMocks)
		wantErr bool
		errMsg  string
	}{
		{
			name: "success",
			setup: func(m cascadeMocks) {
				m.cascades.On("DeleteProjectCascade", ctx, workspaceID, projectID).
					Return(repo.ProjectCascadeCounts{Tasks: 4, Files: 7, Folders: 6}, nil)
				m.activity.On("Create", ctx, mock.AnythingOfType("*model.ActivityLog")).Return(nil)
			},
		},
		{
			name: "cascade failure",
			setup: func(m cascadeMocks) {
				m.cascades.On("DeleteProjectCascade", ctx, workspaceID, projectID).
					Return(repo.ProjectCascadeCounts{}, errors.New("deadlock detected"))
			},
			wantErr: true,
			errMsg:  "delete project cascade",
		},
		{
			name: "activity failure does not surface",
			setup: func(m cascadeMocks) {
				m.cascades.On("DeleteProjectCascade", ctx, workspaceID, projectID).
					Return(repo.ProjectCascadeCounts{Tasks: 1}, nil)
				m.activity.On("Create", ctx, mock.AnythingOfType("*model.ActivityLog")).
					Return(errors.New("insert failed"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newCascadeService(t)
			tt.setup(m)

			counts, err := svc.DeleteProject(ctx, workspaceID, projectID, "ops@iris")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, counts.Tasks)
			}
			m.cascades.AssertExpectations(t)
			m.activity.AssertExpectations(t)
		})
	}
}

func TestCascadeService_DeleteClient_TwoPhase(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	clientID := uuid.New()

	svc, m := newCascadeService(t)

	m.cascades.On("DeleteClientCore", ctx, workspaceID, clientID).
		Return(repo.ClientCascadeCounts{Projects: 2, Tasks: 9}, nil)
	m.cascades.On("DeleteClientAssets", ctx, workspaceID, clientID).
		Return(repo.AssetCascadeCounts{}, errors.New("s3 timeout"))

	var logged *model.ActivityLog
	m.activity.On("Create", ctx, mock.AnythingOfType("*model.ActivityLog")).
		Run(func(args mock.Arguments) {
			logged = args.Get(1).(*model.ActivityLog)
		}).Return(nil)

	// phase one commits on its own
	res, err := svc.DeleteClient(ctx, workspaceID, clientID, "ops@iris", true)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), res.Counts.Projects)
	assert.Equal(t, int64(9), res.Counts.Tasks)

	// the audit entry records the operator's asset choice
	require.NotNil(t, logged)
	assert.Equal(t, model.ActivityClientDeleted, logged.Action)
	assert.Equal(t, model.ActivityClientAssetsDeleted, logged.Detail["assets"])

	// phase two failing afterwards does not undo phase one
	assets, err := svc.DeleteClientAssets(ctx, workspaceID, clientID, "ops@iris")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "delete client assets")
	assert.Nil(t, assets)

	m.cascades.AssertExpectations(t)
}

func TestCascadeService_DeleteClient_RecordsRetainedAssets(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	clientID := uuid.New()

	svc, m := newCascadeService(t)

	m.cascades.On("DeleteClientCore", ctx, workspaceID, clientID).
		Return(repo.ClientCascadeCounts{Projects: 1}, nil)

	var logged *model.ActivityLog
	m.activity.On("Create", ctx, mock.AnythingOfType("*model.ActivityLog")).
		Run(func(args mock.Arguments) {
			logged = args.Get(1).(*model.ActivityLog)
		}).Return(nil)

	_, err := svc.DeleteClient(ctx, workspaceID, clientID, "ops@iris", false)
	assert.NoError(t, err)

	require.NotNil(t, logged)
	assert.Equal(t, model.ActivityClientAssetsRetained, logged.Detail["assets"])
	m.cascades.AssertExpectations(t)
}

func TestCascadeService_DeleteClientAssets(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	clientID := uuid.New()

	svc, m := newCascadeService(t)

	m.cascades.On("DeleteClientAssets", ctx, workspaceID, clientID).
		Return(repo.AssetCascadeCounts{Folders: 14, Files: 32}, nil)
	m.activity.On("Create", ctx, mock.AnythingOfType("*model.ActivityLog")).Return(nil)

	res, err := svc.DeleteClientAssets(ctx, workspaceID, clientID, "ops@iris")
	assert.NoError(t, err)
	assert.Equal(t, int64(14), res.Counts.Folders)
	assert.Equal(t, int64(32), res.Counts.Files)
	m.cascades.AssertExpectations(t)
}

func TestCascadeService_ArchiveProject(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	clientID := uuid.New()
	projectID := uuid.New()
	project := &model.Project{ID: projectID, WorkspaceID: workspaceID, ClientID: clientID, Name: "Rebrand"}
	archiveID := folderid.ProjectArchive(projectID)

	tests := []struct {
		name    string
		setup   func(cascadeMocks)
		wantErr bool
		errMsg  string
	}{
		{
			name: "success",
			setup: func(m cascadeMocks) {
				m.projects.On("Get", ctx, workspaceID, projectID).Return(project, nil)
				m.provision.On("EnsureClientArchiveRoot", ctx, workspaceID, clientID).
					Return(folderid.ClientSub(clientID, "archive"), nil)
				m.provision.On("ProvisionProjectArchiveFolder", ctx, workspaceID, projectID, "Rebrand", clientID).
					Return(archiveID, nil)
				m.cascades.On("ArchiveProjectFiles", ctx, workspaceID, projectID, archiveID, mock.AnythingOfType("time.Time"), "ops@iris").
					Return(int64(5), nil)
				m.projects.On("SetArchived", ctx, workspaceID, projectID, true, mock.AnythingOfType("*time.Time"), "ops@iris", model.ProjectStatusArchived).
					Return(nil)
				m.activity.On("Create", ctx, mock.AnythingOfType("*model.ActivityLog")).Return(nil)
			},
		},
		{
			name: "project not found",
			setup: func(m cascadeMocks) {
				m.projects.On("Get", ctx, workspaceID, projectID).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: true,
			errMsg:  "load project",
		},
		{
			name: "file move fails before flagging",
			setup: func(m cascadeMocks) {
				m.projects.On("Get", ctx, workspaceID, projectID).Return(project, nil)
				m.provision.On("EnsureClientArchiveRoot", ctx, workspaceID, clientID).
					Return(folderid.ClientSub(clientID, "archive"), nil)
				m.provision.On("ProvisionProjectArchiveFolder", ctx, workspaceID, projectID, "Rebrand", clientID).
					Return(archiveID, nil)
				m.cascades.On("ArchiveProjectFiles", ctx, workspaceID, projectID, archiveID, mock.AnythingOfType("time.Time"), "ops@iris").
					Return(int64(0), errors.New("update failed"))
			},
			wantErr: true,
			errMsg:  "archive project files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newCascadeService(t)
			tt.setup(m)

			err := svc.ArchiveProject(ctx, workspaceID, projectID, "ops@iris")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				// the project must not be flagged archived on failure
				m.projects.AssertNotCalled(t, "SetArchived", ctx, workspaceID, projectID, true,
					mock.AnythingOfType("*time.Time"), "ops@iris", model.ProjectStatusArchived)
			} else {
				assert.NoError(t, err)
			}
			m.cascades.AssertExpectations(t)
			m.projects.AssertExpectations(t)
			m.provision.AssertExpectations(t)
		})
	}
}

func TestCascadeService_UnarchiveProject(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	clientID := uuid.New()
	projectID := uuid.New()
	project := &model.Project{ID: projectID, WorkspaceID: workspaceID, ClientID: clientID, Name: "Rebrand", IsArchived: true}
	archiveID := folderid.ProjectArchive(projectID)

	tests := []struct {
		name  string
		setup func(cascadeMocks)
	}{
		{
			name: "renames the archive folder back",
			setup: func(m cascadeMocks) {
				m.folders.On("Get", ctx, workspaceID, archiveID).
					Return(&model.Folder{ID: archiveID, Name: "[Archived] Rebrand"}, nil)
				m.folders.On("Rename", ctx, workspaceID, archiveID, "Rebrand").Return(nil)
			},
		},
		{
			name: "missing archive folder is tolerated",
			setup: func(m cascadeMocks) {
				m.folders.On("Get", ctx, workspaceID, archiveID).
					Return(nil, gorm.ErrRecordNotFound)
			},
		},
		{
			name: "unprefixed folder is left alone",
			setup: func(m cascadeMocks) {
				m.folders.On("Get", ctx, workspaceID, archiveID).
					Return(&model.Folder{ID: archiveID, Name: "Rebrand"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newCascadeService(t)
			m.projects.On("Get", ctx, workspaceID, projectID).Return(project, nil)
			m.projects.On("SetArchived", ctx, workspaceID, projectID, false, (*time.Time)(nil), "", model.ProjectStatusActive).
				Return(nil)
			m.cascades.On("UnarchiveProjectFiles", ctx, workspaceID, projectID).
				Return(int64(5), nil)
			m.activity.On("Create", ctx, mock.AnythingOfType("*model.ActivityLog")).Return(nil)
			tt.setup(m)

			err := svc.UnarchiveProject(ctx, workspaceID, projectID, "")
			assert.NoError(t, err)
			m.folders.AssertExpectations(t)
			m.projects.AssertExpectations(t)
			m.cascades.AssertExpectations(t)
		})
	}
}
