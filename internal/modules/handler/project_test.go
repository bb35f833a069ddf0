package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockProjectService is a mock implementation of ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectService) Update(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectService) GetByID(ctx context.Context, workspaceID, projectID uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, workspaceID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) ListByClient(ctx context.Context, workspaceID, clientID uuid.UUID, includeArchived bool) ([]*model.Project, error) {
	args := m.Called(ctx, workspaceID, clientID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Project), args.Error(1)
}

func TestProjectHandler_DeleteProject(t *testing.T) {
	workspaceID := uuid.New()
	projectID := uuid.New()

	tests := []struct {
		name            string
		setup           func(*MockCascadeService)
		wantInvalidated bool
		expectedStatus  int
	}{
		{
			name: "successful delete",
			setup: func(svc *MockCascadeService) {
				svc.On("DeleteProject", mock.Anything, workspaceID, projectID, "").
					Return(repo.ProjectCascadeCounts{Tasks: 4, Files: 2}, nil)
			},
			wantInvalidated: true,
			expectedStatus:  http.StatusOK,
		},
		{
			name: "project not found",
			setup: func(svc *MockCascadeService) {
				svc.On("DeleteProject", mock.Anything, workspaceID, projectID, "").
					Return(repo.ProjectCascadeCounts{}, gorm.ErrRecordNotFound)
			},
			wantInvalidated: false,
			expectedStatus:  http.StatusNotFound,
		},
		{
			name: "cascade failure",
			setup: func(svc *MockCascadeService) {
				svc.On("DeleteProject", mock.Anything, workspaceID, projectID, "").
					Return(repo.ProjectCascadeCounts{}, errors.New("database error"))
			},
			wantInvalidated: false,
			expectedStatus:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCascades := &MockCascadeService{}
			tt.setup(mockCascades)

			mockOverview := &MockOverviewService{}
			if tt.wantInvalidated {
				mockOverview.On("Invalidate", mock.Anything, workspaceID)
			}

			handler := NewProjectHandler(&MockProjectService{}, mockCascades, mockOverview)
			router := setupClientRouter()
			router.DELETE("/project/:project_id", func(c *gin.Context) {
				c.Set("workspace", &model.Workspace{ID: workspaceID})
				handler.DeleteProject(c)
			})

			req := httptest.NewRequest("DELETE", "/project/"+projectID.String(), nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockCascades.AssertExpectations(t)
			mockOverview.AssertExpectations(t)
			if !tt.wantInvalidated {
				mockOverview.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestProjectHandler_ArchiveProject(t *testing.T) {
	workspaceID := uuid.New()
	projectID := uuid.New()

	tests := []struct {
		name            string
		archive         bool
		setup           func(*MockCascadeService)
		wantInvalidated bool
		expectedStatus  int
	}{
		{
			name:    "archive succeeds",
			archive: true,
			setup: func(svc *MockCascadeService) {
				svc.On("ArchiveProject", mock.Anything, workspaceID, projectID, "").Return(nil)
			},
			wantInvalidated: true,
			expectedStatus:  http.StatusOK,
		},
		{
			name:    "unarchive succeeds",
			archive: false,
			setup: func(svc *MockCascadeService) {
				svc.On("UnarchiveProject", mock.Anything, workspaceID, projectID, "").Return(nil)
			},
			wantInvalidated: true,
			expectedStatus:  http.StatusOK,
		},
		{
			name:    "archive of missing project",
			archive: true,
			setup: func(svc *MockCascadeService) {
				svc.On("ArchiveProject", mock.Anything, workspaceID, projectID, "").
					Return(gorm.ErrRecordNotFound)
			},
			wantInvalidated: false,
			expectedStatus:  http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCascades := &MockCascadeService{}
			tt.setup(mockCascades)

			mockOverview := &MockOverviewService{}
			if tt.wantInvalidated {
				mockOverview.On("Invalidate", mock.Anything, workspaceID)
			}

			handler := NewProjectHandler(&MockProjectService{}, mockCascades, mockOverview)
			router := setupClientRouter()
			path := "/project/:project_id/archive"
			target := "/project/" + projectID.String() + "/archive"
			fn := handler.ArchiveProject
			if !tt.archive {
				path = "/project/:project_id/unarchive"
				target = "/project/" + projectID.String() + "/unarchive"
				fn = handler.UnarchiveProject
			}
			router.POST(path, func(c *gin.Context) {
				c.Set("workspace", &model.Workspace{ID: workspaceID})
				fn(c)
			})

			req := httptest.NewRequest("POST", target, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockCascades.AssertExpectations(t)
			mockOverview.AssertExpectations(t)
			if !tt.wantInvalidated {
				mockOverview.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
			}
		})
	}
}
