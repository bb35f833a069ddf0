package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockMilestoneService is a mock implementation of MilestoneService
type MockMilestoneService struct {
	mock.Mock
}

func (m *MockMilestoneService) Create(ctx context.Context, ms *model.Milestone) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *MockMilestoneService) Update(ctx context.Context, ms *model.Milestone) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *MockMilestoneService) GetByID(ctx context.Context, workspaceID, milestoneID uuid.UUID) (*model.Milestone, error) {
	args := m.Called(ctx, workspaceID, milestoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Milestone), args.Error(1)
}

func (m *MockMilestoneService) ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.Milestone, error) {
	args := m.Called(ctx, workspaceID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Milestone), args.Error(1)
}

func (m *MockMilestoneService) Recalc(ctx context.Context, workspaceID, milestoneID uuid.UUID) (int, error) {
	args := m.Called(ctx, workspaceID, milestoneID)
	return args.Int(0), args.Error(1)
}

type taskMocks struct {
	tasks      *MockTaskRepo
	cascades   *MockCascadeRepo
	milestones *MockMilestoneService
	provision  *MockProvisionService
}

func newTaskService(t *testing.T) (TaskService, taskMocks) {
	t.Helper()
	m := taskMocks{
		tasks:      &MockTaskRepo{},
		cascades:   &MockCascadeRepo{},
		milestones: &MockMilestoneService{},
		provision:  &MockProvisionService{},
	}
	svc := NewTaskService(m.tasks, m.cascades, m.milestones, m.provision, zap.NewNop())
	return svc, m
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	clientID := uuid.New()
	projectID := uuid.New()
	milestoneID := uuid.New()

	tests := []struct {
		name       string
		task       *model.Task
		setup      func(taskMocks, *model.Task)
		wantErr    bool
		errMsg     string
		wantRecalc bool
	}{
		{
			name: "with milestone triggers recalc",
			task: &model.Task{WorkspaceID: workspaceID, ProjectID: projectID, Title: "Draft copy", MilestoneID: &milestoneID},
			setup: func(m taskMocks, task *model.Task) {
				m.tasks.On("Create", ctx, task).Return(nil)
				m.provision.On("ProvisionTaskFolder", ctx, workspaceID, task.ID, "Draft copy", projectID, clientID).Return(nil)
				m.milestones.On("Recalc", ctx, workspaceID, milestoneID).Return(50, nil)
			},
			wantRecalc: true,
		},
		{
			name: "without milestone skips recalc",
			task: &model.Task{WorkspaceID: workspaceID, ProjectID: projectID, Title: "Draft copy"},
			setup: func(m taskMocks, task *model.Task) {
				m.tasks.On("Create", ctx, task).Return(nil)
				m.provision.On("ProvisionTaskFolder", ctx, workspaceID, task.ID, "Draft copy", projectID, clientID).Return(nil)
			},
		},
		{
			name: "folder provisioning failure does not block",
			task: &model.Task{WorkspaceID: workspaceID, ProjectID: projectID, Title: "Draft copy"},
			setup: func(m taskMocks, task *model.Task) {
				m.tasks.On("Create", ctx, task).Return(nil)
				m.provision.On("ProvisionTaskFolder", ctx, workspaceID, task.ID, "Draft copy", projectID, clientID).
					Return(errors.New("folder upsert failed"))
			},
		},
		{
			name: "row failure surfaces",
			task: &model.Task{WorkspaceID: workspaceID, ProjectID: projectID, Title: "Draft copy"},
			setup: func(m taskMocks, task *model.Task) {
				m.tasks.On("Create", ctx, task).Return(errors.New("constraint violated"))
			},
			wantErr: true,
			errMsg:  "create task record",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTaskService(t)
			tt.setup(m, tt.task)

			err := svc.Create(ctx, tt.task, clientID)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
			if !tt.wantRecalc {
				m.milestones.AssertNotCalled(t, "Recalc", mock.Anything, mock.Anything, mock.Anything)
			}
			m.tasks.AssertExpectations(t)
			m.provision.AssertExpectations(t)
			m.milestones.AssertExpectations(t)
		})
	}
}

func TestTaskService_Update_RecalcsNewMilestone(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	milestoneID := uuid.New()
	task := &model.Task{ID: uuid.New(), WorkspaceID: workspaceID, Title: "Draft copy", Status: "done", MilestoneID: &milestoneID}

	svc, m := newTaskService(t)
	m.tasks.On("Update", ctx, task).Return(nil)
	m.milestones.On("Recalc", ctx, workspaceID, milestoneID).Return(100, nil)

	err := svc.Update(ctx, task)
	assert.NoError(t, err)
	m.tasks.AssertExpectations(t)
	m.milestones.AssertExpectations(t)
}

func TestTaskService_SoftDeleteAndRestore(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	taskID := uuid.New()

	svc, m := newTaskService(t)
	m.tasks.On("SetDeleted", ctx, workspaceID, taskID, true).Return(nil)
	m.tasks.On("SetDeleted", ctx, workspaceID, taskID, false).Return(nil)

	assert.NoError(t, svc.SoftDelete(ctx, workspaceID, taskID))
	assert.NoError(t, svc.Restore(ctx, workspaceID, taskID))

	// deletion state changes never recalculate milestones
	m.milestones.AssertNotCalled(t, "Recalc", mock.Anything, mock.Anything, mock.Anything)
	m.tasks.AssertExpectations(t)
}

func TestTaskService_HardDelete(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	taskID := uuid.New()

	svc, m := newTaskService(t)
	m.cascades.On("DeleteTaskCascade", ctx, workspaceID, taskID).Return(nil)

	assert.NoError(t, svc.HardDelete(ctx, workspaceID, taskID))
	m.cascades.AssertExpectations(t)
}
