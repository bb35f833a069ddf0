package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMilestoneRepo is a mock implementation of MilestoneRepo
type MockMilestoneRepo struct {
	mock.Mock
}

func (m *MockMilestoneRepo) Create(ctx context.Context, ms *model.Milestone) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *MockMilestoneRepo) Update(ctx context.Context, ms *model.Milestone) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *MockMilestoneRepo) Get(ctx context.Context, workspaceID, milestoneID uuid.UUID) (*model.Milestone, error) {
	args := m.Called(ctx, workspaceID, milestoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Milestone), args.Error(1)
}

func (m *MockMilestoneRepo) ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID) ([]*model.Milestone, error) {
	args := m.Called(ctx, workspaceID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Milestone), args.Error(1)
}

func (m *MockMilestoneRepo) SetProgress(ctx context.Context, workspaceID, milestoneID uuid.UUID, percent int) error {
	args := m.Called(ctx, workspaceID, milestoneID, percent)
	return args.Error(0)
}

// MockTaskRepo is a mock implementation of TaskRepo
type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) Create(ctx context.Context, t *model.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepo) Update(ctx context.Context, t *model.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepo) Get(ctx context.Context, workspaceID, taskID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, workspaceID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepo) ListByProject(ctx context.Context, workspaceID, projectID uuid.UUID, includeDeleted bool) ([]*model.Task, error) {
	args := m.Called(ctx, workspaceID, projectID, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Task), args.Error(1)
}

func (m *MockTaskRepo) SetDeleted(ctx context.Context, workspaceID, taskID uuid.UUID, deleted bool) error {
	args := m.Called(ctx, workspaceID, taskID, deleted)
	return args.Error(0)
}

func (m *MockTaskRepo) CountByMilestone(ctx context.Context, workspaceID, milestoneID uuid.UUID) (int64, int64, error) {
	args := m.Called(ctx, workspaceID, milestoneID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func TestMilestoneService_Recalc(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	milestoneID := uuid.New()

	tests := []struct {
		name      string
		total     int64
		completed int64
		want      int
	}{
		{name: "no tasks", total: 0, completed: 0, want: 0},
		{name: "none done", total: 4, completed: 0, want: 0},
		{name: "half done", total: 4, completed: 2, want: 50},
		{name: "one third rounds down", total: 3, completed: 1, want: 33},
		{name: "two thirds rounds up", total: 3, completed: 2, want: 67},
		{name: "all done", total: 5, completed: 5, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := &MockTaskRepo{}
			tasks.On("CountByMilestone", ctx, workspaceID, milestoneID).
				Return(tt.total, tt.completed, nil)

			milestones := &MockMilestoneRepo{}
			milestones.On("SetProgress", ctx, workspaceID, milestoneID, tt.want).Return(nil)

			svc := NewMilestoneService(milestones, tasks)
			got, err := svc.Recalc(ctx, workspaceID, milestoneID)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			milestones.AssertExpectations(t)
		})
	}
}

func TestMilestoneService_Recalc_CountFailure(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	milestoneID := uuid.New()

	tasks := &MockTaskRepo{}
	tasks.On("CountByMilestone", ctx, workspaceID, milestoneID).
		Return(int64(0), int64(0), errors.New("connection reset"))

	milestones := &MockMilestoneRepo{}
	svc := NewMilestoneService(milestones, tasks)

	_, err := svc.Recalc(ctx, workspaceID, milestoneID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "count milestone tasks")
	milestones.AssertNotCalled(t, "SetProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMilestoneService_Create_IgnoresCallerProgress(t *testing.T) {
	ctx := context.Background()

	milestones := &MockMilestoneRepo{}
	milestones.On("Create", ctx, mock.AnythingOfType("*model.Milestone")).
		Run(func(args mock.Arguments) {
			assert.Equal(t, 0, args.Get(1).(*model.Milestone).ProgressPercent)
		}).
		Return(nil)

	svc := NewMilestoneService(milestones, &MockTaskRepo{})
	err := svc.Create(ctx, &model.Milestone{Name: "Launch", ProgressPercent: 80})
	assert.NoError(t, err)
	milestones.AssertExpectations(t)
}

func TestMilestoneService_Update_EmptyID(t *testing.T) {
	svc := NewMilestoneService(&MockMilestoneRepo{}, &MockTaskRepo{})
	err := svc.Update(context.Background(), &model.Milestone{Name: "Launch"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "milestone id is empty")
}
