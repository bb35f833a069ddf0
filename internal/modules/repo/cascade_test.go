package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLite-compatible versions of the models for testing. The production
// structs carry postgres column types and defaults (uuid, jsonb,
// gen_random_uuid) that SQLite cannot migrate, so the test schema mirrors
// just the columns the cascades touch, under the same table names.

type ProjectSQLite struct {
	ID          string `gorm:"primaryKey"`
	WorkspaceID string `gorm:"index"`
	ClientID    string `gorm:"index"`
	Name        string
	Status      string `gorm:"default:'active'"`
	IsArchived  bool   `gorm:"default:false"`
}

func (ProjectSQLite) TableName() string { return "projects" }

type TaskSQLite struct {
	ID          string `gorm:"primaryKey"`
	WorkspaceID string `gorm:"index"`
	ProjectID   string `gorm:"index"`
	Title       string
	IsDeleted   bool   `gorm:"default:false"`
}

func (TaskSQLite) TableName() string { return "tasks" }

type FileSQLite struct {
	ID          string `gorm:"primaryKey"`
	WorkspaceID string `gorm:"index"`
	ClientID    string `gorm:"index"`
	ProjectID   *string
	FolderID    *string
	Name        string
	IsArchived  bool   `gorm:"default:false"`
	ArchivedAt  *time.Time
	ArchivedBy  string
}

func (FileSQLite) TableName() string { return "files" }

type FolderSQLite struct {
	ID          string `gorm:"primaryKey"`
	WorkspaceID string `gorm:"index"`
	ClientID    string `gorm:"index"`
	ProjectID   *string
	ParentID    *string
	Name        string
}

func (FolderSQLite) TableName() string { return "folders" }

type MilestoneSQLite struct {
	ID              string `gorm:"primaryKey"`
	WorkspaceID     string `gorm:"index"`
	ProjectID       string `gorm:"index"`
	Name            string
	ProgressPercent int    `gorm:"default:0"`
}

func (MilestoneSQLite) TableName() string { return "milestones" }

type MemberSQLite struct {
	ID          string `gorm:"primaryKey"`
	WorkspaceID string `gorm:"index"`
	ProjectID   string `gorm:"index"`
	Name        string
}

func (MemberSQLite) TableName() string { return "members" }

type ActivityLogSQLite struct {
	ID          string `gorm:"primaryKey"`
	WorkspaceID string `gorm:"index"`
	ProjectID   *string
	Action      string
}

func (ActivityLogSQLite) TableName() string { return "activity_logs" }

type MarketingAssetSQLite struct {
	ID          string `gorm:"primaryKey"`
	WorkspaceID string `gorm:"index"`
	ProjectID   string `gorm:"index"`
	Name        string
}

func (MarketingAssetSQLite) TableName() string { return "marketing_assets" }

type FreelancerAssignmentSQLite struct {
	ID          string `gorm:"primaryKey"`
	WorkspaceID string `gorm:"index"`
	ProjectID   string `gorm:"index"`
	Freelancer  string
}

func (FreelancerAssignmentSQLite) TableName() string { return "freelancer_assignments" }

func setupCascadeTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&ProjectSQLite{}, &TaskSQLite{}, &FileSQLite{}, &FolderSQLite{},
		&MilestoneSQLite{}, &MemberSQLite{}, &ActivityLogSQLite{},
		&MarketingAssetSQLite{}, &FreelancerAssignmentSQLite{},
	)
	require.NoError(t, err)

	return db
}

func TestCascadeRepo_DeleteProjectCascade(t *testing.T) {
	db := setupCascadeTestDB(t)
	r := NewCascadeRepo(db)
	ctx := context.Background()

	workspaceID := uuid.New()
	projectID := uuid.New()
	otherProjectID := uuid.New()
	ws := workspaceID.String()
	pid := projectID.String()
	other := otherProjectID.String()

	require.NoError(t, db.Create(&ProjectSQLite{ID: pid, WorkspaceID: ws, ClientID: uuid.NewString(), Name: "Rebrand"}).Error)
	require.NoError(t, db.Create(&ProjectSQLite{ID: other, WorkspaceID: ws, ClientID: uuid.NewString(), Name: "Launch"}).Error)

	require.NoError(t, db.Create(&TaskSQLite{ID: uuid.NewString(), WorkspaceID: ws, ProjectID: pid, Title: "Draft"}).Error)
	require.NoError(t, db.Create(&FileSQLite{ID: uuid.NewString(), WorkspaceID: ws, ClientID: uuid.NewString(), ProjectID: &pid, Name: "logo.png"}).Error)
	require.NoError(t, db.Create(&FolderSQLite{ID: "proj_" + pid, WorkspaceID: ws, ClientID: uuid.NewString(), ProjectID: &pid, Name: "Rebrand"}).Error)
	require.NoError(t, db.Create(&MilestoneSQLite{ID: uuid.NewString(), WorkspaceID: ws, ProjectID: pid, Name: "Kickoff"}).Error)
	require.NoError(t, db.Create(&MemberSQLite{ID: uuid.NewString(), WorkspaceID: ws, ProjectID: pid, Name: "Dana"}).Error)
	require.NoError(t, db.Create(&ActivityLogSQLite{ID: uuid.NewString(), WorkspaceID: ws, ProjectID: &pid, Action: "task_created"}).Error)
	require.NoError(t, db.Create(&MarketingAssetSQLite{ID: uuid.NewString(), WorkspaceID: ws, ProjectID: pid, Name: "Banner"}).Error)
	require.NoError(t, db.Create(&FreelancerAssignmentSQLite{ID: uuid.NewString(), WorkspaceID: ws, ProjectID: pid, Freelancer: "Sam"}).Error)

	// rows of another project in the same workspace must survive
	require.NoError(t, db.Create(&TaskSQLite{ID: uuid.NewString(), WorkspaceID: ws, ProjectID: other, Title: "Plan"}).Error)
	require.NoError(t, db.Create(&MilestoneSQLite{ID: uuid.NewString(), WorkspaceID: ws, ProjectID: other, Name: "Scope"}).Error)

	counts, err := r.DeleteProjectCascade(ctx, workspaceID, projectID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), counts.Tasks)
	assert.Equal(t, int64(1), counts.Files)
	assert.Equal(t, int64(1), counts.Folders)
	assert.Equal(t, int64(1), counts.Milestones)
	assert.Equal(t, int64(1), counts.Members)
	assert.Equal(t, int64(1), counts.ActivityLogs)
	assert.Equal(t, int64(1), counts.MarketingAssets)
	assert.Equal(t, int64(1), counts.FreelancerAssignments)

	// every dependent table is empty for the deleted project
	for table, m := range map[string]any{
		"tasks":                  &TaskSQLite{},
		"files":                  &FileSQLite{},
		"folders":                &FolderSQLite{},
		"milestones":             &MilestoneSQLite{},
		"members":                &MemberSQLite{},
		"activity_logs":          &ActivityLogSQLite{},
		"marketing_assets":       &MarketingAssetSQLite{},
		"freelancer_assignments": &FreelancerAssignmentSQLite{},
	} {
		var n int64
		require.NoError(t, db.Model(m).Where("project_id = ?", pid).Count(&n).Error)
		assert.Zero(t, n, "leftover rows in %s", table)
	}

	var projects int64
	require.NoError(t, db.Model(&ProjectSQLite{}).Where("id = ?", pid).Count(&projects).Error)
	assert.Zero(t, projects)

	var otherTasks, otherMilestones int64
	require.NoError(t, db.Model(&TaskSQLite{}).Where("project_id = ?", other).Count(&otherTasks).Error)
	require.NoError(t, db.Model(&MilestoneSQLite{}).Where("project_id = ?", other).Count(&otherMilestones).Error)
	assert.Equal(t, int64(1), otherTasks)
	assert.Equal(t, int64(1), otherMilestones)
}

func TestCascadeRepo_DeleteProjectCascade_NotFound(t *testing.T) {
	db := setupCascadeTestDB(t)
	r := NewCascadeRepo(db)

	_, err := r.DeleteProjectCascade(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFolderRepo_CollectSubtree(t *testing.T) {
	workspaceID := uuid.New()
	ws := workspaceID.String()
	ctx := context.Background()

	t.Run("walks nested folders once", func(t *testing.T) {
		db := setupCascadeTestDB(t)
		r := NewFolderRepo(db)

		root := "client_root"
		childA := "client_root_designs"
		childB := "client_root_strategies"
		grandchild := "client_root_designs_drafts"

		require.NoError(t, db.Create(&FolderSQLite{ID: root, WorkspaceID: ws, Name: "Root"}).Error)
		require.NoError(t, db.Create(&FolderSQLite{ID: childA, WorkspaceID: ws, ParentID: &root, Name: "Designs"}).Error)
		require.NoError(t, db.Create(&FolderSQLite{ID: childB, WorkspaceID: ws, ParentID: &root, Name: "Strategies"}).Error)
		require.NoError(t, db.Create(&FolderSQLite{ID: grandchild, WorkspaceID: ws, ParentID: &childA, Name: "Drafts"}).Error)

		ids, err := r.CollectSubtree(ctx, workspaceID, root)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{root, childA, childB, grandchild}, ids)
	})

	t.Run("terminates on a parent cycle", func(t *testing.T) {
		db := setupCascadeTestDB(t)
		r := NewFolderRepo(db)

		a := "folder_a"
		b := "folder_b"
		require.NoError(t, db.Create(&FolderSQLite{ID: a, WorkspaceID: ws, ParentID: &b, Name: "A"}).Error)
		require.NoError(t, db.Create(&FolderSQLite{ID: b, WorkspaceID: ws, ParentID: &a, Name: "B"}).Error)

		ids, err := r.CollectSubtree(ctx, workspaceID, a)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{a, b}, ids)
	})
}
