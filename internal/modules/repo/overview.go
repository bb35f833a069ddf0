package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/views"
	"gorm.io/gorm"
)

type OverviewRepo interface {
	LoadSnapshot(ctx context.Context, workspaceID uuid.UUID) (*views.Snapshot, error)
}

type overviewRepo struct{ db *gorm.DB }

func NewOverviewRepo(db *gorm.DB) OverviewRepo {
	return &overviewRepo{db: db}
}

// LoadSnapshot reads the workspace's collections in one transaction so the
// view layer computes against a consistent state.
func (r *overviewRepo) LoadSnapshot(ctx context.Context, workspaceID uuid.UUID) (*views.Snapshot, error) {
	snap := &views.Snapshot{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scope := tx.Where("workspace_id = ?", workspaceID)

		steps := []struct {
			name string
			dest any
		}{
			{"clients", &snap.Clients},
			{"projects", &snap.Projects},
			{"tasks", &snap.Tasks},
			{"milestones", &snap.Milestones},
			{"folders", &snap.Folders},
			{"files", &snap.Files},
		}
		for _, s := range steps {
			if err := scope.Session(&gorm.Session{}).Find(s.dest).Error; err != nil {
				return fmt.Errorf("load %s: %w", s.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
