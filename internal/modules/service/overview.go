package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/config"
	"github.com/iris-hq/iris-os/internal/modules/repo"
	"github.com/iris-hq/iris-os/internal/modules/views"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// OverviewService composes the read-only dashboard views. The snapshot is a
// consistent read of the workspace taken in one transaction; the composed
// overview is cached in Redis for a short TTL since it is the most-hit and
// most-expensive read in the app.
type OverviewService interface {
	Snapshot(ctx context.Context, workspaceID uuid.UUID) (*views.Snapshot, error)
	Overview(ctx context.Context, workspaceID uuid.UUID) ([]views.ClientOverview, error)
	Invalidate(ctx context.Context, workspaceID uuid.UUID)
}

type overviewService struct {
	r    repo.OverviewRepo
	rdb  *redis.Client
	ttl  time.Duration
	log  *zap.Logger
}

func NewOverviewService(r repo.OverviewRepo, rdb *redis.Client, cfg *config.Config, log *zap.Logger) OverviewService {
	ttl := time.Duration(cfg.Redis.SnapshotTTL) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &overviewService{r: r, rdb: rdb, ttl: ttl, log: log}
}

func overviewCacheKey(workspaceID uuid.UUID) string {
	return fmt.Sprintf("iris:overview:%s", workspaceID)
}

func (s *overviewService) Snapshot(ctx context.Context, workspaceID uuid.UUID) (*views.Snapshot, error) {
	return s.r.LoadSnapshot(ctx, workspaceID)
}

// Overview serves from cache when possible. Cache failures degrade to a
// direct load; they are logged, never surfaced.
func (s *overviewService) Overview(ctx context.Context, workspaceID uuid.UUID) ([]views.ClientOverview, error) {
	key := overviewCacheKey(workspaceID)

	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var cached []views.ClientOverview
			if uerr := json.Unmarshal(raw, &cached); uerr == nil {
				return cached, nil
			}
			// poisoned entry, fall through and overwrite
		} else if err != redis.Nil {
			s.log.Sugar().Warnw("overview cache read failed", "key", key, "err", err)
		}
	}

	snap, err := s.r.LoadSnapshot(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	rows := views.Overview(snap)

	if s.rdb != nil {
		if raw, merr := json.Marshal(rows); merr == nil {
			if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
				s.log.Sugar().Warnw("overview cache write failed", "key", key, "err", err)
			}
		}
	}
	return rows, nil
}

// Invalidate drops the cached overview after a mutation that changes it.
func (s *overviewService) Invalidate(ctx context.Context, workspaceID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, overviewCacheKey(workspaceID)).Err(); err != nil {
		s.log.Sugar().Warnw("overview cache invalidation failed", "workspace_id", workspaceID, "err", err)
	}
}
