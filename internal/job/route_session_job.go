package job

import (
	"Balgil/internal/pkg/consts"
	"Balgil/internal/pkg/logger"
	"Balgil/internal/pkg/redis"
	"Balgil/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const routeSessionLockTTL = 10 * time.Minute

// RouteSessionJob 定期合并所有用户 30 秒内的重复路线
type RouteSessionJob struct {
	routeSvc service.RouteService
	store    *redis.Store
	timeout  time.Duration
}

func NewRouteSessionJob(routeSvc service.RouteService, store *redis.Store) *RouteSessionJob {
	return &RouteSessionJob{routeSvc: routeSvc, store: store, timeout: routeSessionLockTTL}
}

func (s *RouteSessionJob) Run() {
	ctx, cancel := context.WithTimeout(logger.WithTraceID(context.Background(), "cron-route"), s.timeout)
	defer cancel()

	// 多副本部署时只允许一个实例执行
	token := uuid.NewString()
	ok, err := s.store.TryLock(ctx, consts.RouteConsolidateLock, token, routeSessionLockTTL, 1)
	if err != nil {
		log.ErrorContext(ctx, "route session job lock failed", "err", err)
		return
	}
	if !ok {
		log.InfoContext(ctx, "route session job already running elsewhere")
		return
	}
	defer s.store.UnLock(context.WithoutCancel(ctx), consts.RouteConsolidateLock, token)

	start := time.Now()
	report, err := s.routeSvc.ConsolidateSessions(ctx, "", false)
	if err != nil {
		log.ErrorContext(ctx, "route session job failed", "err", err)
		return
	}
	log.InfoContext(ctx, "route session job finished",
		"deleted", report.Deleted,
		"sessions", report.Sessions,
		"cost", time.Since(start),
	)
}
