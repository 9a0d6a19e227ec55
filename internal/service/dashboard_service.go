package service

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/model"
	"Balgil/internal/pkg/consts"
	"Balgil/internal/pkg/points"
	"Balgil/internal/pkg/redis"
	"Balgil/internal/pkg/util"
	"Balgil/internal/repository"
	"context"
	log "log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	kcalPerKm        = 50
	co2SavedPerKm    = 0.21 // kg, 相对同距离驾车
	co2PerTreeYearKg = 6.6

	dashboardLockTTL   = 5 * time.Second
	dashboardLockTries = 3
)

type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (*dto.DashboardDTO, error)
}

type dashboardServiceImpl struct {
	userRepo    repository.UserRepo
	routeRepo   repository.RouteRepo
	messageRepo repository.MessageRepo
	commentRepo repository.CommentRepo
	savedRepo   repository.SavedRepo
	store       *redis.Store
}

func NewDashboardService(
	userRepo repository.UserRepo,
	routeRepo repository.RouteRepo,
	messageRepo repository.MessageRepo,
	commentRepo repository.CommentRepo,
	savedRepo repository.SavedRepo,
	store *redis.Store,
) DashboardService {
	return &dashboardServiceImpl{
		userRepo:    userRepo,
		routeRepo:   routeRepo,
		messageRepo: messageRepo,
		commentRepo: commentRepo,
		savedRepo:   savedRepo,
		store:       store,
	}
}

// dashboardSnapshot 仪表盘所需的全部读取结果
type dashboardSnapshot struct {
	sums           *model.RouteDistanceSums
	recentRoutes   []*model.Route
	messageCount   int64
	commentCount   int64
	savedCount     int64
	likesReceived  int64
	recentMessages []*model.Message
	recentComments []*model.Comment
}

// GetDashboard 重新计算积分, 并回写到用户表缓存字段
func (s *dashboardServiceImpl) GetDashboard(ctx context.Context, userID string) (*dto.DashboardDTO, error) {
	snap, err := s.read(ctx, userID)
	if err != nil {
		return nil, err
	}

	breakdown := points.Compute(points.Activity{
		Distance:      snap.sums.Total,
		Messages:      snap.messageCount,
		LikesReceived: snap.likesReceived,
		Comments:      snap.commentCount,
	})
	level := points.LevelFor(breakdown.Total)

	s.writeThrough(ctx, userID, &repository.UserStats{
		Points:             breakdown.Total,
		TotalDistance:      util.Round(snap.sums.Total, 2),
		WalkingDistance:    util.Round(snap.sums.Walking, 2),
		WheelchairDistance: util.Round(snap.sums.Wheelchair, 2),
		VehicleDistance:    util.Round(snap.sums.Vehicle, 2),
	})

	return &dto.DashboardDTO{
		Profile: dto.DashboardProfileDTO{
			ID:              userID,
			Level:           level.Level,
			Title:           level.Title,
			CurrentPoints:   level.CurrentPoints,
			NextLevelPoints: level.NextLevelPoints,
			Progress:        points.RoundProgress(level.Progress),
		},
		Movement: dto.MovementDTO{
			TotalDistance: util.Round(snap.sums.Total, 2),
			TotalDuration: snap.sums.TotalDuration,
			Calories:      Calories(snap.sums.Total),
			Trees:         TreesSaved(snap.sums.Total),
			RouteCount:    snap.sums.Count,
			RecentRoutes:  toRouteDTOs(snap.recentRoutes),
		},
		Social: dto.SocialDTO{
			MessageCount:   snap.messageCount,
			CommentCount:   snap.commentCount,
			LikesReceived:  snap.likesReceived,
			SavedCount:     snap.savedCount,
			RecentActivity: mergeActivity(snap.recentMessages, snap.recentComments, consts.RecentActivityLimit),
		},
		PointsBreakdown: breakdown,
	}, nil
}

func (s *dashboardServiceImpl) read(ctx context.Context, userID string) (*dashboardSnapshot, error) {
	snap := &dashboardSnapshot{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.sums, err = s.routeRepo.SumByUser(gCtx, userID)
		return
	})
	g.Go(func() (err error) {
		snap.recentRoutes, err = s.routeRepo.ListByUser(gCtx, userID, consts.RecentRouteLimit)
		return
	})
	g.Go(func() (err error) {
		snap.messageCount, err = s.messageRepo.CountByUser(gCtx, userID)
		return
	})
	g.Go(func() (err error) {
		snap.likesReceived, err = s.messageRepo.SumLikesByUser(gCtx, userID)
		return
	})
	g.Go(func() (err error) {
		snap.commentCount, err = s.commentRepo.CountByUser(gCtx, userID)
		return
	})
	g.Go(func() (err error) {
		snap.savedCount, err = s.savedRepo.CountByUser(gCtx, userID)
		return
	})
	g.Go(func() (err error) {
		snap.recentMessages, err = s.messageRepo.ListMessagesByUser(gCtx, userID, consts.RecentActivityEach)
		return
	})
	g.Go(func() (err error) {
		snap.recentComments, err = s.commentRepo.ListByUser(gCtx, userID, consts.RecentActivityEach)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// writeThrough 按用户加锁回写缓存; 拿不到锁时跳过, 下次读取会收敛
func (s *dashboardServiceImpl) writeThrough(ctx context.Context, userID string, stats *repository.UserStats) {
	lockKey := consts.DashboardLock + userID
	token := uuid.NewString()

	ok, err := s.store.TryLock(ctx, lockKey, token, dashboardLockTTL, dashboardLockTries)
	if err != nil {
		// Redis 故障时直接写, 与未启用 Redis 时一致
		log.WarnContext(ctx, "dashboard lock unavailable, writing without it", "user", userID, "err", err)
		ok = true
		token = ""
	}
	if !ok {
		log.InfoContext(ctx, "dashboard write-through skipped, lock held", "user", userID)
		return
	}
	if token != "" {
		defer s.store.UnLock(context.WithoutCancel(ctx), lockKey, token)
	}

	if err = s.userRepo.UpdateStats(ctx, userID, stats); err != nil {
		log.ErrorContext(ctx, "dashboard write-through failed", "user", userID, "err", err)
	}
}

// Calories kcal, 四舍五入到整数
func Calories(distanceKm float64) int64 {
	if distanceKm <= 0 || math.IsNaN(distanceKm) {
		return 0
	}
	return int64(math.Round(distanceKm * kcalPerKm))
}

// TreesSaved 相当于多少棵树一年的 CO₂ 吸收量, 保留一位小数
func TreesSaved(distanceKm float64) float64 {
	if distanceKm <= 0 || math.IsNaN(distanceKm) {
		return 0
	}
	return util.Round(distanceKm*co2SavedPerKm/co2PerTreeYearKg, 1)
}

func mergeActivity(msgs []*model.Message, comments []*model.Comment, limit int) []*dto.ActivityDTO {
	type item struct {
		at    time.Time
		entry *dto.ActivityDTO
	}
	items := make([]item, 0, len(msgs)+len(comments))
	for _, m := range msgs {
		coords := dto.Coords{m.CoordX, m.CoordY}
		items = append(items, item{at: m.Timestamp, entry: &dto.ActivityDTO{
			Type:      consts.ActivityTypeMessage,
			ID:        m.ID,
			Text:      m.Text,
			Timestamp: util.UnixMilli(m.Timestamp),
			Coords:    &coords,
		}})
	}
	for _, c := range comments {
		items = append(items, item{at: c.Timestamp, entry: &dto.ActivityDTO{
			Type:      consts.ActivityTypeComment,
			ID:        c.ID,
			Text:      c.Text,
			Timestamp: util.UnixMilli(c.Timestamp),
		}})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].at.After(items[j].at)
	})
	if len(items) > limit {
		items = items[:limit]
	}

	out := make([]*dto.ActivityDTO, 0, len(items))
	for _, it := range items {
		out = append(out, it.entry)
	}
	return out
}
