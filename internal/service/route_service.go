package service

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/model"
	"Balgil/internal/pkg/consts"
	"Balgil/internal/pkg/session"
	"Balgil/internal/pkg/util"
	"Balgil/internal/repository"
	"bytes"
	"context"
	log "log/slog"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type RouteService interface {
	SaveRoute(ctx context.Context, userID string, req *dto.SaveRouteDTO) (*dto.RouteDTO, error)
	ListUserRoutes(ctx context.Context, userID string) ([]*dto.RouteDTO, error)
	ListTrajectories(ctx context.Context, bounds string) ([]*dto.RouteDTO, error)
	ConsolidateSessions(ctx context.Context, userID string, dryRun bool) (*dto.ConsolidateReportDTO, error)
}

type routeServiceImpl struct {
	routeRepo repository.RouteRepo
	gap       time.Duration
	now       func() time.Time
}

// NewRouteService gap 小于等于 0 时使用默认 30 秒
func NewRouteService(routeRepo repository.RouteRepo, gap time.Duration) RouteService {
	if gap <= 0 {
		gap = session.DefaultGap
	}
	return &routeServiceImpl{
		routeRepo: routeRepo,
		gap:       gap,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// NormalizeMode 旧客户端的 pedestrian 与空值视为 walking
func NormalizeMode(mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", consts.ModePedestrian, consts.ModeWalking:
		return consts.ModeWalking
	case consts.ModeWheelchair:
		return consts.ModeWheelchair
	case consts.ModeVehicle:
		return consts.ModeVehicle
	}
	return ""
}

func (s *routeServiceImpl) SaveRoute(ctx context.Context, userID string, req *dto.SaveRouteDTO) (*dto.RouteDTO, error) {
	if strings.TrimSpace(userID) == "" || req.Distance < 0 || req.Duration < 0 ||
		math.IsNaN(req.Distance) || math.IsInf(req.Distance, 0) {
		return nil, ErrParamInvalid
	}
	mode := NormalizeMode(req.Mode)
	if mode == "" {
		return nil, ErrParamInvalid
	}

	trajectory, err := parseTrajectory(req.Points)
	if err != nil {
		return nil, err
	}

	route := &model.Route{
		UserID:     userID,
		Distance:   req.Distance,
		Duration:   req.Duration,
		Mode:       mode,
		PointsJSON: trajectory,
		Timestamp:  s.now(),
	}
	switch {
	case req.StartCoords != nil:
		route.StartLon, route.StartLat = req.StartCoords.Lon(), req.StartCoords.Lat()
	case len(trajectory) > 0:
		route.StartLon, route.StartLat = trajectory[0][0], trajectory[0][1]
	}
	switch {
	case req.EndCoords != nil:
		route.EndLon, route.EndLat = req.EndCoords.Lon(), req.EndCoords.Lat()
	case len(trajectory) > 0:
		last := trajectory[len(trajectory)-1]
		route.EndLon, route.EndLat = last[0], last[1]
	}

	if err = s.routeRepo.CreateRoute(ctx, route); err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "route saved", "user", userID, "id", route.ID, "distance", route.Distance, "mode", mode)
	return toRouteDTO(route), nil
}

func (s *routeServiceImpl) ListUserRoutes(ctx context.Context, userID string) ([]*dto.RouteDTO, error) {
	routes, err := s.routeRepo.ListByUser(ctx, userID, consts.UserListLimit)
	if err != nil {
		return nil, err
	}
	return toRouteDTOs(routes), nil
}

// ListTrajectories bounds 格式 minLon,minLat,maxLon,maxLat, 按起点过滤
func (s *routeServiceImpl) ListTrajectories(ctx context.Context, bounds string) ([]*dto.RouteDTO, error) {
	var rb *repository.RouteBounds
	if strings.TrimSpace(bounds) != "" {
		v, err := util.ParseFloatList(bounds, 4)
		if err != nil || v[0] > v[2] || v[1] > v[3] {
			return nil, ErrBoundsInvalid
		}
		rb = &repository.RouteBounds{MinLon: v[0], MinLat: v[1], MaxLon: v[2], MaxLat: v[3]}
	}

	routes, err := s.routeRepo.ListRecent(ctx, rb, consts.TrajectoryListLimit)
	if err != nil {
		return nil, err
	}
	return toRouteDTOs(routes), nil
}

// ConsolidateSessions 对 userID (为空表示全部用户) 的路线做会话去重
func (s *routeServiceImpl) ConsolidateSessions(ctx context.Context, userID string, dryRun bool) (*dto.ConsolidateReportDTO, error) {
	var report session.Report

	if dryRun {
		routes, err := s.routeRepo.ListForConsolidation(ctx, userID)
		if err != nil {
			return nil, err
		}
		report = session.Build(toSessionRecords(routes), s.gap).Report()
	} else {
		deleted, err := s.routeRepo.Consolidate(ctx, userID, func(routes []*model.Route) []uint64 {
			plan := session.Build(toSessionRecords(routes), s.gap)
			report = plan.Report()
			return plan.Deletions()
		})
		if err != nil {
			log.ErrorContext(ctx, "route consolidation rolled back", "user", userID, "err", err)
			return nil, err
		}
		if int(deleted) != report.Deleted {
			log.WarnContext(ctx, "route consolidation deleted count differs from plan", "planned", report.Deleted, "deleted", deleted)
			report.Deleted = int(deleted)
		}
	}

	log.InfoContext(ctx, "route sessions consolidated",
		"user", userID,
		"dry_run", dryRun,
		"sessions", report.Sessions,
		"sessions_with_duplicates", report.SessionsWithDuplicates,
		"deleted", report.Deleted,
	)
	return &dto.ConsolidateReportDTO{
		Sessions:               report.Sessions,
		SessionsWithDuplicates: report.SessionsWithDuplicates,
		Deleted:                report.Deleted,
		DryRun:                 dryRun,
	}, nil
}

func toSessionRecords(routes []*model.Route) []session.Record {
	records := make([]session.Record, 0, len(routes))
	for _, r := range routes {
		records = append(records, session.Record{ID: r.ID, UserID: r.UserID, Timestamp: r.Timestamp})
	}
	return records
}

// parseTrajectory 接受 [lon, lat] 数组, 或编码为 JSON 字符串的同一数组
func parseTrajectory(raw json.RawMessage) (model.Trajectory, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, ErrTrajectoryInvalid
		}
		inner = strings.TrimSpace(inner)
		if inner == "" {
			return nil, nil
		}
		raw = json.RawMessage(inner)
	}

	var pairs [][]float64
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, ErrTrajectoryInvalid
	}
	out := make(model.Trajectory, 0, len(pairs))
	for _, p := range pairs {
		if len(p) < 2 || math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return nil, ErrTrajectoryInvalid
		}
		out = append(out, [2]float64{p[0], p[1]})
	}
	return out, nil
}
