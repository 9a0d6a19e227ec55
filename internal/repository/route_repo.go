package repository

import (
	"Balgil/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const deleteBatchSize = 500

// RouteBounds 轨迹列表按起点过滤
type RouteBounds struct {
	MinLon, MinLat float64
	MaxLon, MaxLat float64
}

type RouteRepo interface {
	CreateRoute(ctx context.Context, route *model.Route) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.Route, error)
	ListRecent(ctx context.Context, bounds *RouteBounds, limit int) ([]*model.Route, error)
	SumByUser(ctx context.Context, userID string) (*model.RouteDistanceSums, error)
	ListForConsolidation(ctx context.Context, userID string) ([]*model.Route, error)
	Consolidate(ctx context.Context, userID string, plan func([]*model.Route) []uint64) (int64, error)
}

type RouteRepoImpl struct {
	db *gorm.DB
}

func NewRouteRepo(db *gorm.DB) RouteRepo {
	return &RouteRepoImpl{db: db}
}

func (s *RouteRepoImpl) CreateRoute(ctx context.Context, route *model.Route) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUser(tx, route.UserID); err != nil {
			return err
		}
		return errors.Wrap(tx.Create(route).Error, "create route")
	})
}

func (s *RouteRepoImpl) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Route, error) {
	routes := make([]*model.Route, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&routes).Error
	return routes, errors.Wrap(err, "list user routes")
}

func (s *RouteRepoImpl) ListRecent(ctx context.Context, bounds *RouteBounds, limit int) ([]*model.Route, error) {
	routes := make([]*model.Route, 0)
	query := s.db.WithContext(ctx).Model(&model.Route{})
	if bounds != nil {
		query = query.
			Where("start_lon BETWEEN ? AND ?", bounds.MinLon, bounds.MaxLon).
			Where("start_lat BETWEEN ? AND ?", bounds.MinLat, bounds.MaxLat)
	}
	err := query.
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&routes).Error
	return routes, errors.Wrap(err, "list trajectories")
}

// SumByUser 汇总总距离、各出行方式距离与总时长
func (s *RouteRepoImpl) SumByUser(ctx context.Context, userID string) (*model.RouteDistanceSums, error) {
	sums := &model.RouteDistanceSums{}
	err := s.db.WithContext(ctx).Model(&model.Route{}).
		Select(`COALESCE(SUM(distance), 0) AS total,
			COALESCE(SUM(CASE WHEN mode IN ('walking', 'pedestrian', '') THEN distance ELSE 0 END), 0) AS walking,
			COALESCE(SUM(CASE WHEN mode = 'wheelchair' THEN distance ELSE 0 END), 0) AS wheelchair,
			COALESCE(SUM(CASE WHEN mode = 'vehicle' THEN distance ELSE 0 END), 0) AS vehicle,
			COALESCE(SUM(duration), 0) AS total_duration,
			COUNT(*) AS count`).
		Where("user_id = ?", userID).
		Scan(sums).Error
	if err != nil {
		return nil, errors.Wrap(err, "sum user routes")
	}
	return sums, nil
}

// ListForConsolidation 只取去重所需字段, userID 为空时取全部用户
func (s *RouteRepoImpl) ListForConsolidation(ctx context.Context, userID string) ([]*model.Route, error) {
	return listForConsolidation(s.db.WithContext(ctx), userID)
}

func listForConsolidation(tx *gorm.DB, userID string) ([]*model.Route, error) {
	routes := make([]*model.Route, 0)
	query := tx.Model(&model.Route{}).Select("id", "user_id", "timestamp")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	err := query.
		Order("user_id ASC").
		Order("timestamp ASC").
		Order("id ASC").
		Find(&routes).Error
	return routes, errors.Wrap(err, "list routes for consolidation")
}

// Consolidate 在同一事务中读取快照并删除 plan 选出的 id, 任一批失败则全部回滚
func (s *RouteRepoImpl) Consolidate(ctx context.Context, userID string, plan func([]*model.Route) []uint64) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		routes, err := listForConsolidation(tx, userID)
		if err != nil {
			return err
		}

		ids := plan(routes)
		for start := 0; start < len(ids); start += deleteBatchSize {
			end := start + deleteBatchSize
			if end > len(ids) {
				end = len(ids)
			}
			result := tx.Where("id IN ?", ids[start:end]).Delete(&model.Route{})
			if result.Error != nil {
				return errors.Wrap(result.Error, "delete superseded routes")
			}
			deleted += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
