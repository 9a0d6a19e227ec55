package service

import (
	"Balgil/internal/pkg/consts"
	"Balgil/internal/pkg/kakao"
	"Balgil/internal/pkg/redis"
	"Balgil/internal/pkg/util"
	"context"
	log "log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// GeoProvider 由 *kakao.Client 实现
type GeoProvider interface {
	SearchKeyword(ctx context.Context, query string) (*kakao.Result, error)
	CoordToAddress(ctx context.Context, x, y string) (*kakao.Result, error)
}

type GeoService interface {
	Search(ctx context.Context, query string) (*kakao.Result, error)
	ReverseGeo(ctx context.Context, x, y string) (*kakao.Result, error)
}

type geoServiceImpl struct {
	provider GeoProvider
	store    *redis.Store
	cacheTTL time.Duration
}

func NewGeoService(provider GeoProvider, store *redis.Store, cacheTTL time.Duration) GeoService {
	return &geoServiceImpl{provider: provider, store: store, cacheTTL: cacheTTL}
}

type cachedGeo struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

func (s *geoServiceImpl) Search(ctx context.Context, query string) (*kakao.Result, error) {
	if query == "" {
		return nil, ErrParamInvalid
	}
	return s.provider.SearchKeyword(ctx, query)
}

// ReverseGeo 成功结果缓存 cacheTTL, 命中时返回相同的响应体
func (s *geoServiceImpl) ReverseGeo(ctx context.Context, x, y string) (*kakao.Result, error) {
	if x == "" || y == "" {
		return nil, ErrParamInvalid
	}

	key, cacheable := reverseGeoKey(x, y)
	cacheable = cacheable && s.cacheTTL > 0
	if cacheable {
		if hit := s.fromCache(ctx, key); hit != nil {
			return hit, nil
		}
	}

	res, err := s.provider.CoordToAddress(ctx, x, y)
	if err != nil {
		return nil, err
	}

	if cacheable && res.StatusCode == http.StatusOK {
		payload, err := json.Marshal(&cachedGeo{Status: res.StatusCode, Body: string(res.Body)})
		if err == nil {
			err = s.store.SetWithExpiration(ctx, key, payload, s.cacheTTL)
		}
		if err != nil {
			log.WarnContext(ctx, "reverse geo cache write failed", "key", key, "err", err)
		}
	}
	return res, nil
}

// reverseGeoKey 用解析后的坐标生成缓存键, 无法解析的输入不缓存
func reverseGeoKey(x, y string) (string, bool) {
	lon, err := util.ParseFloatList(x, 1)
	if err != nil {
		return "", false
	}
	lat, err := util.ParseFloatList(y, 1)
	if err != nil {
		return "", false
	}
	return consts.ReverseGeoKey + strconv.FormatFloat(lon[0], 'f', -1, 64) + "," + strconv.FormatFloat(lat[0], 'f', -1, 64), true
}

func (s *geoServiceImpl) fromCache(ctx context.Context, key string) *kakao.Result {
	raw, err := s.store.GetValue(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "reverse geo cache read failed", "key", key, "err", err)
		return nil
	}
	if raw == "" {
		return nil
	}

	var c cachedGeo
	if err = json.Unmarshal([]byte(raw), &c); err != nil {
		return nil
	}
	return &kakao.Result{StatusCode: c.Status, Body: []byte(c.Body)}
}
