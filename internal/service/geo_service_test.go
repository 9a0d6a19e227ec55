package service

import (
	"Balgil/internal/pkg/kakao"
	"Balgil/internal/pkg/redis"
	"Balgil/internal/testutil"
	"context"
	"errors"
	"testing"
	"time"
)

type fakeGeo struct {
	reverseCalls int
	status       int
}

func (f *fakeGeo) SearchKeyword(_ context.Context, query string) (*kakao.Result, error) {
	return &kakao.Result{StatusCode: 200, Body: []byte(`{"query":"` + query + `"}`)}, nil
}

func (f *fakeGeo) CoordToAddress(_ context.Context, x, y string) (*kakao.Result, error) {
	f.reverseCalls++
	return &kakao.Result{StatusCode: f.status, Body: []byte(`{"x":"` + x + `","y":"` + y + `"}`)}, nil
}

func TestGeoServiceValidates(t *testing.T) {
	svc := NewGeoService(&fakeGeo{status: 200}, redis.NewStore(nil), time.Hour)
	ctx := context.Background()

	if _, err := svc.Search(ctx, ""); !errors.Is(err, ErrParamInvalid) {
		t.Fatalf("search err = %v", err)
	}
	if _, err := svc.ReverseGeo(ctx, "127.0", ""); !errors.Is(err, ErrParamInvalid) {
		t.Fatalf("reverse err = %v", err)
	}

	res, err := svc.Search(ctx, "서울숲")
	if err != nil || res.StatusCode != 200 || string(res.Body) != `{"query":"서울숲"}` {
		t.Fatalf("search = %+v, %v", res, err)
	}
}

func TestGeoServicePassesThroughWithoutCache(t *testing.T) {
	provider := &fakeGeo{status: 401}
	svc := NewGeoService(provider, redis.NewStore(nil), time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := svc.ReverseGeo(ctx, "127.04", "37.54")
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != 401 || string(res.Body) != `{"x":"127.04","y":"37.54"}` {
			t.Fatalf("result = %d %s", res.StatusCode, res.Body)
		}
	}
	if provider.reverseCalls != 2 {
		t.Fatalf("provider calls = %d, want 2", provider.reverseCalls)
	}
}

func TestGeoServiceCachesByParsedCoords(t *testing.T) {
	fake, rdb := testutil.Redis(t)
	provider := &fakeGeo{status: 200}
	svc := NewGeoService(provider, redis.NewStore(rdb), time.Hour)
	ctx := context.Background()

	first, err := svc.ReverseGeo(ctx, "127.040", "37.54")
	if err != nil {
		t.Fatal(err)
	}
	again, err := svc.ReverseGeo(ctx, " 127.04", "37.540")
	if err != nil {
		t.Fatal(err)
	}
	if provider.reverseCalls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.reverseCalls)
	}
	if again.StatusCode != 200 || string(again.Body) != string(first.Body) {
		t.Fatalf("cached = %d %s, want %s", again.StatusCode, again.Body, first.Body)
	}
	if _, ok := fake.Get("geo:reverse:127.04,37.54"); !ok {
		t.Fatalf("cache keys = %v", fake.Keys())
	}

	// 无法解析的坐标直接透传, 不写缓存
	for i := 0; i < 2; i++ {
		if _, err = svc.ReverseGeo(ctx, "abc", "37.54"); err != nil {
			t.Fatal(err)
		}
	}
	if provider.reverseCalls != 3 {
		t.Fatalf("provider calls = %d, want 3", provider.reverseCalls)
	}
	if keys := fake.Keys(); len(keys) != 1 {
		t.Fatalf("cache keys = %v", keys)
	}
}
