package service

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/model"
	"Balgil/internal/pkg/consts"
	"Balgil/internal/testutil"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestSaveRouteNormalisesInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewRouteService(f.routes, 0)

	cases := []struct {
		name   string
		body   string
		mode   string
		start  dto.Coords
		points int
	}{
		{
			name:   "legacy string coords and stringified points",
			body:   `{"distance":1.5,"duration":900,"mode":"pedestrian","startCoords":"126.97,37.56","endCoords":"126.99,37.57","points":"[[126.97,37.56],[126.99,37.57]]"}`,
			mode:   consts.ModeWalking,
			start:  dto.Coords{126.97, 37.56},
			points: 2,
		},
		{
			name:   "array points derive endpoints",
			body:   `{"distance":0.4,"duration":300,"mode":"wheelchair","points":[[127.0,37.5],[127.01,37.51],[127.02,37.52]]}`,
			mode:   consts.ModeWheelchair,
			start:  dto.Coords{127.0, 37.5},
			points: 3,
		},
		{
			name:  "no mode no points",
			body:  `{"distance":2}`,
			mode:  consts.ModeWalking,
			start: dto.Coords{0, 0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req dto.SaveRouteDTO
			if err := json.Unmarshal([]byte(tc.body), &req); err != nil {
				t.Fatal(err)
			}
			got, err := svc.SaveRoute(ctx, "runner", &req)
			if err != nil {
				t.Fatal(err)
			}
			if got.Mode != tc.mode || got.StartCoords != tc.start || len(got.Points) != tc.points || got.ID == 0 {
				t.Fatalf("route = %+v", got)
			}
		})
	}

	list, err := svc.ListUserRoutes(ctx, "runner")
	if err != nil || len(list) != len(cases) {
		t.Fatalf("ListUserRoutes = %d, %v", len(list), err)
	}
	if u, _ := f.users.GetUserByID(ctx, "runner"); u == nil {
		t.Fatal("saving a route should create the user")
	}
}

func TestSaveRouteRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	svc := NewRouteService(f.routes, 0)
	ctx := context.Background()

	if _, err := svc.SaveRoute(ctx, "u", &dto.SaveRouteDTO{Distance: -1}); !errors.Is(err, ErrParamInvalid) {
		t.Fatalf("negative distance err = %v", err)
	}
	if _, err := svc.SaveRoute(ctx, "u", &dto.SaveRouteDTO{Mode: "teleport"}); !errors.Is(err, ErrParamInvalid) {
		t.Fatalf("unknown mode err = %v", err)
	}
	if _, err := svc.SaveRoute(ctx, "u", &dto.SaveRouteDTO{Points: json.RawMessage(`[[1]]`)}); !errors.Is(err, ErrTrajectoryInvalid) {
		t.Fatalf("short pair err = %v", err)
	}
	if _, err := svc.SaveRoute(ctx, "u", &dto.SaveRouteDTO{Points: json.RawMessage(`"not json"`)}); !errors.Is(err, ErrTrajectoryInvalid) {
		t.Fatalf("bad string err = %v", err)
	}
}

func TestListTrajectoriesBounds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewRouteService(f.routes, 0)

	testutil.SeedRoute(t, ctx, f.db, "a", 1, consts.ModeWalking, base)
	far := &model.Route{UserID: "b", Distance: 1, Mode: consts.ModeVehicle, StartLon: 129.07, StartLat: 35.18, Timestamp: base}
	if err := f.db.Create(far).Error; err != nil {
		t.Fatal(err)
	}

	all, err := svc.ListTrajectories(ctx, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("all = %d, %v", len(all), err)
	}
	seoul, err := svc.ListTrajectories(ctx, "126.9,37.4,127.1,37.7")
	if err != nil || len(seoul) != 1 || seoul[0].UserID != "a" {
		t.Fatalf("seoul = %+v, %v", seoul, err)
	}
	if _, err = svc.ListTrajectories(ctx, "1,2,3"); !errors.Is(err, ErrBoundsInvalid) {
		t.Fatalf("bad bounds err = %v", err)
	}
	if _, err = svc.ListTrajectories(ctx, "127.1,37.4,126.9,37.7"); !errors.Is(err, ErrBoundsInvalid) {
		t.Fatalf("inverted bounds err = %v", err)
	}
}

func TestConsolidateSessions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewRouteService(f.routes, 30*time.Second)

	// minji: T, T+20s | T+51s ; seojun: T, T+5s, T+10s
	testutil.SeedRoute(t, ctx, f.db, "minji", 1, consts.ModeWalking, base)
	testutil.SeedRoute(t, ctx, f.db, "minji", 1.1, consts.ModeWalking, base.Add(20*time.Second))
	testutil.SeedRoute(t, ctx, f.db, "minji", 2, consts.ModeWalking, base.Add(51*time.Second))
	testutil.SeedRoute(t, ctx, f.db, "seojun", 3, consts.ModeVehicle, base)
	testutil.SeedRoute(t, ctx, f.db, "seojun", 3.1, consts.ModeVehicle, base.Add(5*time.Second))
	keep := testutil.SeedRoute(t, ctx, f.db, "seojun", 3.2, consts.ModeVehicle, base.Add(10*time.Second))

	dry, err := svc.ConsolidateSessions(ctx, "", true)
	if err != nil {
		t.Fatal(err)
	}
	if dry.Sessions != 3 || dry.SessionsWithDuplicates != 2 || dry.Deleted != 3 || !dry.DryRun {
		t.Fatalf("dry run = %+v", dry)
	}
	var n int64
	f.db.Model(&model.Route{}).Count(&n)
	if n != 6 {
		t.Fatalf("dry run deleted rows, %d left", n)
	}

	only, err := svc.ConsolidateSessions(ctx, "seojun", false)
	if err != nil || only.Deleted != 2 || only.Sessions != 1 {
		t.Fatalf("seojun = %+v, %v", only, err)
	}
	left, _ := f.routes.ListByUser(ctx, "seojun", 10)
	if len(left) != 1 || left[0].ID != keep.ID {
		t.Fatalf("seojun kept %+v", left)
	}

	first, err := svc.ConsolidateSessions(ctx, "", false)
	if err != nil || first.Deleted != 1 || first.Sessions != 3 {
		t.Fatalf("first run = %+v, %v", first, err)
	}
	minji, _ := f.routes.ListByUser(ctx, "minji", 10)
	if len(minji) != 2 || minji[0].Distance != 2 || minji[1].Distance != 1.1 {
		t.Fatalf("minji kept %+v", minji)
	}

	second, err := svc.ConsolidateSessions(ctx, "", false)
	if err != nil || second.Deleted != 0 || second.SessionsWithDuplicates != 0 || second.Sessions != 3 {
		t.Fatalf("second run = %+v, %v", second, err)
	}
}

func TestNormalizeMode(t *testing.T) {
	cases := map[string]string{
		"":           consts.ModeWalking,
		"pedestrian": consts.ModeWalking,
		"Walking":    consts.ModeWalking,
		"wheelchair": consts.ModeWheelchair,
		"vehicle":    consts.ModeVehicle,
		"bike":       "",
	}
	for in, want := range cases {
		if got := NormalizeMode(in); got != want {
			t.Errorf("NormalizeMode(%q) = %q, want %q", in, got, want)
		}
	}
}
