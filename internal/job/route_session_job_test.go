package job

import (
	"Balgil/internal/model"
	"Balgil/internal/pkg/consts"
	"Balgil/internal/pkg/redis"
	"Balgil/internal/repository"
	"Balgil/internal/service"
	"Balgil/internal/testutil"
	"context"
	"testing"
	"time"
)

func TestRouteSessionJobRun(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	t0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	testutil.SeedRoute(t, ctx, db, "minji", 1, consts.ModeWalking, t0)
	testutil.SeedRoute(t, ctx, db, "minji", 1.2, consts.ModeWalking, t0.Add(10*time.Second))
	testutil.SeedRoute(t, ctx, db, "minji", 1.4, consts.ModeWalking, t0.Add(20*time.Second))
	testutil.SeedRoute(t, ctx, db, "seojun", 5, consts.ModeVehicle, t0)

	j := NewRouteSessionJob(service.NewRouteService(repository.NewRouteRepo(db), 30*time.Second), redis.NewStore(nil))
	j.Run()
	j.Run()

	var routes []*model.Route
	if err := db.Order("user_id").Find(&routes).Error; err != nil {
		t.Fatal(err)
	}
	if len(routes) != 2 || routes[0].Distance != 1.4 || routes[1].UserID != "seojun" {
		t.Fatalf("routes after job = %+v", routes)
	}
}
