package service

import (
	"Balgil/internal/pkg/consts"
	"Balgil/internal/pkg/redis"
	"Balgil/internal/testutil"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func newDashboard(f *fixture) DashboardService {
	return NewDashboardService(f.users, f.routes, f.messages, f.comments, f.saved, redis.NewStore(nil))
}

func TestDashboardUnknownUserIsZero(t *testing.T) {
	f := newFixture(t)
	got, err := newDashboard(f).GetDashboard(context.Background(), "ghost")
	if err != nil {
		t.Fatal(err)
	}

	if got.Profile.Level != 1 || got.Profile.Progress != 0 || got.Profile.CurrentPoints != 0 {
		t.Fatalf("profile = %+v", got.Profile)
	}
	if got.Profile.NextLevelPoints == nil || *got.Profile.NextLevelPoints != 100 {
		t.Fatalf("next level = %v", got.Profile.NextLevelPoints)
	}
	if got.Movement.TotalDistance != 0 || got.Movement.RouteCount != 0 || got.Movement.Calories != 0 || got.Movement.Trees != 0 {
		t.Fatalf("movement = %+v", got.Movement)
	}
	if got.Movement.RecentRoutes == nil || len(got.Movement.RecentRoutes) != 0 {
		t.Fatalf("recent routes = %v", got.Movement.RecentRoutes)
	}
	if got.Social.RecentActivity == nil || len(got.Social.RecentActivity) != 0 {
		t.Fatalf("recent activity = %v", got.Social.RecentActivity)
	}
	if got.PointsBreakdown.Total != 0 {
		t.Fatalf("breakdown = %+v", got.PointsBreakdown)
	}

	if u, _ := f.users.GetUserByID(context.Background(), "ghost"); u != nil {
		t.Fatalf("dashboard read created user %+v", u)
	}
}

func TestDashboardExample(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if err := f.users.EnsureUser(ctx, "minji"); err != nil {
		t.Fatal(err)
	}

	testutil.SeedRoute(t, ctx, f.db, "minji", 1.2, consts.ModeWalking, base)
	testutil.SeedRoute(t, ctx, f.db, "minji", 3.4, consts.ModeWheelchair, base.Add(time.Hour))
	testutil.SeedMessage(t, ctx, f.db, "msg_1", "minji", 4, base.Add(2*time.Hour))
	testutil.SeedMessage(t, ctx, f.db, "msg_2", "minji", 6, base.Add(3*time.Hour))
	testutil.SeedMessage(t, ctx, f.db, "msg_other", "seojun", 9, base)
	for i := 0; i < 3; i++ {
		testutil.SeedComment(t, ctx, f.db, fmt.Sprintf("cmt_%d", i), "msg_other", "minji", base.Add(time.Duration(i)*time.Minute))
	}

	got, err := newDashboard(f).GetDashboard(ctx, "minji")
	if err != nil {
		t.Fatal(err)
	}

	b := got.PointsBreakdown
	if b.FromMovement != 46 || b.FromMessages != 100 || b.FromLikes != 50 || b.FromComments != 60 || b.Total != 256 {
		t.Fatalf("breakdown = %+v", b)
	}
	if got.Profile.Level != 2 || got.Profile.Title != "🚶 동네 산책가" || got.Profile.Progress != 0.78 {
		t.Fatalf("profile = %+v", got.Profile)
	}
	if got.Movement.TotalDistance != 4.6 || got.Movement.Calories != 230 || got.Movement.Trees != 0.1 || got.Movement.RouteCount != 2 {
		t.Fatalf("movement = %+v", got.Movement)
	}
	if len(got.Movement.RecentRoutes) != 2 || got.Movement.RecentRoutes[0].Distance != 3.4 {
		t.Fatalf("recent routes = %+v", got.Movement.RecentRoutes)
	}
	if got.Social.MessageCount != 2 || got.Social.CommentCount != 3 || got.Social.LikesReceived != 10 {
		t.Fatalf("social = %+v", got.Social)
	}

	act := got.Social.RecentActivity
	if len(act) != 5 || act[0].ID != "msg_2" || act[0].Coords == nil || act[len(act)-1].ID != "cmt_0" {
		t.Fatalf("activity = %+v", act)
	}

	u, err := f.users.GetUserByID(ctx, "minji")
	if err != nil || u == nil {
		t.Fatalf("user = %v, %v", u, err)
	}
	if u.Points != 256 || u.TotalDistance != 4.6 || u.WalkingDistance != 1.2 || u.WheelchairDistance != 3.4 {
		t.Fatalf("cached stats = %+v", u)
	}
}

func TestDashboardActivityCappedAtTen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i := 0; i < 7; i++ {
		testutil.SeedMessage(t, ctx, f.db, fmt.Sprintf("msg_%d", i), "busy", 0, base.Add(time.Duration(2*i)*time.Minute))
		testutil.SeedComment(t, ctx, f.db, fmt.Sprintf("cmt_%d", i), "msg_0", "busy", base.Add(time.Duration(2*i+1)*time.Minute))
	}

	got, err := newDashboard(f).GetDashboard(ctx, "busy")
	if err != nil {
		t.Fatal(err)
	}
	act := got.Social.RecentActivity
	if len(act) != 10 {
		t.Fatalf("activity len = %d, want 10", len(act))
	}
	for i := 1; i < len(act); i++ {
		if act[i].Timestamp > act[i-1].Timestamp {
			t.Fatalf("activity not sorted desc at %d", i)
		}
	}
	if act[0].ID != "cmt_6" {
		t.Fatalf("latest = %s, want cmt_6", act[0].ID)
	}
}

func TestCaloriesAndTrees(t *testing.T) {
	cases := []struct {
		km       float64
		calories int64
		trees    float64
	}{
		{0, 0, 0},
		{-1, 0, 0},
		{1, 50, 0},
		{31.43, 1572, 1},
		{100, 5000, 3.2},
	}
	for _, tc := range cases {
		if got := Calories(tc.km); got != tc.calories {
			t.Errorf("Calories(%v) = %d, want %d", tc.km, got, tc.calories)
		}
		if got := TreesSaved(tc.km); got != tc.trees {
			t.Errorf("TreesSaved(%v) = %v, want %v", tc.km, got, tc.trees)
		}
	}
}

func TestDashboardWriteThroughLocking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	fake, rdb := testutil.Redis(t)
	svc := NewDashboardService(f.users, f.routes, f.messages, f.comments, f.saved, redis.NewStore(rdb))

	if err := f.users.EnsureUser(ctx, "minji"); err != nil {
		t.Fatal(err)
	}
	testutil.SeedRoute(t, ctx, f.db, "minji", 7, consts.ModeWalking, base)
	lockKey := consts.DashboardLock + "minji"

	storedPoints := func() int64 {
		t.Helper()
		u, err := f.users.GetUserByID(ctx, "minji")
		if err != nil || u == nil {
			t.Fatalf("user = %v, %v", u, err)
		}
		return u.Points
	}

	// 锁被占用: 返回新结果但不回写
	fake.Set(lockKey, "another-replica")
	got, err := svc.GetDashboard(ctx, "minji")
	if err != nil {
		t.Fatal(err)
	}
	if got.PointsBreakdown.Total != 70 {
		t.Fatalf("total = %d, want 70", got.PointsBreakdown.Total)
	}
	if p := storedPoints(); p != 0 {
		t.Fatalf("points written while locked = %d", p)
	}
	if v, _ := fake.Get(lockKey); v != "another-replica" {
		t.Fatalf("foreign lock released, value %q", v)
	}

	// 锁释放后回写, 并释放自己的锁
	fake.Del(lockKey)
	if _, err = svc.GetDashboard(ctx, "minji"); err != nil {
		t.Fatal(err)
	}
	if p := storedPoints(); p != 70 {
		t.Fatalf("points = %d, want 70", p)
	}
	if _, held := fake.Get(lockKey); held {
		t.Fatal("dashboard lock not released")
	}

	// Redis 故障时直接回写
	testutil.SeedRoute(t, ctx, f.db, "minji", 3, consts.ModeWalking, base.Add(time.Hour))
	fake.SetError(errors.New("LOADING redis is loading the dataset in memory"))
	if _, err = svc.GetDashboard(ctx, "minji"); err != nil {
		t.Fatal(err)
	}
	fake.SetError(nil)
	if p := storedPoints(); p != 100 {
		t.Fatalf("points after redis failure = %d, want 100", p)
	}
}
