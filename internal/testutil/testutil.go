package testutil

import (
	"Balgil/internal/api/config"
	"Balgil/internal/model"
	"Balgil/internal/pkg/database"
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"gorm.io/gorm"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// DB opens a private in-memory SQLite database with the schema migrated
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", unsafeName.ReplaceAllString(tb.Name(), "_"), time.Now().UnixNano())
	db, err := database.NewGormDB(&config.DBConfig{
		Driver:      database.DriverSQLite,
		DSN:         dsn,
		MaxIdle:     1,
		MaxOpen:     1,
		MaxLifetime: 60,
		AutoMigrate: true,
	})
	if err != nil {
		tb.Fatalf("failed to init test db: %v", err)
	}

	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func SeedMessage(tb testing.TB, ctx context.Context, db *gorm.DB, id, userID string, likes int, ts time.Time) *model.Message {
	tb.Helper()
	msg := &model.Message{
		ID:        id,
		UserID:    userID,
		Text:      "note " + id,
		CoordX:    126.97,
		CoordY:    37.56,
		Likes:     likes,
		Timestamp: ts,
	}
	if err := db.WithContext(ctx).Create(msg).Error; err != nil {
		tb.Fatalf("seed message: %v", err)
	}
	return msg
}

func SeedComment(tb testing.TB, ctx context.Context, db *gorm.DB, id, messageID, userID string, ts time.Time) *model.Comment {
	tb.Helper()
	c := &model.Comment{ID: id, MessageID: messageID, UserID: userID, Text: "reply " + id, Timestamp: ts}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed comment: %v", err)
	}
	return c
}

func SeedRoute(tb testing.TB, ctx context.Context, db *gorm.DB, userID string, distance float64, mode string, ts time.Time) *model.Route {
	tb.Helper()
	r := &model.Route{
		UserID:    userID,
		Distance:  distance,
		Duration:  int64(distance * 720),
		Mode:      mode,
		StartLon:  126.97,
		StartLat:  37.56,
		EndLon:    126.98,
		EndLat:    37.57,
		Timestamp: ts,
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed route: %v", err)
	}
	return r
}
