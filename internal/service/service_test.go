package service

import (
	"Balgil/internal/repository"
	"Balgil/internal/testutil"
	"testing"
	"time"

	"gorm.io/gorm"
)

var base = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	users    repository.UserRepo
	messages repository.MessageRepo
	comments repository.CommentRepo
	votes    repository.VoteRepo
	saved    repository.SavedRepo
	routes   repository.RouteRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	return &fixture{
		db:       db,
		users:    repository.NewUserRepo(db),
		messages: repository.NewMessageRepo(db),
		comments: repository.NewCommentRepo(db),
		votes:    repository.NewVoteRepo(db),
		saved:    repository.NewSavedRepo(db),
		routes:   repository.NewRouteRepo(db),
	}
}
