package service

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/model"
	"Balgil/internal/testutil"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func newMessageServices(f *fixture) (MessageService, CommentService, SavedService) {
	return NewMessageService(f.messages, f.comments, f.votes, f.saved),
		NewCommentService(f.comments, f.messages),
		NewSavedService(f.saved, f.messages, f.comments)
}

func TestCreateMessageDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	messages, _, _ := newMessageServices(f)

	long := strings.Repeat("길", 200) + " #산책 #서울숲"
	got, err := messages.CreateMessage(ctx, &dto.CreateMessageDTO{Text: "  " + long, Coords: &dto.Coords{127.04, 37.54}})
	if err != nil {
		t.Fatal(err)
	}
	if got.UserID != AnonymousUser || !strings.HasPrefix(got.ID, "msg_") {
		t.Fatalf("message = %+v", got)
	}
	if n := utf8.RuneCountInString(got.Text); n != 140 {
		t.Fatalf("text runes = %d, want 140", n)
	}
	if got.Tags != "산책 서울숲" {
		t.Fatalf("tags = %q", got.Tags)
	}
	if got.Coords != (dto.Coords{127.04, 37.54}) || got.Timestamp == 0 {
		t.Fatalf("coords/timestamp = %v %d", got.Coords, got.Timestamp)
	}

	if _, err = messages.CreateMessage(ctx, &dto.CreateMessageDTO{Text: "   ", Coords: &dto.Coords{1, 1}}); !errors.Is(err, ErrParamInvalid) {
		t.Fatalf("blank text err = %v", err)
	}
}

func TestListMessagesBoundingBox(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	messages, _, _ := newMessageServices(f)

	testutil.SeedMessage(t, ctx, f.db, "msg_seoul", "a", 1, base)
	busan := &model.Message{ID: "msg_busan", UserID: "b", Text: "바다", CoordX: 129.07, CoordY: 35.18, Likes: 9, Timestamp: base}
	if err := f.db.Create(busan).Error; err != nil {
		t.Fatal(err)
	}
	testutil.SeedComment(t, ctx, f.db, "cmt_1", "msg_seoul", "c", base)

	all, err := messages.ListMessages(ctx, &dto.MessageListQuery{})
	if err != nil || len(all) != 2 || all[0].ID != "msg_busan" {
		t.Fatalf("all = %+v, %v", all, err)
	}

	minX, maxX, minY, maxY := 126.9, 127.1, 37.4, 37.7
	box, err := messages.ListMessages(ctx, &dto.MessageListQuery{MinX: &minX, MaxX: &maxX, MinY: &minY, MaxY: &maxY})
	if err != nil || len(box) != 1 || box[0].ID != "msg_seoul" || box[0].CommentCount != 1 {
		t.Fatalf("box = %+v, %v", box, err)
	}

	// a partial box is ignored
	partial, err := messages.ListMessages(ctx, &dto.MessageListQuery{MinX: &minX})
	if err != nil || len(partial) != 2 {
		t.Fatalf("partial = %d, %v", len(partial), err)
	}
}

func TestGetByAddressFallsBackToBase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	messages, _, _ := newMessageServices(f)

	for _, m := range []*model.Message{
		{ID: "msg_1", UserID: "a", Text: "1", Address: "서울 성동구 성수동1가 685", AddressBase: "서울 성동구 성수동1가", Likes: 1, Timestamp: base},
		{ID: "msg_2", UserID: "a", Text: "2", Address: "서울 성동구 성수동1가 700", AddressBase: "서울 성동구 성수동1가", Likes: 5, Timestamp: base},
	} {
		if err := f.db.Create(m).Error; err != nil {
			t.Fatal(err)
		}
	}

	exact, err := messages.GetByAddress(ctx, &dto.AddressQuery{Address: "서울 성동구 성수동1가 685", AddressBase: "서울 성동구 성수동1가"})
	if err != nil || exact == nil || exact.ID != "msg_1" {
		t.Fatalf("exact = %+v, %v", exact, err)
	}
	fallback, err := messages.GetByAddress(ctx, &dto.AddressQuery{Address: "서울 성동구 성수동1가 1", AddressBase: "서울 성동구 성수동1가"})
	if err != nil || fallback == nil || fallback.ID != "msg_2" {
		t.Fatalf("fallback = %+v, %v", fallback, err)
	}
	none, err := messages.GetByAddress(ctx, &dto.AddressQuery{Address: "부산"})
	if err != nil || none != nil {
		t.Fatalf("none = %+v, %v", none, err)
	}
	if _, err = messages.GetByAddress(ctx, &dto.AddressQuery{}); !errors.Is(err, ErrParamInvalid) {
		t.Fatalf("empty query err = %v", err)
	}
}

func TestMessageOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	messages, comments, saved := newMessageServices(f)

	testutil.SeedMessage(t, ctx, f.db, "msg_1", "owner", 0, base)

	if _, err := messages.UpdateMessage(ctx, "msg_1", &dto.UpdateMessageDTO{UserID: "intruder", Text: "x"}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("update by other err = %v", err)
	}
	if _, err := messages.UpdateMessage(ctx, "msg_1", &dto.UpdateMessageDTO{Text: "x"}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("update without user err = %v", err)
	}
	if _, err := messages.UpdateMessage(ctx, "msg_nope", &dto.UpdateMessageDTO{UserID: "owner", Text: "x"}); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("update missing err = %v", err)
	}

	updated, err := messages.UpdateMessage(ctx, "msg_1", &dto.UpdateMessageDTO{UserID: "owner", Text: "고친 글"})
	if err != nil || updated.Text != "고친 글" || !updated.Edited {
		t.Fatalf("update = %+v, %v", updated, err)
	}

	c, err := comments.AddComment(ctx, "msg_1", &dto.CreateCommentDTO{UserID: "friend", Text: "좋아요"})
	if err != nil {
		t.Fatal(err)
	}
	if err = comments.DeleteComment(ctx, c.ID, "owner"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("delete comment by other err = %v", err)
	}
	if _, err = saved.SaveMessage(ctx, "msg_1", "friend"); err != nil {
		t.Fatal(err)
	}

	if err = messages.DeleteMessage(ctx, "msg_1", "friend"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("delete by other err = %v", err)
	}
	if err = messages.DeleteMessage(ctx, "msg_1", "owner"); err != nil {
		t.Fatal(err)
	}
	if _, err = messages.GetDetail(ctx, "msg_1", ""); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("detail after delete err = %v", err)
	}
	var orphans int64
	f.db.Model(&model.Comment{}).Where("message_id = ?", "msg_1").Count(&orphans)
	if orphans != 0 {
		t.Fatalf("comments left = %d", orphans)
	}
	if list, _ := saved.ListSaved(ctx, "friend"); len(list) != 0 {
		t.Fatalf("saved left = %d", len(list))
	}
}

func TestCommentLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, comments, _ := newMessageServices(f)
	testutil.SeedMessage(t, ctx, f.db, "msg_1", "owner", 0, base)

	if _, err := comments.AddComment(ctx, "msg_nope", &dto.CreateCommentDTO{Text: "hi"}); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("missing message err = %v", err)
	}
	if _, err := comments.AddComment(ctx, "msg_1", &dto.CreateCommentDTO{Text: " "}); !errors.Is(err, ErrParamInvalid) {
		t.Fatalf("blank err = %v", err)
	}

	c, err := comments.AddComment(ctx, "msg_1", &dto.CreateCommentDTO{UserID: "friend", Text: strings.Repeat("a", 250)})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(c.ID, "cmt_") || len(c.Text) != 200 {
		t.Fatalf("comment = %s %d", c.ID, len(c.Text))
	}
	anon, err := comments.AddComment(ctx, "msg_1", &dto.CreateCommentDTO{Text: "누구게"})
	if err != nil || anon.UserID != AnonymousUser {
		t.Fatalf("anonymous = %+v, %v", anon, err)
	}

	list, err := comments.ListUserComments(ctx, "friend")
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %d, %v", len(list), err)
	}
	if err = comments.DeleteComment(ctx, "cmt_nope", "friend"); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("missing comment err = %v", err)
	}
	if err = comments.DeleteComment(ctx, c.ID, "friend"); err != nil {
		t.Fatal(err)
	}
	if list, _ = comments.ListUserComments(ctx, "friend"); len(list) != 0 {
		t.Fatalf("after delete = %d", len(list))
	}
}

func TestDetailCarriesViewerState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	messages, _, saved := newMessageServices(f)
	votes := NewVoteService(f.votes)

	testutil.SeedMessage(t, ctx, f.db, "msg_1", "owner", 0, base)
	testutil.SeedComment(t, ctx, f.db, "cmt_b", "msg_1", "x", base.Add(2*time.Minute))
	testutil.SeedComment(t, ctx, f.db, "cmt_a", "msg_1", "y", base.Add(time.Minute))

	if _, err := saved.SaveMessage(ctx, "msg_1", "viewer"); err != nil {
		t.Fatal(err)
	}
	if _, err := votes.Vote(ctx, "msg_1", &dto.VoteDTO{Type: "up", UserID: "viewer"}); err != nil {
		t.Fatal(err)
	}

	d, err := messages.GetDetail(ctx, "msg_1", "viewer")
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Comments) != 2 || d.Comments[0].ID != "cmt_a" || d.CommentCount != 2 {
		t.Fatalf("comments = %+v", d.Comments)
	}
	if d.IsSavedByMe == nil || !*d.IsSavedByMe || d.UserVote == nil || *d.UserVote != "up" || d.Likes != 1 {
		t.Fatalf("viewer state = %+v", d)
	}

	other, err := messages.GetDetail(ctx, "msg_1", "stranger")
	if err != nil || other.IsSavedByMe == nil || *other.IsSavedByMe || other.UserVote != nil {
		t.Fatalf("stranger state = %+v, %v", other, err)
	}
	anon, err := messages.GetDetail(ctx, "msg_1", "")
	if err != nil || anon.IsSavedByMe != nil {
		t.Fatalf("anonymous state = %+v, %v", anon, err)
	}
}

func TestSaveMessage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, _, saved := newMessageServices(f)
	testutil.SeedMessage(t, ctx, f.db, "msg_1", "owner", 0, base)
	testutil.SeedMessage(t, ctx, f.db, "msg_2", "owner", 0, base.Add(time.Hour))

	if _, err := saved.SaveMessage(ctx, "msg_nope", "u"); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("missing err = %v", err)
	}
	if _, err := saved.SaveMessage(ctx, "msg_1", ""); !errors.Is(err, ErrParamInvalid) {
		t.Fatalf("no user err = %v", err)
	}
	for _, id := range []string{"msg_1", "msg_2"} {
		res, err := saved.SaveMessage(ctx, id, "u")
		if err != nil || !res.Saved {
			t.Fatalf("save %s = %+v, %v", id, res, err)
		}
	}
	if _, err := saved.SaveMessage(ctx, "msg_1", "u"); !errors.Is(err, ErrActionDuplicate) {
		t.Fatalf("duplicate err = %v", err)
	}

	list, err := saved.ListSaved(ctx, "u")
	if err != nil || len(list) != 2 {
		t.Fatalf("list = %d, %v", len(list), err)
	}

	for i := 0; i < 2; i++ {
		res, err := saved.UnsaveMessage(ctx, "msg_1", "u")
		if err != nil || res.Saved {
			t.Fatalf("unsave #%d = %+v, %v", i, res, err)
		}
	}
	if list, _ = saved.ListSaved(ctx, "u"); len(list) != 1 || list[0].ID != "msg_2" {
		t.Fatalf("after unsave = %+v", list)
	}
}
