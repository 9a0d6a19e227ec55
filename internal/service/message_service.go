package service

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/model"
	"Balgil/internal/pkg/consts"
	"Balgil/internal/pkg/util"
	"Balgil/internal/pkg/vote"
	"Balgil/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AnonymousUser 未提供 userId 时的作者
const AnonymousUser = "익명"

type MessageService interface {
	ListMessages(ctx context.Context, q *dto.MessageListQuery) ([]*dto.MessageDTO, error)
	ListUserMessages(ctx context.Context, userID string) ([]*dto.MessageDTO, error)
	CreateMessage(ctx context.Context, req *dto.CreateMessageDTO) (*dto.MessageDTO, error)
	GetByAddress(ctx context.Context, q *dto.AddressQuery) (*dto.MessageDTO, error)
	UpdateMessage(ctx context.Context, messageID string, req *dto.UpdateMessageDTO) (*dto.MessageDTO, error)
	DeleteMessage(ctx context.Context, messageID, userID string) error
	GetDetail(ctx context.Context, messageID, viewerID string) (*dto.MessageDetailDTO, error)
}

type messageServiceImpl struct {
	messageRepo repository.MessageRepo
	commentRepo repository.CommentRepo
	voteRepo    repository.VoteRepo
	savedRepo   repository.SavedRepo
}

func NewMessageService(
	messageRepo repository.MessageRepo,
	commentRepo repository.CommentRepo,
	voteRepo repository.VoteRepo,
	savedRepo repository.SavedRepo,
) MessageService {
	return &messageServiceImpl{
		messageRepo: messageRepo,
		commentRepo: commentRepo,
		voteRepo:    voteRepo,
		savedRepo:   savedRepo,
	}
}

func (s *messageServiceImpl) ListMessages(ctx context.Context, q *dto.MessageListQuery) ([]*dto.MessageDTO, error) {
	var box *model.BoundingBox
	if q != nil && q.MinX != nil && q.MaxX != nil && q.MinY != nil && q.MaxY != nil {
		box = &model.BoundingBox{MinX: *q.MinX, MaxX: *q.MaxX, MinY: *q.MinY, MaxY: *q.MaxY}
	}
	msgs, err := s.messageRepo.ListMessages(ctx, box, consts.MessageListLimit)
	if err != nil {
		return nil, err
	}
	return s.withCommentCounts(ctx, msgs)
}

func (s *messageServiceImpl) ListUserMessages(ctx context.Context, userID string) ([]*dto.MessageDTO, error) {
	msgs, err := s.messageRepo.ListMessagesByUser(ctx, userID, consts.UserListLimit)
	if err != nil {
		return nil, err
	}
	return s.withCommentCounts(ctx, msgs)
}

func (s *messageServiceImpl) CreateMessage(ctx context.Context, req *dto.CreateMessageDTO) (*dto.MessageDTO, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" || req.Coords == nil {
		return nil, ErrParamInvalid
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = AnonymousUser
	}

	tags := req.Tags
	if tags == "" {
		tags = strings.Join(util.ExtractTags(text), " ")
	}

	msg := &model.Message{
		ID:          consts.MessageIDPrefix + uuid.NewString(),
		UserID:      userID,
		Text:        util.TruncateRunes(text, consts.MessageTextMaxRunes),
		CoordX:      req.Coords.Lon(),
		CoordY:      req.Coords.Lat(),
		Tags:        util.TruncateRunes(tags, consts.TagsMaxRunes),
		Address:     req.Address,
		AddressBase: req.AddressBase,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.messageRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "message created", "id", msg.ID, "user", userID)
	return toMessageDTO(msg, 0), nil
}

// GetByAddress 先精确匹配 address, 再匹配 address_base; 都没有时返回 nil
func (s *messageServiceImpl) GetByAddress(ctx context.Context, q *dto.AddressQuery) (*dto.MessageDTO, error) {
	if q.Address == "" && q.AddressBase == "" {
		return nil, ErrParamInvalid
	}

	lookups := []struct{ column, value string }{
		{"address", q.Address},
		{"address_base", q.AddressBase},
	}
	for _, l := range lookups {
		if l.value == "" {
			continue
		}
		msg, err := s.messageRepo.FindTopByAddress(ctx, l.column, l.value)
		if err != nil {
			return nil, err
		}
		if msg != nil {
			out, err := s.withCommentCounts(ctx, []*model.Message{msg})
			if err != nil {
				return nil, err
			}
			return out[0], nil
		}
	}
	return nil, nil
}

func (s *messageServiceImpl) UpdateMessage(ctx context.Context, messageID string, req *dto.UpdateMessageDTO) (*dto.MessageDTO, error) {
	msg, err := s.ownedMessage(ctx, messageID, req.UserID)
	if err != nil {
		return nil, err
	}

	if text := strings.TrimSpace(req.Text); text != "" {
		msg.Text = util.TruncateRunes(text, consts.MessageTextMaxRunes)
		msg.Edited = true
		if err = s.messageRepo.UpdateMessageText(ctx, messageID, msg.Text); err != nil {
			return nil, err
		}
	}

	out, err := s.withCommentCounts(ctx, []*model.Message{msg})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (s *messageServiceImpl) DeleteMessage(ctx context.Context, messageID, userID string) error {
	if _, err := s.ownedMessage(ctx, messageID, userID); err != nil {
		return err
	}
	if err := s.messageRepo.DeleteMessage(ctx, messageID); err != nil {
		return err
	}
	log.InfoContext(ctx, "message deleted", "id", messageID, "user", userID)
	return nil
}

// GetDetail viewerID 非空时附带收藏与投票状态
func (s *messageServiceImpl) GetDetail(ctx context.Context, messageID, viewerID string) (*dto.MessageDetailDTO, error) {
	msg, err := s.messageRepo.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}

	comments, err := s.commentRepo.ListByMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	out := &dto.MessageDetailDTO{
		MessageDTO: *toMessageDTO(msg, int64(len(comments))),
		Comments:   toCommentDTOs(comments),
	}
	if viewerID == "" {
		return out, nil
	}

	saved, err := s.savedRepo.IsSaved(ctx, messageID, viewerID)
	if err != nil {
		return nil, err
	}
	out.IsSavedByMe = &saved

	state, err := s.voteRepo.GetUserVote(ctx, messageID, viewerID)
	if err != nil {
		return nil, err
	}
	if state != vote.None {
		out.UserVote = util.PtrString(string(state))
	}
	return out, nil
}

func (s *messageServiceImpl) ownedMessage(ctx context.Context, messageID, userID string) (*model.Message, error) {
	msg, err := s.messageRepo.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	if userID == "" || userID != msg.UserID {
		return nil, ErrNotOwner
	}
	return msg, nil
}

func (s *messageServiceImpl) withCommentCounts(ctx context.Context, msgs []*model.Message) ([]*dto.MessageDTO, error) {
	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	counts, err := s.commentRepo.CountByMessages(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageDTO(m, counts[m.ID]))
	}
	return out, nil
}
