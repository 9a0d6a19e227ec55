package service

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/model"
	"Balgil/internal/pkg/consts"
	"Balgil/internal/pkg/util"
	"Balgil/internal/repository"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CommentService interface {
	AddComment(ctx context.Context, messageID string, req *dto.CreateCommentDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, commentID, userID string) error
	ListUserComments(ctx context.Context, userID string) ([]*dto.CommentDTO, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepo
	messageRepo repository.MessageRepo
}

func NewCommentService(commentRepo repository.CommentRepo, messageRepo repository.MessageRepo) CommentService {
	return &commentServiceImpl{commentRepo: commentRepo, messageRepo: messageRepo}
}

func (s *commentServiceImpl) AddComment(ctx context.Context, messageID string, req *dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrParamInvalid
	}

	msg, err := s.messageRepo.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = AnonymousUser
	}

	comment := &model.Comment{
		ID:        consts.CommentIDPrefix + uuid.NewString(),
		MessageID: messageID,
		UserID:    userID,
		Text:      util.TruncateRunes(text, consts.CommentTextMaxRunes),
		Timestamp: time.Now().UTC(),
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return toCommentDTO(comment), nil
}

func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID, userID string) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if userID == "" || userID != comment.UserID {
		return ErrNotOwner
	}
	return s.commentRepo.DeleteComment(ctx, commentID)
}

func (s *commentServiceImpl) ListUserComments(ctx context.Context, userID string) ([]*dto.CommentDTO, error) {
	comments, err := s.commentRepo.ListByUser(ctx, userID, consts.UserListLimit)
	if err != nil {
		return nil, err
	}
	return toCommentDTOs(comments), nil
}
