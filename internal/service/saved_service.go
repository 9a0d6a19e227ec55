package service

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/model"
	"Balgil/internal/pkg/database"
	"Balgil/internal/repository"
	"context"
	"strings"
)

type SavedService interface {
	SaveMessage(ctx context.Context, messageID, userID string) (*dto.SaveResultDTO, error)
	UnsaveMessage(ctx context.Context, messageID, userID string) (*dto.SaveResultDTO, error)
	ListSaved(ctx context.Context, userID string) ([]*dto.MessageDTO, error)
}

type savedServiceImpl struct {
	savedRepo   repository.SavedRepo
	messageRepo repository.MessageRepo
	commentRepo repository.CommentRepo
}

func NewSavedService(savedRepo repository.SavedRepo, messageRepo repository.MessageRepo, commentRepo repository.CommentRepo) SavedService {
	return &savedServiceImpl{savedRepo: savedRepo, messageRepo: messageRepo, commentRepo: commentRepo}
}

func (s *savedServiceImpl) SaveMessage(ctx context.Context, messageID, userID string) (*dto.SaveResultDTO, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrParamInvalid
	}

	msg, err := s.messageRepo.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}

	err = s.savedRepo.SaveMessage(ctx, &model.SavedMessage{MessageID: messageID, UserID: userID})
	if err != nil {
		if database.IsDuplicateKey(err) {
			return nil, ErrActionDuplicate
		}
		return nil, err
	}
	return &dto.SaveResultDTO{Saved: true}, nil
}

// UnsaveMessage 未收藏时同样返回 saved=false
func (s *savedServiceImpl) UnsaveMessage(ctx context.Context, messageID, userID string) (*dto.SaveResultDTO, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrParamInvalid
	}
	if _, err := s.savedRepo.UnsaveMessage(ctx, messageID, userID); err != nil {
		return nil, err
	}
	return &dto.SaveResultDTO{Saved: false}, nil
}

func (s *savedServiceImpl) ListSaved(ctx context.Context, userID string) ([]*dto.MessageDTO, error) {
	msgs, err := s.savedRepo.ListSavedMessages(ctx, userID)
	if err != nil {
		return nil, err
	}

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
