package repository

import (
	"Balgil/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SavedRepo interface {
	SaveMessage(ctx context.Context, saved *model.SavedMessage) error
	UnsaveMessage(ctx context.Context, messageID, userID string) (bool, error)
	IsSaved(ctx context.Context, messageID, userID string) (bool, error)
	ListSavedMessages(ctx context.Context, userID string) ([]*model.Message, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type SavedRepoImpl struct {
	db *gorm.DB
}

func NewSavedRepo(db *gorm.DB) SavedRepo {
	return &SavedRepoImpl{db: db}
}

// SaveMessage 重复收藏时返回驱动的唯一约束错误
func (s *SavedRepoImpl) SaveMessage(ctx context.Context, saved *model.SavedMessage) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUser(tx, saved.UserID); err != nil {
			return err
		}
		return errors.Wrap(tx.Create(saved).Error, "save message")
	})
}

func (s *SavedRepoImpl) UnsaveMessage(ctx context.Context, messageID, userID string) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Delete(&model.SavedMessage{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "unsave message")
	}
	return result.RowsAffected > 0, nil
}

func (s *SavedRepoImpl) IsSaved(ctx context.Context, messageID, userID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.SavedMessage{}).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Count(&count).Error
	return count > 0, errors.Wrap(err, "check saved")
}

// ListSavedMessages 按收藏时间倒序
func (s *SavedRepoImpl) ListSavedMessages(ctx context.Context, userID string) ([]*model.Message, error) {
	msgs := make([]*model.Message, 0)
	err := s.db.WithContext(ctx).
		Model(&model.Message{}).
		Joins("JOIN saved_messages ON saved_messages.message_id = messages.id").
		Where("saved_messages.user_id = ?", userID).
		Order("saved_messages.created_at DESC").
		Order("saved_messages.id DESC").
		Find(&msgs).Error
	return msgs, errors.Wrap(err, "list saved messages")
}

func (s *SavedRepoImpl) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.SavedMessage{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, errors.Wrap(err, "count saved")
}
