package repository

import (
	"Balgil/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type MessageRepo interface {
	CreateMessage(ctx context.Context, msg *model.Message) error
	GetMessageByID(ctx context.Context, id string) (*model.Message, error)
	ListMessages(ctx context.Context, box *model.BoundingBox, limit int) ([]*model.Message, error)
	ListMessagesByUser(ctx context.Context, userID string, limit int) ([]*model.Message, error)
	FindTopByAddress(ctx context.Context, column, value string) (*model.Message, error)
	UpdateMessageText(ctx context.Context, id, text string) error
	DeleteMessage(ctx context.Context, id string) error

	CountByUser(ctx context.Context, userID string) (int64, error)
	SumLikesByUser(ctx context.Context, userID string) (int64, error)
}

type MessageRepoImpl struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) MessageRepo {
	return &MessageRepoImpl{db: db}
}

func (s *MessageRepoImpl) CreateMessage(ctx context.Context, msg *model.Message) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUser(tx, msg.UserID); err != nil {
			return err
		}
		return errors.Wrap(tx.Create(msg).Error, "create message")
	})
}

// GetMessageByID 不存在时返回 nil, nil
func (s *MessageRepoImpl) GetMessageByID(ctx context.Context, id string) (*model.Message, error) {
	msg := &model.Message{}
	result := s.db.WithContext(ctx).Where("id = ?", id).First(msg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(result.Error, "get message %s", id)
	}
	return msg, nil
}

// ListMessages 按点赞数、时间倒序, box 为 nil 时不过滤坐标
func (s *MessageRepoImpl) ListMessages(ctx context.Context, box *model.BoundingBox, limit int) ([]*model.Message, error) {
	msgs := make([]*model.Message, 0)
	query := s.db.WithContext(ctx).Model(&model.Message{})
	if box != nil {
		query = query.
			Where("coord_x BETWEEN ? AND ?", box.MinX, box.MaxX).
			Where("coord_y BETWEEN ? AND ?", box.MinY, box.MaxY)
	}
	err := query.
		Order("likes DESC").
		Order("timestamp DESC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, errors.Wrap(err, "list messages")
}

func (s *MessageRepoImpl) ListMessagesByUser(ctx context.Context, userID string, limit int) ([]*model.Message, error) {
	msgs := make([]*model.Message, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, errors.Wrap(err, "list user messages")
}

// FindTopByAddress 同一地址下点赞最多、最新的一条
func (s *MessageRepoImpl) FindTopByAddress(ctx context.Context, column, value string) (*model.Message, error) {
	if column != "address" && column != "address_base" {
		return nil, errors.Errorf("unsupported address column %q", column)
	}
	msgs := make([]*model.Message, 0, 1)
	err := s.db.WithContext(ctx).
		Where(column+" = ?", value).
		Order("likes DESC").
		Order("timestamp DESC").
		Limit(1).
		Find(&msgs).Error
	if err != nil {
		return nil, errors.Wrap(err, "find message by address")
	}
	if len(msgs) == 0 {
		return nil, nil
	}
	return msgs[0], nil
}

func (s *MessageRepoImpl) UpdateMessageText(ctx context.Context, id, text string) error {
	err := s.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"text": text, "edited": true}).Error
	return errors.Wrapf(err, "update message %s", id)
}

// DeleteMessage 级联删除评论、投票与收藏
func (s *MessageRepoImpl) DeleteMessage(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return errors.Wrap(err, "delete message comments")
		}
		if err := tx.Where("message_id = ?", id).Delete(&model.Vote{}).Error; err != nil {
			return errors.Wrap(err, "delete message votes")
		}
		if err := tx.Where("message_id = ?", id).Delete(&model.SavedMessage{}).Error; err != nil {
			return errors.Wrap(err, "delete message saves")
		}
		return errors.Wrap(tx.Where("id = ?", id).Delete(&model.Message{}).Error, "delete message")
	})
}

func (s *MessageRepoImpl) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Message{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, errors.Wrap(err, "count user messages")
}

func (s *MessageRepoImpl) SumLikesByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Message{}).
		Select("COALESCE(SUM(likes), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, errors.Wrap(err, "sum user likes")
}
