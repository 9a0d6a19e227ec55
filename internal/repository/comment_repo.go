package repository

import (
	"Balgil/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, id string) (*model.Comment, error)
	ListByMessage(ctx context.Context, messageID string) ([]*model.Comment, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
	CountByMessages(ctx context.Context, messageIDs []string) (map[string]int64, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUser(tx, comment.UserID); err != nil {
			return err
		}
		return errors.Wrap(tx.Create(comment).Error, "create comment")
	})
}

func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	comment := &model.Comment{}
	result := s.db.WithContext(ctx).Where("id = ?", id).First(comment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(result.Error, "get comment %s", id)
	}
	return comment, nil
}

// ListByMessage 按时间正序
func (s *CommentRepoImpl) ListByMessage(ctx context.Context, messageID string) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := s.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Order("timestamp ASC").
		Find(&comments).Error
	return comments, errors.Wrap(err, "list message comments")
}

func (s *CommentRepoImpl) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&comments).Error
	return comments, errors.Wrap(err, "list user comments")
}

func (s *CommentRepoImpl) DeleteComment(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{}).Error
	return errors.Wrapf(err, "delete comment %s", id)
}

func (s *CommentRepoImpl) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, errors.Wrap(err, "count user comments")
}

// CountByMessages 批量统计评论数, 没有评论的消息不在结果中
func (s *CommentRepoImpl) CountByMessages(ctx context.Context, messageIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(messageIDs))
	if len(messageIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		MessageID string
		Total     int64
	}
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Select("message_id, COUNT(*) AS total").
		Where("message_id IN ?", messageIDs).
		Group("message_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "count message comments")
	}
	for _, r := range rows {
		counts[r.MessageID] = r.Total
	}
	return counts, nil
}
