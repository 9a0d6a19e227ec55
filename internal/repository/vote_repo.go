package repository

import (
	"Balgil/internal/model"
	"Balgil/internal/pkg/database"
	"Balgil/internal/pkg/vote"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteRepo interface {
	GetUserVote(ctx context.Context, messageID, userID string) (vote.State, error)
	ApplyVote(ctx context.Context, messageID, userID string, submitted vote.State) (*vote.Outcome, error)
}

type VoteRepoImpl struct {
	db *gorm.DB
}

func NewVoteRepo(db *gorm.DB) VoteRepo {
	return &VoteRepoImpl{db: db}
}

func (s *VoteRepoImpl) GetUserVote(ctx context.Context, messageID, userID string) (vote.State, error) {
	votes := make([]*model.Vote, 0, 1)
	err := s.db.WithContext(ctx).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Limit(1).
		Find(&votes).Error
	if err != nil {
		return vote.None, errors.Wrap(err, "get user vote")
	}
	if len(votes) == 0 {
		return vote.None, nil
	}
	return vote.State(votes[0].VoteType), nil
}

// ApplyVote 在事务内锁定消息行, 读取当前投票并应用状态转换.
// 消息不存在时返回 gorm.ErrRecordNotFound.
func (s *VoteRepoImpl) ApplyVote(ctx context.Context, messageID, userID string, submitted vote.State) (*vote.Outcome, error) {
	var outcome vote.Outcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		msg := &model.Message{}
		query := tx
		if database.SupportsRowLock(tx) {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := query.Where("id = ?", messageID).First(msg).Error; err != nil {
			return errors.Wrapf(err, "lock message %s", messageID)
		}

		existing := &model.Vote{}
		current := vote.None
		found := true
		if err := tx.Where("message_id = ? AND user_id = ?", messageID, userID).First(existing).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(err, "load vote")
			}
			found = false
		} else {
			current = vote.State(existing.VoteType)
		}

		out, err := vote.Transition(current, submitted, vote.Counts{Likes: msg.Likes, Dislikes: msg.Dislikes})
		if err != nil {
			return err
		}

		switch {
		case out.Next == vote.None && found:
			err = tx.Delete(existing).Error
		case found:
			err = tx.Model(existing).Update("vote_type", string(out.Next)).Error
		default:
			if err = ensureUser(tx, userID); err != nil {
				return err
			}
			err = tx.Create(&model.Vote{MessageID: messageID, UserID: userID, VoteType: string(out.Next)}).Error
		}
		if err != nil {
			return errors.Wrap(err, "write vote")
		}

		err = tx.Model(&model.Message{}).Where("id = ?", messageID).Updates(map[string]interface{}{
			"likes":    out.Counts.Likes,
			"dislikes": out.Counts.Dislikes,
		}).Error
		if err != nil {
			return errors.Wrap(err, "update vote counts")
		}

		outcome = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}
