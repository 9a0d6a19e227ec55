package service

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/pkg/util"
	"Balgil/internal/pkg/vote"
	"Balgil/internal/repository"
	"context"
	log "log/slog"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AnonymousVoter 未提供 userId 的投票者
const AnonymousVoter = "anonymous"

type VoteService interface {
	Vote(ctx context.Context, messageID string, req *dto.VoteDTO) (*dto.VoteResultDTO, error)
}

type voteServiceImpl struct {
	voteRepo repository.VoteRepo
}

func NewVoteService(voteRepo repository.VoteRepo) VoteService {
	return &voteServiceImpl{voteRepo: voteRepo}
}

// Vote 校验类型后在单个事务内完成读改写
func (s *voteServiceImpl) Vote(ctx context.Context, messageID string, req *dto.VoteDTO) (*dto.VoteResultDTO, error) {
	submitted, err := vote.Parse(req.Type)
	if err != nil {
		return nil, ErrVoteTypeInvalid
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = AnonymousVoter
	}

	out, err := s.voteRepo.ApplyVote(ctx, messageID, userID, submitted)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	log.DebugContext(ctx, "vote applied", "message", messageID, "user", userID, "prev", out.Prev, "next", out.Next)

	res := &dto.VoteResultDTO{Likes: out.Counts.Likes, Dislikes: out.Counts.Dislikes}
	if out.Next != vote.None {
		res.UserVote = util.PtrString(string(out.Next))
	}
	return res, nil
}
