package service

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/pkg/consts"
	"Balgil/internal/pkg/util"
	"Balgil/internal/repository"
	"bytes"
	"context"
	"encoding/base64"
	"io"
	log "log/slog"
	"strings"

	"github.com/pkg/errors"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserProfileDTO, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileDTO) (*dto.UserProfileDTO, error)
	UploadAvatar(ctx context.Context, userID string, file io.Reader, size int64) (*dto.UserProfileDTO, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
	avatars  *AvatarProcessor
}

func NewUserService(userRepo repository.UserRepo, avatars *AvatarProcessor) UserService {
	return &userServiceImpl{userRepo: userRepo, avatars: avatars}
}

// GetProfile 未注册的用户返回空资料
func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserProfileDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &dto.UserProfileDTO{ID: userID}, nil
	}
	return toUserDTO(user), nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileDTO) (*dto.UserProfileDTO, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrParamInvalid
	}

	profileImg := req.ProfileImg
	var previous string
	if profileImg != nil && strings.HasPrefix(*profileImg, "data:image/") && s.avatars.Enabled() {
		previous = s.currentImage(ctx, userID)
		raw, err := decodeDataURL(*profileImg)
		if err != nil {
			return nil, err
		}
		url, err := s.avatars.Store(ctx, userID, bytes.NewReader(raw), int64(len(raw)))
		if err != nil {
			return nil, err
		}
		profileImg = &url
	}

	var bio *string
	if req.Bio != nil {
		bio = util.PtrString(util.TruncateRunes(*req.Bio, consts.BioMaxRunes))
	}

	user, err := s.userRepo.UpsertProfile(ctx, userID, profileImg, bio)
	if err != nil {
		return nil, err
	}
	s.avatars.Release(ctx, previous)
	return toUserDTO(user), nil
}

func (s *userServiceImpl) UploadAvatar(ctx context.Context, userID string, file io.Reader, size int64) (*dto.UserProfileDTO, error) {
	if !s.avatars.Enabled() {
		return nil, ErrStorageUnavailable
	}
	previous := s.currentImage(ctx, userID)
	url, err := s.avatars.Store(ctx, userID, file, size)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpsertProfile(ctx, userID, &url, nil)
	if err != nil {
		return nil, err
	}
	s.avatars.Release(ctx, previous)
	log.InfoContext(ctx, "avatar uploaded", "user", userID, "url", url)
	return toUserDTO(user), nil
}

func (s *userServiceImpl) currentImage(ctx context.Context, userID string) string {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil || user == nil {
		return ""
	}
	return user.ProfileImg
}

// decodeDataURL 解析 data:image/...;base64,<payload>
func decodeDataURL(s string) ([]byte, error) {
	header, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, ErrFileNotSupported
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > consts.AvatarMaxBytes {
		return nil, ErrFileTooLarge
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(ErrFileNotSupported, err.Error())
	}
	return raw, nil
}
