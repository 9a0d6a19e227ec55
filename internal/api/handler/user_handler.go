package handler

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/pkg/response"
	"Balgil/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc    service.UserService
	messageSvc service.MessageService
	commentSvc service.CommentService
	savedSvc   service.SavedService
}

func NewUserHandler(userSvc service.UserService, messageSvc service.MessageService, commentSvc service.CommentService, savedSvc service.SavedService) *UserHandler {
	return &UserHandler{
		userSvc:    userSvc,
		messageSvc: messageSvc,
		commentSvc: commentSvc,
		savedSvc:   savedSvc,
	}
}

// GetProfile 未知用户返回零值资料
func (s *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}
	profile, err := s.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	profile, err := s.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// UploadAvatar multipart 字段名 file
func (s *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	profile, err := s.userSvc.UploadAvatar(c.Request.Context(), userID, reader, file.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AvatarDTO{ProfileImg: profile.ProfileImg})
}

func (s *UserHandler) ListMessages(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}
	list, err := s.messageSvc.ListUserMessages(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *UserHandler) ListComments(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}
	list, err := s.commentSvc.ListUserComments(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *UserHandler) ListSaved(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}
	list, err := s.savedSvc.ListSaved(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
