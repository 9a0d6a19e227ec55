package handler

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/pkg/response"
	"Balgil/internal/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageSvc service.MessageService
	voteSvc    service.VoteService
	savedSvc   service.SavedService
}

func NewMessageHandler(messageSvc service.MessageService, voteSvc service.VoteService, savedSvc service.SavedService) *MessageHandler {
	return &MessageHandler{
		messageSvc: messageSvc,
		voteSvc:    voteSvc,
		savedSvc:   savedSvc,
	}
}

// ListMessages 可选 min_x,max_x,min_y,max_y 范围过滤
func (s *MessageHandler) ListMessages(c *gin.Context) {
	var q dto.MessageListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}
	list, err := s.messageSvc.ListMessages(c.Request.Context(), &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *MessageHandler) CreateMessage(c *gin.Context) {
	var req dto.CreateMessageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	msg, err := s.messageSvc.CreateMessage(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessCreated(c, msg)
}

// GetByAddress 没有匹配时 data 为 null
func (s *MessageHandler) GetByAddress(c *gin.Context) {
	var q dto.AddressQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}
	msg, err := s.messageSvc.GetByAddress(c.Request.Context(), &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msg)
}

func (s *MessageHandler) UpdateMessage(c *gin.Context) {
	var req dto.UpdateMessageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	msg, err := s.messageSvc.UpdateMessage(c.Request.Context(), c.Param("message_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msg)
}

func (s *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, err := ownerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.messageSvc.DeleteMessage(c.Request.Context(), c.Param("message_id"), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetDetail ?userId= 时附带该用户的收藏与投票状态
func (s *MessageHandler) GetDetail(c *gin.Context) {
	detail, err := s.messageSvc.GetDetail(c.Request.Context(), c.Param("message_id"), c.Query("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

func (s *MessageHandler) Vote(c *gin.Context) {
	var req dto.VoteDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := s.voteSvc.Vote(c.Request.Context(), c.Param("message_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *MessageHandler) SaveMessage(c *gin.Context) {
	var req dto.SaveMessageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := s.savedSvc.SaveMessage(c.Request.Context(), c.Param("message_id"), req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *MessageHandler) UnsaveMessage(c *gin.Context) {
	userID, err := ownerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := s.savedSvc.UnsaveMessage(c.Request.Context(), c.Param("message_id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
