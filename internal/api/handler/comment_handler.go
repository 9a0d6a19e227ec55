package handler

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/pkg/response"
	"Balgil/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	comment, err := s.commentSvc.AddComment(c.Request.Context(), c.Param("message_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessCreated(c, comment)
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	userID, err := ownerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.commentSvc.DeleteComment(c.Request.Context(), c.Param("comment_id"), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
