package handler

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/pkg/response"
	"Balgil/internal/pkg/util"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
)

// userParam 读取并校验 :user_id, 失败时已写出响应
func userParam(c *gin.Context) (string, bool) {
	var p dto.UserPathDTO
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error(c, err)
		return "", false
	}
	p.UserID = strings.TrimSpace(p.UserID)
	if err := util.ValidateDTO(&p); err != nil {
		response.Error(c, err)
		return "", false
	}
	return p.UserID, true
}

// ownerID 优先读取 JSON body 中的 userId, 没有时回退到 query 参数
func ownerID(c *gin.Context) (string, error) {
	var req dto.OwnerDTO
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
	}
	if req.UserID == "" {
		req.UserID = c.Query("userId")
	}
	return strings.TrimSpace(req.UserID), nil
}
