package response

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/pkg/util"
	"Balgil/internal/service"
	stdjson "encoding/json"
	"errors"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = http.StatusOK
	Created             = http.StatusCreated
	BadRequest          = http.StatusBadRequest
	InternalServerError = http.StatusInternalServerError
)

// Success 成功返回封装
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// SuccessCreated 201 返回
func SuccessCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.Response{
		Code:    Created,
		Message: "created",
		Data:    data,
	})
}

// Fail 失败返回封装, HTTP 状态与 code 一致
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.Response{
		Code:    status,
		Message: message,
		Data:    nil,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	if isBadInput(err) {
		Fail(c, BadRequest, service.ErrParamInvalid.Error()+": "+err.Error())
		return
	}

	code, ok := service.StatusOf(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "unhandled error", "path", c.FullPath(), "err", err)
		Fail(c, InternalServerError, service.UnExpectedError.Error())
		return
	}
	Fail(c, code, rootMessage(err))
}

func isBadInput(err error) bool {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var fe *util.FieldError
	if errors.As(err, &fe) {
		return true
	}

	var goccyType *json.UnmarshalTypeError
	var goccySyntax *json.SyntaxError
	if errors.As(err, &goccyType) || errors.As(err, &goccySyntax) {
		return true
	}
	var stdType *stdjson.UnmarshalTypeError
	var stdSyntax *stdjson.SyntaxError
	if errors.As(err, &stdType) || errors.As(err, &stdSyntax) {
		return true
	}
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// rootMessage 返回哨兵错误本身的文本, 而不是整条包装链
func rootMessage(err error) string {
	for target := range service.ErrorMap {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}
