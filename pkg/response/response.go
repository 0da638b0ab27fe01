package response

import (
	stderrors "errors"
	"net/http"

	"dormhub/pkg/errors"
	"dormhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Message 仅包含消息的返回格式
type Message struct {
	Message string `json:"message"`
}

// ValidationBody 校验失败返回格式
type ValidationBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// ========== 基础返回方法 ==========

// Success 成功返回
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 创建成功返回
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SuccessWithMessage 成功返回（仅消息）
func SuccessWithMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Message{Message: message})
}

// Error 通用错误返回
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Message{Message: message})
}

// ========== HTTP错误快捷方法 ==========

func BadRequest(c *gin.Context, message string) {
	Error(c, errors.CodeInvalidParam, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, errors.CodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, errors.CodeForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, errors.CodeNotFound, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, errors.CodeServerError, message)
}

// Validation 422 字段校验错误
func Validation(c *gin.Context, v *errors.ValidationError) {
	c.JSON(errors.CodeUnprocessable, ValidationBody{
		Message: v.Error(),
		Errors:  v.Fields,
	})
}

// FromError 将业务错误映射为HTTP返回，notFoundMsg 用于 404 的消息
func FromError(c *gin.Context, err error, notFoundMsg string) {
	var verr *errors.ValidationError
	switch {
	case stderrors.As(err, &verr):
		Validation(c, verr)
	case stderrors.Is(err, errors.ErrNotFound):
		NotFound(c, notFoundMsg)
	case stderrors.Is(err, errors.ErrUnauthorized):
		Unauthorized(c, "Unauthenticated.")
	default:
		logger.GetLogger().WithError(err).WithField("path", c.FullPath()).Error("request failed")
		ServerError(c, "Server Error")
	}
}
