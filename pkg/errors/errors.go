package errors

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/haierkeys/voice-note-service/internal/middleware"
	"github.com/haierkeys/voice-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError 统一错误响应体
type AppError struct {
	Code      int         `json:"code"`
	Status    bool        `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Details   string      `json:"details,omitempty"`
	TraceID   string      `json:"traceId,omitempty"`
	Cause     error       `json:"-"`
	Timestamp time.Time   `json:"timestamp"`

	httpStatus int
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 从 Code 创建 AppError，cause 保留原始错误用于日志
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:       c.Code(),
		Message:    c.Msg(),
		Data:       c.Data(),
		Details:    strings.Join(c.Details(), ","),
		Cause:      cause,
		Timestamp:  time.Now(),
		httpStatus: c.StatusCode(),
	}
}

// StatusCode 错误对应的 HTTP 状态码
func (e *AppError) StatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.httpStatus
}

// Convert 将任意错误转换为 AppError，未知错误视为内部错误
func Convert(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		return NewAppError(codeErr, nil)
	}
	return NewAppError(code.ErrorServerInternal, err)
}

// ErrorResponse 统一错误响应
func ErrorResponse(c *gin.Context, err error) {
	appErr := Convert(err)
	appErr.TraceID = middleware.GetTraceIDFromGin(c)
	c.Set("status_code", appErr.StatusCode())
	c.JSON(appErr.StatusCode(), appErr)
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}
