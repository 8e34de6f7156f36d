// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"
	"io"

	"github.com/haierkeys/voice-note-service/internal/app"
	"github.com/haierkeys/voice-note-service/internal/middleware"
	"github.com/haierkeys/voice-note-service/internal/speech"
	"github.com/haierkeys/voice-note-service/pkg/code"
	"github.com/haierkeys/voice-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// logError 记录错误日志，包含 Trace ID
func (h *Handler) logError(ctx context.Context, method string, err error) {
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String(logger.FieldTraceID, middleware.GetTraceID(ctx)),
	)
}

// readAudio 读取 multipart 中的音频文件，超过 audio.max-size 返回 413
func (h *Handler) readAudio(c *gin.Context, field string) (*speech.Audio, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, code.ErrorAudioMissing
	}
	maxSize := h.App.Config().GetAudioMaxSize()
	if maxSize > 0 && fh.Size > maxSize {
		return nil, code.ErrorAudioTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, code.ErrorAudioMissing.WithDetails(err.Error())
	}
	defer f.Close()

	var r io.Reader = f
	if maxSize > 0 {
		r = io.LimitReader(f, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, code.ErrorAudioMissing.WithDetails(err.Error())
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, code.ErrorAudioTooLarge
	}

	return &speech.Audio{
		Data:        data,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}
