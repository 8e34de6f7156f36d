package middleware

import (
	"time"

	"github.com/haierkeys/voice-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLogWithLogger 记录每个请求的方法、路径、耗时与状态
func AccessLogWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		startTime := time.Now()
		c.Next()
		timeCost := time.Since(startTime)

		fields := []zap.Field{
			zap.String(logger.FieldMethod, c.Request.Method),
			zap.String(logger.FieldPath, path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration(logger.FieldDuration, timeCost),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, zap.String("errors", errs))
		}

		if c.Writer.Status() >= 500 {
			lg.Warn(path, fields...)
			return
		}
		lg.Info(path, fields...)
	}
}
