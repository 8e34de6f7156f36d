package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/haierkeys/voice-note-service/pkg/app"
	"github.com/haierkeys/voice-note-service/pkg/code"
	"github.com/haierkeys/voice-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 捕获 panic，记录堆栈并返回统一的内部错误
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				lg.Error("Recovered from panic",
					zap.String(logger.FieldPath, c.Request.URL.Path),
					zap.String(logger.FieldMethod, c.Request.Method),
					zap.String("query", c.Request.URL.RawQuery),
					zap.String("ip", c.ClientIP()),
					zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
					zap.String("panic", fmt.Sprintf("%v", err)),
					zap.String("stack", string(debug.Stack())),
				)
				app.NewResponse(c).ToResponse(code.ErrorServerInternal)
				c.Abort()
			}
		}()

		c.Next()
	}
}
