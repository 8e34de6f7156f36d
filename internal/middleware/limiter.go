package middleware

import (
	"github.com/haierkeys/voice-note-service/pkg/app"
	"github.com/haierkeys/voice-note-service/pkg/code"
	"github.com/haierkeys/voice-note-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter 限流中间件，未配置规则的路径不限流
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bucket, ok := l.GetBucket(l.Key(c)); ok {
			if bucket.TakeAvailable(1) == 0 {
				app.NewResponse(c).ToResponse(code.ErrorTooManyRequests)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
