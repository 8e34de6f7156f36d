package middleware

import (
	"github.com/haierkeys/voice-note-service/pkg/app"
	"github.com/haierkeys/voice-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoFound 404 处理
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		app.NewResponse(c).ToResponse(code.ErrorNotFoundAPI)
		c.Abort()
	}
}
