package middleware

import (
	"strings"

	"github.com/haierkeys/voice-note-service/pkg/app"
	"github.com/haierkeys/voice-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// UserAuthTokenWithConfig 用户 Token 认证中间件
// Token 按顺序从 Authorization 头、token 头、token 查询参数读取，"Bearer " 前缀可选
func UserAuthTokenWithConfig(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)

		token := ExtractToken(c)
		if token == "" {
			response.ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		user, err := app.ParseTokenWithKey(token, secretKey)
		if err != nil {
			response.ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}
		c.Set("user_token", user)

		c.Next()
	}
}

// ExtractToken 从请求中取出原始 Token
func ExtractToken(c *gin.Context) string {
	var token string
	if s := c.GetHeader("Authorization"); s != "" {
		token = s
	} else if s := c.GetHeader("Token"); s != "" {
		token = s
	} else if s, ok := c.GetQuery("token"); ok {
		token = s
	}

	token = strings.TrimSpace(token)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}
