package middleware

import (
	"strings"

	"github.com/haierkeys/voice-note-service/pkg/code"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// LangWithTranslator 根据 lang 参数或请求头选择校验消息与响应消息的语言
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string
		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		}
		lang = strings.ToLower(strings.ReplaceAll(lang, "-", "_"))

		// zh / zh_cn / zh_hans 统一使用中文
		transKey, codeLang := "en", "en"
		if strings.HasPrefix(lang, "zh") {
			transKey, codeLang = "zh", "zh_cn"
		}

		trans, found := uni.GetTranslator(transKey)
		if !found {
			trans, _ = uni.GetTranslator("en")
		}
		c.Set("trans", trans)

		_ = code.SetGlobalDefaultLang(codeLang)

		c.Next()
	}
}
