package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString 按字段名返回错误消息
func (v ValidErrors) MapsToString() map[string]string {
	out := make(map[string]string, len(v))
	for _, err := range v {
		out[err.Key] = err.Message
	}
	return out
}

// BindAndValid 绑定请求参数并校验，校验失败时使用请求语言翻译错误消息
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	if err := c.ShouldBind(v); err != nil {
		verrs, ok := err.(val.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{Key: "request", Message: err.Error()})
			return false, errs
		}

		trans, _ := c.Value("trans").(ut.Translator)
		if trans == nil {
			for _, fe := range verrs {
				errs = append(errs, &ValidError{Key: fe.Field(), Message: fe.Error()})
			}
			return false, errs
		}

		for key, value := range verrs.Translate(trans) {
			if i := strings.Index(key, "."); i >= 0 {
				key = key[i+1:]
			}
			errs = append(errs, &ValidError{Key: key, Message: value})
		}
		return false, errs
	}

	return true, nil
}
