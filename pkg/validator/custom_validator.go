package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

// CustomValidator 实现 gin 的 binding.StructValidator，延迟初始化底层校验器
type CustomValidator struct {
	Once     sync.Once
	Validate *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		return v.ValidateStruct(value.Elem().Interface())
	case reflect.Struct:
		v.lazyinit()
		return v.Validate.Struct(obj)
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if err := v.ValidateStruct(value.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.Validate
}

func (v *CustomValidator) lazyinit() {
	v.Once.Do(func() {
		v.Validate = validator.New()
		v.Validate.SetTagName("binding")
	})
}

var _ binding.StructValidator = (*CustomValidator)(nil)

// RegisterCustom 在 gin 当前使用的校验器上注册自定义规则
//
//	not_blank: 去除首尾空白后不能为空
//	bcp47:     逗号分隔的 BCP 47 语言标签列表
func RegisterCustom() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

// Register 在指定校验器上注册自定义规则
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("not_blank", notBlank); err != nil {
		return err
	}
	return v.RegisterValidation("bcp47", languageList)
}

func notBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

func languageList(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	for _, tag := range strings.Split(s, ",") {
		if _, err := language.Parse(strings.TrimSpace(tag)); err != nil {
			return false
		}
	}
	return true
}
