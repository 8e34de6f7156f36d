package code

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// lang 存储英文和中文文本
// lang stores the English and Chinese text of a message.
type lang struct {
	en    string
	zh_cn string
}

// 默认语言为英文
var lng = "en"

const FALLBACK_LNG = "en"

// GetMessage 根据当前全局语言返回消息，缺失时回退到英文
func (l lang) GetMessage() string {
	if lng == "" {
		lng = FALLBACK_LNG
	}
	val := reflect.ValueOf(l)
	if field := val.FieldByName(lng); field.IsValid() && field.String() != "" {
		return field.String()
	}
	if field := val.FieldByName(FALLBACK_LNG); field.IsValid() && field.String() != "" {
		return field.String()
	}
	return fmt.Sprintf("No message available for language: %s", lng)
}

// GetSupportedLanguages 返回 lang 支持的所有语言字段名
func GetSupportedLanguages() []string {
	var languages []string
	typ := reflect.TypeOf(lang{})
	for i := 0; i < typ.NumField(); i++ {
		languages = append(languages, typ.Field(i).Name)
	}
	return languages
}

// SetGlobalDefaultLang 设置全局默认语言，不支持时回退到英文并返回错误
func SetGlobalDefaultLang(language string) error {
	if slices.Contains(GetSupportedLanguages(), language) {
		lng = language
		return nil
	}
	lng = FALLBACK_LNG
	return errors.New("unsupported language type, set defaulting to " + FALLBACK_LNG)
}

// GetGlobalDefaultLang 获取全局默认语言
func GetGlobalDefaultLang() string {
	return lng
}
