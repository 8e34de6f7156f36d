package speech

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/unicode/norm"
)

// DefaultLanguages 默认候选语言
var DefaultLanguages = []string{"en-IN", "ta-IN", "hi-IN", "ml-IN", "kn-IN", "te-IN", "gu-IN", "bn-IN", "mr-IN", "pa-IN"}

// Language 语言信息
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ParseLanguages 解析逗号分隔的语言列表，返回规范化的 BCP 47 标签
// 空字符串返回 nil
func ParseLanguages(s string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tag, err := language.Parse(part)
		if err != nil {
			return nil, err
		}
		code := tag.String()
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	return out, nil
}

// DisplayName 语言的英文名称，无法解析时返回原值
func DisplayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}

// Describe 为每个语言代码附上英文名称
func Describe(codes []string) []Language {
	list := make([]Language, 0, len(codes))
	for _, c := range codes {
		list = append(list, Language{Code: c, Name: DisplayName(c)})
	}
	return list
}

// BaseLanguage 取语言的主标签，例如 ta-IN -> ta
func BaseLanguage(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}

// matchLanguageName 把 "tamil" 这类语言名映射回候选语言代码
func matchLanguageName(name string, candidates []string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if tag, err := language.Parse(name); err == nil {
		for _, c := range candidates {
			if BaseLanguage(c) == BaseLanguage(tag.String()) {
				return c
			}
		}
		return tag.String()
	}
	for _, c := range candidates {
		tag, err := language.Parse(c)
		if err != nil {
			continue
		}
		base, _ := tag.Base()
		if strings.EqualFold(display.English.Languages().Name(base), name) {
			return c
		}
	}
	return ""
}

// normalize 去除首尾空白并做 NFC 规范化
func normalize(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
