package convert

import (
	"strconv"
	"strings"
)

type StrTo string

func (s StrTo) String() string {
	return string(s)
}

func (s StrTo) Int() (int, error) {
	return strconv.Atoi(s.String())
}

func (s StrTo) MustInt() int {
	v, _ := s.Int()
	return v
}

// ToSize 将字符串转换为字节大小，支持 KB, MB, B 后缀
func (s StrTo) ToSize() (int64, error) {
	sizeStr := strings.ToUpper(strings.TrimSpace(s.String()))
	if sizeStr == "" {
		return 0, nil
	}

	var multiplier int64 = 1
	switch {
	case strings.HasSuffix(sizeStr, "MB"):
		multiplier = 1024 * 1024
		sizeStr = strings.TrimSuffix(sizeStr, "MB")
	case strings.HasSuffix(sizeStr, "KB"):
		multiplier = 1024
		sizeStr = strings.TrimSuffix(sizeStr, "KB")
	case strings.HasSuffix(sizeStr, "B"):
		sizeStr = strings.TrimSuffix(sizeStr, "B")
	}

	size, err := strconv.ParseInt(strings.TrimSpace(sizeStr), 10, 64)
	if err != nil {
		return 0, err
	}
	return size * multiplier, nil
}

// MustToSize 将字符串转换为字节大小，出错或非正数时返回默认值
func (s StrTo) MustToSize(defaultVal int64) int64 {
	v, err := s.ToSize()
	if err != nil || v <= 0 {
		return defaultVal
	}
	return v
}
