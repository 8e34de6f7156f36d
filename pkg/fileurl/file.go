package fileurl

import (
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IsDir 判断所给路径是否为文件夹
func IsDir(p string) bool {
	s, err := os.Stat(p)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// GetFileExt 获取小写的文件后缀，不含点
func GetFileExt(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// IsContainExt 判断文件后缀是否在允许范围内
func IsContainExt(name string, allowExts []string) bool {
	ext := GetFileExt(name)
	if ext == "" {
		return false
	}
	return slices.ContainsFunc(allowExts, func(e string) bool {
		return strings.EqualFold(strings.TrimPrefix(e, "."), ext)
	})
}

// RandomFileName 生成 "<uuid>.<ext>" 形式的文件名
func RandomFileName(ext string) string {
	return uuid.NewString() + "." + strings.TrimPrefix(ext, ".")
}

// GetDatePath 获取日期保存路径
func GetDatePath(timeFormat string) string {
	if timeFormat == "" {
		timeFormat = "200601/02"
	}
	return PathSuffixCheckAdd(time.Now().Format(timeFormat), "/")
}

// IsExist 判断所给路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath 创建文件所在目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// PathSuffixCheckAdd 检查路径后缀，如果没有则添加
func PathSuffixCheckAdd(p string, suffix string) string {
	if !strings.HasSuffix(p, suffix) {
		p = p + suffix
	}
	return p
}

// SafeJoin 拼接 root 与 name，拒绝跳出 root 的路径
func SafeJoin(root, name string) (string, bool) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", false
	}
	return filepath.Join(root, name), true
}
