// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"time"

	"github.com/haierkeys/voice-note-service/internal/domain"
)

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	User  UserServiceConfig  // User related config // 用户相关配置
	App   AppServiceConfig   // App related config // 应用相关配置
	Audio AudioServiceConfig // Audio upload config // 音频上传配置
}

// UserServiceConfig user service configuration
// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	RegisterIsEnable bool // Whether registration is enabled // 注册是否启用
	WelcomeMail      bool // Send a welcome mail after registration // 注册后发送欢迎邮件
}

// AppServiceConfig app service configuration
// AppServiceConfig 应用服务配置
type AppServiceConfig struct {
	DefaultCategory      string   // Category for notes created without one // 未指定分类时使用的分类
	RevisionKeepVersions int      // Revisions kept per note, 0 keeps all // 每条笔记保留的修订数，0 表示全部保留
	Languages            []string // Default candidate languages // 默认候选语言
	TranslateTarget      string   // Translation target // 翻译目标语言
	MaxPageSize          int      // Upper bound of page size // 分页大小上限
}

// AudioServiceConfig audio upload configuration
// AudioServiceConfig 音频上传配置
type AudioServiceConfig struct {
	UploadDir   string        // Local directory for uploads // 本地上传目录
	AllowExts   []string      // Allowed extensions // 允许的文件后缀
	MaxSize     int64         // Max upload size in bytes // 最大上传字节数
	Retention   time.Duration // Local file retention, 0 keeps forever // 本地文件保留时长，0 表示永久保留
	ArchiveFile bool          // Archive uploads to storage // 是否归档到存储后端
}

func (c *ServiceConfig) defaultCategory() string {
	if c == nil || c.App.DefaultCategory == "" {
		return domain.DefaultCategory
	}
	return c.App.DefaultCategory
}

// DefaultMaxPageSize 未配置时的分页大小上限
const DefaultMaxPageSize = 100

func (c *ServiceConfig) maxPageSize() int {
	if c == nil || c.App.MaxPageSize <= 0 {
		return DefaultMaxPageSize
	}
	return c.App.MaxPageSize
}

func (c *ServiceConfig) translateTarget() string {
	if c == nil || c.App.TranslateTarget == "" {
		return "en"
	}
	return c.App.TranslateTarget
}
