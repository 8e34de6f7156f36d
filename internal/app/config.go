// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haierkeys/voice-note-service/internal/dao"
	"github.com/haierkeys/voice-note-service/internal/service"
	"github.com/haierkeys/voice-note-service/internal/speech"
	"github.com/haierkeys/voice-note-service/pkg/convert"
	"github.com/haierkeys/voice-note-service/pkg/storage"
	"github.com/haierkeys/voice-note-service/pkg/util"
	"github.com/haierkeys/voice-note-service/pkg/workerpool"
	"github.com/haierkeys/voice-note-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File      string                 `yaml:"-"` // 配置文件路径，不序列化
	Server    ServerConfig           `yaml:"server"`
	Log       LogConfig              `yaml:"log"`
	Database  dao.DatabaseConfig     `yaml:"database"`
	App       AppSettings            `yaml:"app"`
	User      UserConfig             `yaml:"user"`
	Security  SecurityConfig         `yaml:"security"`
	Speech    speech.Config          `yaml:"speech"`
	Translate speech.TranslateConfig `yaml:"translate"`
	Audio     AudioConfig            `yaml:"audio"`
	Storage   storage.Config         `yaml:"storage"`
	Mail      service.MailConfig     `yaml:"mail"`
	Tracer    TracerConfig           `yaml:"tracer"`
	Ngrok     service.NgrokConfig    `yaml:"ngrok"`
	MCP       MCPConfig              `yaml:"mcp"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":8000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址，metrics 与 pprof，留空不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:"127.0.0.1:8001"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key" default:"voice-note-service-Auth-Token"`
	// TokenExpiry Token 过期时间，支持格式：7d（天）、24h（小时）、30m（分钟）
	TokenExpiry string `yaml:"token-expiry" default:"60m"`
	// AuthRateLimit /auth 接口每秒允许的请求数
	AuthRateLimit int64 `yaml:"auth-rate-limit" default:"10"`
}

// UserConfig 用户配置
type UserConfig struct {
	// RegisterIsEnable 注册是否启用
	RegisterIsEnable bool `yaml:"register-is-enable" default:"true"`
	// WelcomeMail 注册后发送欢迎邮件，需要配置 mail
	WelcomeMail bool `yaml:"welcome-mail" default:"false"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultPageSize 默认页面大小
	DefaultPageSize int `yaml:"default-page-size" default:"10"`
	// MaxPageSize 最大页面大小
	MaxPageSize int `yaml:"max-page-size" default:"100"`
	// DefaultContextTimeout 默认上下文超时时间（秒），语音请求包含外部调用，需大于 speech.timeout
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"90"`
	// DefaultCategory 笔记默认分类
	DefaultCategory string `yaml:"default-category" default:"General"`
	// RevisionKeepVersions 每条笔记保留的修订数，0 表示不清理
	RevisionKeepVersions int `yaml:"revision-keep-versions" default:"20"`
	// RevisionCleanupCron 修订清理任务的 cron 表达式
	RevisionCleanupCron string `yaml:"revision-cleanup-cron" default:"@every 1h"`

	// Worker Pool 配置
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"8"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"256"`

	// Write Queue 配置
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"64"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
	WriteQueueIdleTime string `yaml:"write-queue-idle-time" default:"10m"`
}

// AudioConfig 音频上传配置
type AudioConfig struct {
	// UploadSavePath 上传保存路径
	UploadSavePath string `yaml:"upload-save-path" default:"storage/uploads"`
	// AllowExts 允许的后缀，逗号分隔
	AllowExts string `yaml:"allow-exts" default:"wav,mp3,m4a"`
	// MaxSize 单个文件大小上限，支持 KB、MB
	MaxSize string `yaml:"max-size" default:"25MB"`
	// Retention 本地文件保留时间，0 或空表示永久保留
	Retention string `yaml:"retention" default:"24h"`
	// CleanupCron 清理任务的 cron 表达式
	CleanupCron string `yaml:"cleanup-cron" default:"@every 10m"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
	// JaegerAgent jaeger agent 地址 host:port，留空不上报
	JaegerAgent string `yaml:"jaeger-agent"`
	// ServiceName 上报的服务名
	ServiceName string `yaml:"service-name" default:"voice-note-service"`
	// SampleRate 采样比例 0-1
	SampleRate float64 `yaml:"sample-rate" default:"1"`
}

// MCPConfig Model Context Protocol 端点配置
type MCPConfig struct {
	IsEnable bool `yaml:"is-enable" default:"true"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 先填默认值，YAML 中出现的键覆盖默认值，显式的 false 也能保留
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	if _, err := speech.ParseLanguages(c.Speech.Languages); err != nil {
		return nil, realpath, errors.Wrap(err, "invalid speech.languages")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	if err := os.WriteFile(c.File, data, 0644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetWorkerPoolConfig 获取 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()

	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}

	return cfg
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	if timeout, err := util.ParseDuration(c.App.WriteQueueTimeout); err == nil && timeout > 0 {
		cfg.WriteTimeout = timeout
	}
	if idle, err := util.ParseDuration(c.App.WriteQueueIdleTime); err == nil && idle > 0 {
		cfg.IdleTimeout = idle
	}

	return cfg
}

// GetTokenExpiry 获取 Token 过期时间
func (c *AppConfig) GetTokenExpiry() time.Duration {
	if expiry, err := util.ParseDuration(c.Security.TokenExpiry); err == nil && expiry > 0 {
		return expiry
	}
	return 60 * time.Minute
}

// GetAudioMaxSize 音频大小上限（字节）
func (c *AppConfig) GetAudioMaxSize() int64 {
	return convert.StrTo(c.Audio.MaxSize).MustToSize(25 << 20)
}

// GetAudioRetention 本地音频保留时长
func (c *AppConfig) GetAudioRetention() time.Duration {
	d, err := util.ParseDuration(c.Audio.Retention)
	if err != nil {
		return 0
	}
	return d
}

// GetAudioExts 允许的音频后缀
func (c *AppConfig) GetAudioExts() []string {
	var exts []string
	for _, e := range strings.Split(c.Audio.AllowExts, ",") {
		if e = strings.TrimSpace(e); e != "" {
			exts = append(exts, strings.TrimPrefix(strings.ToLower(e), "."))
		}
	}
	if len(exts) == 0 {
		return service.DefaultAudioExts
	}
	return exts
}

// GetServiceConfig 提取 Service 层需要的配置
func (c *AppConfig) GetServiceConfig() *service.ServiceConfig {
	langs, _ := speech.ParseLanguages(c.Speech.Languages)
	return &service.ServiceConfig{
		User: service.UserServiceConfig{
			RegisterIsEnable: c.User.RegisterIsEnable,
			WelcomeMail:      c.User.WelcomeMail,
		},
		App: service.AppServiceConfig{
			DefaultCategory:      c.App.DefaultCategory,
			RevisionKeepVersions: c.App.RevisionKeepVersions,
			Languages:            langs,
			TranslateTarget:      c.Translate.Target,
			MaxPageSize:          c.App.MaxPageSize,
		},
		Audio: service.AudioServiceConfig{
			UploadDir:   c.Audio.UploadSavePath,
			AllowExts:   c.GetAudioExts(),
			MaxSize:     c.GetAudioMaxSize(),
			Retention:   c.GetAudioRetention(),
			ArchiveFile: c.Storage.IsEnabled,
		},
	}
}
