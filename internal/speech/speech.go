// Package speech 语音识别与翻译适配器
//
// Transcriber 把音频转成源语言文本，Translator 把文本翻译为目标语言。
// 具体实现通过 HTTP 调用外部服务，由配置中的 provider 选择。
package speech

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNoSpeech 服务正常返回但没有识别出任何语音
	ErrNoSpeech = errors.New("no speech recognized")
	// ErrServiceFault 外部服务不可用、超时或返回错误
	ErrServiceFault = errors.New("speech service fault")
	// ErrUnknownProvider 配置了未知的 provider
	ErrUnknownProvider = errors.New("unknown provider")

	errEmptyTranslation = errors.New("empty translation result")
)

const (
	ProviderGoogle      = "google"
	ProviderWhisper     = "whisper"
	ProviderPassthrough = "passthrough"
)

// Audio 待识别的音频
type Audio struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Ext 小写的文件后缀，不含点
func (a *Audio) Ext() string {
	i := strings.LastIndexByte(a.Filename, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(a.Filename[i+1:])
}

// TranscribeOptions 识别参数
type TranscribeOptions struct {
	// Languages 候选语言（BCP 47），第一个为主语言
	Languages []string
}

// Transcript 识别结果
type Transcript struct {
	Text       string
	Language   string
	Confidence float64
}

// Transcriber 语音识别
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, audio *Audio, opts TranscribeOptions) (*Transcript, error)
}

// Config 语音识别配置
type Config struct {
	// Provider google | whisper
	Provider string `yaml:"provider" default:"google"`
	// Endpoint 服务地址，留空使用官方地址
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api-key"`
	// Model whisper 模型名
	Model string `yaml:"model" default:"whisper-1"`
	// Languages 默认候选语言，逗号分隔
	Languages string `yaml:"languages" default:"en-IN,ta-IN,hi-IN,ml-IN,kn-IN,te-IN,gu-IN,bn-IN,mr-IN,pa-IN"`
	// SampleRateHertz 非 WAV/FLAC 音频的采样率，0 表示由服务判断
	SampleRateHertz int `yaml:"sample-rate-hertz"`
	// Timeout 单次调用超时
	Timeout time.Duration `yaml:"timeout" default:"30s"`
}

// NewTranscriber 按配置创建识别器，client 为 nil 时使用带超时的默认客户端
func NewTranscriber(cfg Config, client *http.Client) (Transcriber, error) {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	switch strings.ToLower(cfg.Provider) {
	case ProviderGoogle, "":
		return newGoogleTranscriber(cfg, client), nil
	case ProviderWhisper:
		return newWhisperTranscriber(cfg, client), nil
	}
	return nil, fmt.Errorf("transcriber %q: %w", cfg.Provider, ErrUnknownProvider)
}

// fault 包装外部服务错误，使 errors.Is(err, ErrServiceFault) 成立
func fault(provider string, err error) error {
	return fmt.Errorf("%s: %w: %w", provider, ErrServiceFault, err)
}

// withTimeout 为单次调用设置超时
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
