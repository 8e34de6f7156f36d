package speech

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// Translation 翻译结果
type Translation struct {
	Text           string
	SourceLanguage string
}

// Translator 文本翻译
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, target string) (*Translation, error)
}

// TranslateConfig 翻译配置
type TranslateConfig struct {
	// Provider google | passthrough
	Provider string `yaml:"provider" default:"google"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api-key"`
	// Target 目标语言
	Target  string        `yaml:"target" default:"en"`
	Timeout time.Duration `yaml:"timeout" default:"30s"`
}

// NewTranslator 按配置创建翻译器，相同的并发请求只调用一次外部服务
func NewTranslator(cfg TranslateConfig, client *http.Client) (Translator, error) {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	var t Translator
	switch strings.ToLower(cfg.Provider) {
	case ProviderGoogle, "":
		t = newGoogleTranslator(cfg, client)
	case ProviderPassthrough:
		t = PassthroughTranslator{}
	default:
		return nil, fmt.Errorf("translator %q: %w", cfg.Provider, ErrUnknownProvider)
	}
	return &dedupTranslator{next: t, timeout: cfg.Timeout}, nil
}

// PassthroughTranslator 原样返回输入，源语言为 und
type PassthroughTranslator struct{}

func (PassthroughTranslator) Name() string {
	return ProviderPassthrough
}

func (PassthroughTranslator) Translate(_ context.Context, text, _ string) (*Translation, error) {
	return &Translation{Text: normalize(text), SourceLanguage: "und"}, nil
}

// dedupTranslator 用 singleflight 合并相同文本与目标语言的并发请求
type dedupTranslator struct {
	next    Translator
	timeout time.Duration
	group   singleflight.Group
}

func (d *dedupTranslator) Name() string {
	return d.next.Name()
}

func (d *dedupTranslator) Translate(ctx context.Context, text, target string) (*Translation, error) {
	ch := d.group.DoChan(target+"\x00"+text, func() (interface{}, error) {
		// 共享调用不随任何一个调用方取消，只受翻译超时约束
		sctx, cancel := withTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		return d.next.Translate(sctx, text, target)
	})

	select {
	case <-ctx.Done():
		return nil, fault(d.Name(), ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		tr := *res.Val.(*Translation)
		return &tr, nil
	}
}

var (
	_ Translator = PassthroughTranslator{}
	_ Translator = (*dedupTranslator)(nil)
)
