// Package tracer 初始化 jaeger 链路追踪
package tracer

import (
	"io"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// NewJaegerTracer 创建 jaeger tracer 并设为全局 tracer
// sampleRate 为概率采样比例，超出 [0,1] 时按 1 处理
func NewJaegerTracer(serviceName, agentHostPort string, sampleRate float64) (opentracing.Tracer, io.Closer, error) {
	if sampleRate <= 0 || sampleRate > 1 {
		sampleRate = 1
	}
	cfg := &jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeProbabilistic,
			Param: sampleRate,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:            false,
			BufferFlushInterval: time.Second,
			LocalAgentHostPort:  agentHostPort,
		},
	}
	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, nil, errors.Wrap(err, "create jaeger tracer failed")
	}
	opentracing.SetGlobalTracer(tracer)
	return tracer, closer, nil
}
