package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	commandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voice_note",
		Name:      "commands_total",
		Help:      "Voice commands executed, by action and result status.",
	}, []string{"action", "status"})

	speechRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voice_note",
		Name:      "speech_requests_total",
		Help:      "Calls to the transcription and translation providers.",
	}, []string{"kind", "provider", "status"})

	speechDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "voice_note",
		Name:      "speech_request_duration_seconds",
		Help:      "Latency of transcription and translation provider calls.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"kind", "provider"})
)

// RegisterMetrics 注册服务层指标，重复注册忽略
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{commandsTotal, speechRequestsTotal, speechDuration} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}
	return nil
}
