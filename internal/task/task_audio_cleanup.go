package task

import (
	"context"
	"time"

	"github.com/haierkeys/voice-note-service/internal/app"

	"go.uber.org/zap"
)

func init() {
	Register(NewAudioCleanupTask)
}

// AudioCleaner 删除过期的本地音频
type AudioCleaner interface {
	CleanupOlderThan(ctx context.Context, age time.Duration) (int, error)
}

// AudioCleanupTask 按保留时间清理上传目录
type AudioCleanupTask struct {
	cleaner   AudioCleaner
	retention time.Duration
	spec      string
	logger    *zap.Logger
}

// NewAudioCleanupTask 未配置保留时间时不启用
func NewAudioCleanupTask(a *app.App) (Task, error) {
	cfg := a.Config()
	retention := cfg.GetAudioRetention()
	if retention <= 0 || cfg.Audio.CleanupCron == "" {
		return nil, nil
	}
	return &AudioCleanupTask{
		cleaner:   a.AudioService,
		retention: retention,
		spec:      cfg.Audio.CleanupCron,
		logger:    a.Logger(),
	}, nil
}

func (t *AudioCleanupTask) Name() string {
	return "AudioCleanupTask"
}

func (t *AudioCleanupTask) Run(ctx context.Context) error {
	n, err := t.cleaner.CleanupOlderThan(ctx, t.retention)
	if err != nil {
		return err
	}
	if n > 0 {
		t.logger.Info(t.Name()+" completed", zap.Int("removed", n), zap.Duration("retention", t.retention))
	}
	return nil
}

func (t *AudioCleanupTask) Spec() string {
	return t.spec
}

func (t *AudioCleanupTask) IsStartupRun() bool {
	return true
}
