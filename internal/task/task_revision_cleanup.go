package task

import (
	"context"

	"github.com/haierkeys/voice-note-service/internal/app"

	"go.uber.org/zap"
)

func init() {
	Register(NewRevisionCleanupTask)
}

// RevisionPruner 每条笔记只保留最近 keep 个修订
type RevisionPruner interface {
	PruneRevisions(ctx context.Context, keep int) (int64, error)
}

// RevisionCleanupTask 修订清理任务
type RevisionCleanupTask struct {
	pruner RevisionPruner
	keep   int
	spec   string
	logger *zap.Logger
}

// NewRevisionCleanupTask revision-keep-versions 为 0 时不启用
func NewRevisionCleanupTask(a *app.App) (Task, error) {
	cfg := a.Config()
	if cfg.App.RevisionKeepVersions <= 0 || cfg.App.RevisionCleanupCron == "" {
		return nil, nil
	}
	return &RevisionCleanupTask{
		pruner: a.NoteService,
		keep:   cfg.App.RevisionKeepVersions,
		spec:   cfg.App.RevisionCleanupCron,
		logger: a.Logger(),
	}, nil
}

func (t *RevisionCleanupTask) Name() string {
	return "RevisionCleanupTask"
}

func (t *RevisionCleanupTask) Run(ctx context.Context) error {
	n, err := t.pruner.PruneRevisions(ctx, t.keep)
	if err != nil {
		return err
	}
	if n > 0 {
		t.logger.Info(t.Name()+" completed", zap.Int64("removed", n), zap.Int("keep", t.keep))
	}
	return nil
}

func (t *RevisionCleanupTask) Spec() string {
	return t.spec
}

func (t *RevisionCleanupTask) IsStartupRun() bool {
	return false
}
