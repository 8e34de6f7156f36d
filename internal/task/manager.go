// Package task 后台定时任务
package task

import (
	"context"

	"github.com/haierkeys/voice-note-service/internal/app"
	"github.com/haierkeys/voice-note-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器,负责创建和管理所有任务
type Manager struct {
	app       *app.App
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewManager 创建任务管理器
func NewManager(a *app.App, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		app:       a,
		scheduler: NewScheduler(a.Logger(), sc),
		logger:    a.Logger(),
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks() error {
	for _, factory := range GetFactories() {
		t, err := factory(m.app)
		if err != nil {
			m.logger.Warn("failed to create task", zap.Error(err))
			return err
		}
		if t == nil {
			continue
		}
		if err := m.scheduler.AddTask(&trackedTask{Task: t, app: m.app}); err != nil {
			return err
		}
		m.logger.Info("task registered", zap.String("name", t.Name()), zap.String("spec", t.Spec()))
	}
	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}

// trackedTask 关闭期间不再启动新的执行，已开始的执行计入 App 的后台操作
type trackedTask struct {
	Task
	app *app.App
}

func (t *trackedTask) Run(ctx context.Context) error {
	if t.app.IsShuttingDown() {
		return nil
	}
	done := t.app.TrackOperation()
	defer done()
	return t.Task.Run(ctx)
}
