package task

import (
	"context"
	"fmt"

	"github.com/haierkeys/voice-note-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	Spec() string                  // cron 表达式，支持 @every 1h 这类描述符
	IsStartupRun() bool            // 是否立即执行一次
}

// cronParser 五段式 cron，同时支持描述符
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSpec 校验 cron 表达式
func ParseSpec(spec string) (cron.Schedule, error) {
	return cronParser.Parse(spec)
}

// cronLogger 把 cron 内部日志转给 zap
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}

// Scheduler 任务调度器
type Scheduler struct {
	logger *zap.Logger
	cron   *cron.Cron
	sc     *safe_close.SafeClose
	tasks  []Task
}

// NewScheduler 创建任务调度器
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	cl := cronLogger{sugar: logger.Sugar()}
	return &Scheduler{
		logger: logger,
		sc:     sc,
		cron: cron.New(
			cron.WithParser(cronParser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) error {
	if _, err := s.cron.AddFunc(task.Spec(), func() { s.run(task, false) }); err != nil {
		return fmt.Errorf("task %s: invalid spec %q: %w", task.Name(), task.Spec(), err)
	}
	s.tasks = append(s.tasks, task)
	return nil
}

// Tasks 已添加的任务
func (s *Scheduler) Tasks() []Task {
	return s.tasks
}

// run 执行一次任务，panic 只记录日志
func (s *Scheduler) run(task Task, startup bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panic",
				zap.String("name", task.Name()),
				zap.Bool("startupRun", startup),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	s.logger.Info("task running", zap.String("name", task.Name()), zap.Bool("startupRun", startup))
	if err := task.Run(context.Background()); err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.Bool("startupRun", startup),
			zap.Error(err))
	}
}

// Start 启动所有任务，收到关闭信号后等待正在执行的任务结束
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		if task.IsStartupRun() {
			go s.run(task, true)
		}
	}

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		s.cron.Start()
		<-closeSignal
		<-s.cron.Stop().Done()
		s.logger.Info("tasks stopped")
	})
}
