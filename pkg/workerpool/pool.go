// Package workerpool 限制后台任务（音频归档、邮件发送）的并发数量
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	ErrWorkerPoolFull   = errors.New("worker pool queue is full")
	ErrWorkerPoolClosed = errors.New("worker pool is closed")
	ErrTaskCancelled    = errors.New("task was cancelled")
)

// Config Worker Pool 配置
type Config struct {
	MaxWorkers int `yaml:"max-workers" default:"8"`
	QueueSize  int `yaml:"queue-size" default:"256"`
}

func DefaultConfig() Config {
	return Config{MaxWorkers: 8, QueueSize: 256}
}

type task struct {
	ctx  context.Context
	name string
	fn   func(context.Context) error
	done chan error
}

// Pool 固定数量 worker 从有界队列取任务执行
type Pool struct {
	config Config
	logger *zap.Logger

	taskCh   chan task
	workerWg sync.WaitGroup

	activeCount atomic.Int64
	failedCount atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// New 创建并启动 Worker Pool，cfg 为 nil 时使用默认配置
func New(cfg *Config, logger *zap.Logger) *Pool {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.MaxWorkers > 0 {
			c.MaxWorkers = cfg.MaxWorkers
		}
		if cfg.QueueSize > 0 {
			c.QueueSize = cfg.QueueSize
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		config: c,
		logger: logger,
		taskCh: make(chan task, c.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < c.MaxWorkers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}

	p.logger.Info("worker pool started", zap.Int("maxWorkers", c.MaxWorkers), zap.Int("queueSize", c.QueueSize))
	return p
}

func (p *Pool) worker() {
	defer p.workerWg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case t, ok := <-p.taskCh:
			if !ok {
				return
			}
			p.execute(t)
		}
	}
}

func (p *Pool) execute(t task) {
	p.activeCount.Add(1)
	defer p.activeCount.Add(-1)

	err := p.run(t)
	if err != nil {
		p.failedCount.Add(1)
		if t.done == nil {
			p.logger.Warn("async task failed", zap.String("task", t.name), zap.Error(err))
		}
	}
	if t.done != nil {
		t.done <- err
	}
}

func (p *Pool) run(t task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panic: %v", t.name, r)
		}
	}()

	if t.ctx.Err() != nil {
		return ErrTaskCancelled
	}
	return t.fn(t.ctx)
}

func (p *Pool) enqueue(t task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrWorkerPoolClosed
	}
	select {
	case p.taskCh <- t:
		return nil
	default:
		return ErrWorkerPoolFull
	}
}

// Submit 提交任务并等待完成
func (p *Pool) Submit(ctx context.Context, name string, fn func(context.Context) error) error {
	done := make(chan error, 1)
	if err := p.enqueue(task{ctx: ctx, name: name, fn: fn, done: done}); err != nil {
		return err
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrWorkerPoolClosed
	}
}

// SubmitAsync 异步提交任务，失败只记录日志
func (p *Pool) SubmitAsync(ctx context.Context, name string, fn func(context.Context) error) error {
	return p.enqueue(task{ctx: ctx, name: name, fn: fn})
}

func (p *Pool) ActiveCount() int64 {
	return p.activeCount.Load()
}

func (p *Pool) QueuedCount() int {
	return len(p.taskCh)
}

func (p *Pool) IsClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

// Shutdown 停止接收新任务并等待队列中的任务完成，ctx 到期后强制取消
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.taskCh)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.workerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("worker pool shutdown completed")
		return nil
	case <-ctx.Done():
		p.cancel()
		p.logger.Warn("worker pool shutdown timeout, forcing cancellation")
		return ctx.Err()
	}
}

// Collectors 返回导出池状态的 prometheus 指标
func (p *Pool) Collectors(namespace string) []prometheus.Collector {
	return []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "worker_pool", Name: "active_tasks",
			Help: "Tasks currently executing.",
		}, func() float64 { return float64(p.activeCount.Load()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "worker_pool", Name: "queued_tasks",
			Help: "Tasks waiting in the queue.",
		}, func() float64 { return float64(len(p.taskCh)) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "worker_pool", Name: "failed_tasks_total",
			Help: "Tasks that returned an error or panicked.",
		}, func() float64 { return float64(p.failedCount.Load()) }),
	}
}
