// Package writequeue 串行化同一用户的笔记写操作
// SQLite allows a single writer; queuing per user avoids "database is locked" under
// concurrent voice commands while different users still write in parallel.
package writequeue

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrWriteQueueFull   = errors.New("write queue is full")
	ErrWriteQueueClosed = errors.New("write queue is closed")
	ErrWriteTimeout     = errors.New("write operation timeout")
)

// Config 写队列配置
type Config struct {
	QueueCapacity int           `yaml:"queue-capacity" default:"64"`
	WriteTimeout  time.Duration `yaml:"write-timeout" default:"30s"`
	IdleTimeout   time.Duration `yaml:"idle-timeout" default:"10m"`
}

func DefaultConfig() Config {
	return Config{QueueCapacity: 64, WriteTimeout: 30 * time.Second, IdleTimeout: 10 * time.Minute}
}

type writeOp struct {
	ctx    context.Context
	fn     func() error
	result chan error
}

type userQueue struct {
	ch       chan writeOp
	lastUsed time.Time
}

// Manager 为每个用户维护一个写协程，空闲超时后回收
type Manager struct {
	config Config
	logger *zap.Logger

	mu     sync.Mutex
	queues map[int64]*userQueue
	closed bool

	wg     sync.WaitGroup
	stopCh chan struct{}
}

// New 创建写队列管理器，cfg 为 nil 时使用默认配置
func New(cfg *Config, logger *zap.Logger) *Manager {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.QueueCapacity > 0 {
			c.QueueCapacity = cfg.QueueCapacity
		}
		if cfg.WriteTimeout > 0 {
			c.WriteTimeout = cfg.WriteTimeout
		}
		if cfg.IdleTimeout > 0 {
			c.IdleTimeout = cfg.IdleTimeout
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		config: c,
		logger: logger,
		queues: make(map[int64]*userQueue),
		stopCh: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.reapIdle()
	return m
}

// Execute 在用户的写队列中执行 fn 并等待结果
func (m *Manager) Execute(ctx context.Context, uid int64, fn func() error) error {
	op := writeOp{ctx: ctx, fn: fn, result: make(chan error, 1)}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrWriteQueueClosed
	}
	q := m.queues[uid]
	if q == nil {
		q = &userQueue{ch: make(chan writeOp, m.config.QueueCapacity)}
		m.queues[uid] = q
		m.wg.Add(1)
		go m.drain(uid, q.ch)
	}
	q.lastUsed = time.Now()
	select {
	case q.ch <- op:
	default:
		m.mu.Unlock()
		return ErrWriteQueueFull
	}
	m.mu.Unlock()

	timer := time.NewTimer(m.config.WriteTimeout)
	defer timer.Stop()

	select {
	case err := <-op.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrWriteTimeout
	}
}

func (m *Manager) drain(uid int64, ch chan writeOp) {
	defer m.wg.Done()
	for op := range ch {
		if op.ctx.Err() != nil {
			op.result <- op.ctx.Err()
			continue
		}
		op.result <- m.run(uid, op.fn)
	}
}

func (m *Manager) run(uid int64, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("write queue operation panic", zap.Int64("uid", uid), zap.Any("panic", r))
			err = errors.New("write operation panic")
		}
	}()
	return fn()
}

func (m *Manager) reapIdle() {
	defer m.wg.Done()
	ticker := time.NewTicker(m.config.IdleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.mu.Lock()
			for uid, q := range m.queues {
				if len(q.ch) == 0 && time.Since(q.lastUsed) > m.config.IdleTimeout {
					close(q.ch)
					delete(m.queues, uid)
				}
			}
			m.mu.Unlock()
		}
	}
}

// QueueCount 当前活跃的用户队列数
func (m *Manager) QueueCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queues)
}

// Shutdown 停止接收写操作并等待队列清空
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	for uid, q := range m.queues {
		close(q.ch)
		delete(m.queues, uid)
	}
	close(m.stopCh)
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		m.logger.Warn("write queue shutdown timeout")
		return ctx.Err()
	}
}
