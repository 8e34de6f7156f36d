package service

import (
	"context"
	"errors"

	"github.com/haierkeys/voice-note-service/pkg/code"
	"github.com/haierkeys/voice-note-service/pkg/workerpool"
	"github.com/haierkeys/voice-note-service/pkg/writequeue"

	"gorm.io/gorm"
)

// TaskSubmitter 后台任务提交，由 workerpool.Pool 实现
type TaskSubmitter interface {
	SubmitAsync(ctx context.Context, name string, fn func(context.Context) error) error
}

// WriteExecutor 同一用户的写操作串行执行，由 writequeue.Manager 实现
type WriteExecutor interface {
	Execute(ctx context.Context, uid int64, fn func() error) error
}

// NoteNotifier 向用户的所有 websocket 会话推送事件
type NoteNotifier interface {
	PushToUser(uid int64, action string, data any)
}

var (
	_ TaskSubmitter = (*workerpool.Pool)(nil)
	_ WriteExecutor = (*writequeue.Manager)(nil)
)

// directExecutor 不排队，直接执行
type directExecutor struct{}

func (directExecutor) Execute(_ context.Context, _ int64, fn func() error) error {
	return fn()
}

// nopNotifier 不推送
type nopNotifier struct{}

func (nopNotifier) PushToUser(int64, string, any) {}

// dbError 记录不存在时返回 notFound，其他数据库错误返回 ErrorDBQuery
func dbError(err error, notFound *code.Code) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	var c *code.Code
	if errors.As(err, &c) {
		return c
	}
	return code.ErrorDBQuery.WithDetails(err.Error())
}

// queueError 写队列自身的错误
func queueError(err error) error {
	switch {
	case errors.Is(err, writequeue.ErrWriteQueueFull):
		return code.ErrorTooManyRequests
	case errors.Is(err, writequeue.ErrWriteTimeout), errors.Is(err, context.DeadlineExceeded):
		return code.ErrorRequestTimeout
	case errors.Is(err, writequeue.ErrWriteQueueClosed):
		return code.ErrorServiceUnavailable.WithDetails(err.Error())
	}
	return err
}
