// Package safe_close 协调多个后台协程的统一退出
package safe_close

import (
	"sync"
)

// SafeClose 发出一次关闭信号并等待所有挂载的协程结束
type SafeClose struct {
	closeSignal chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup
	mu          sync.Mutex
	err         error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{closeSignal: make(chan struct{})}
}

// Attach 启动一个协程，fn 在收到 closeSignal 后清理并调用 done
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go fn(s.wg.Done, s.closeSignal)
}

// SendCloseSignal 发送关闭信号，只有第一次调用生效，err 作为关闭原因保存
func (s *SafeClose) SendCloseSignal(err error) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.closeSignal)
	})
}

// IsClosed 是否已发送关闭信号
func (s *SafeClose) IsClosed() bool {
	select {
	case <-s.closeSignal:
		return true
	default:
		return false
	}
}

// WaitClosed 等待关闭信号和所有协程结束，返回关闭原因
func (s *SafeClose) WaitClosed() error {
	<-s.closeSignal
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
