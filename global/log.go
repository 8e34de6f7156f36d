package global

import (
	"fmt"
	"runtime"

	dumpx "github.com/gookit/goutil/dump"
	"go.uber.org/zap"
)

// Logger 当前服务使用的日志器，配置重载后替换
var Logger *zap.Logger

func Log() *zap.Logger {
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger
}

// Dump 调试模式下打印变量，附带调用位置
func Dump(a ...any) {
	_, file, line, ok := runtime.Caller(1)
	if ok {
		fmt.Printf("\033[32m%s:%d:\033[0m\n", file, line)
	}
	dumpx.P(a...)
}
