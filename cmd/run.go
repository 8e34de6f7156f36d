package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/haierkeys/voice-note-service/global"
	"github.com/haierkeys/voice-note-service/pkg/fileurl"
	"github.com/haierkeys/voice-note-service/pkg/util"

	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runFlags struct {
	dir     string // 项目根目录
	port    string // 启动端口
	runMode string // 启动模式
	config  string // 指定要使用的配置文件路径
}

// configCandidates 未指定配置文件时依次查找
var configCandidates = []string{
	"config/config-dev.yaml",
	"config.yaml",
	"config/config.yaml",
}

func init() {
	runEnv := new(runFlags)

	var runCommand = &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [-p port]",
		Short: "Run service",
		Run: func(cmd *cobra.Command, args []string) {
			if len(runEnv.dir) > 0 {
				if err := os.Chdir(runEnv.dir); err != nil {
					bootstrapLogger.Error("failed to change the current working directory", zap.Error(err))
				} else {
					bootstrapLogger.Info("working directory changed", zap.String("dir", runEnv.dir))
				}
			}

			if len(runEnv.config) <= 0 {
				path, err := resolveConfigPath()
				if err != nil {
					bootstrapLogger.Error("config file auto create error", zap.Error(err))
					return
				}
				runEnv.config = path
			}

			s, err := NewServer(runEnv)
			if err != nil {
				bootstrapLogger.Error("api service start err", zap.Error(err))
				return
			}

			holder := &serverHolder{s: s}
			w := watchConfig(runEnv, holder)
			defer w.Close()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			s = holder.get()
			s.logger.Info("Received shutdown signal, initiating graceful shutdown...")
			s.sc.SendCloseSignal(nil)

			// 等待所有关闭处理器完成（包括 App Container 的优雅关闭）
			if err := s.sc.WaitClosed(); err != nil {
				s.logger.Error("Shutdown completed with error", zap.Error(err))
			} else {
				s.logger.Info("Service has been shut down gracefully.")
			}
		},
	}

	rootCmd.AddCommand(runCommand)
	fs := runCommand.Flags()
	fs.StringVarP(&runEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&runEnv.port, "port", "p", "", "run port")
	fs.StringVarP(&runEnv.runMode, "mode", "m", "", "run mode")
	fs.StringVarP(&runEnv.config, "config", "c", "", "config file")
}

// resolveConfigPath 查找配置文件，都不存在时写出默认配置并替换为随机密钥
func resolveConfigPath() (string, error) {
	for _, p := range configCandidates {
		if fileurl.IsExist(p) {
			return p, nil
		}
	}

	path := "config/config.yaml"
	bootstrapLogger.Warn("config file not found, creating default config", zap.String("path", path))

	content := strings.Replace(configDefault, "voice-note-service-Auth-Token", util.GetRandomString(32), 1)

	if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	bootstrapLogger.Info("config file auto create successfully", zap.String("path", path))
	return path, nil
}

// serverHolder 配置热重载时替换正在运行的 Server
type serverHolder struct {
	mu sync.Mutex
	s  *Server
}

func (h *serverHolder) get() *Server {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.s
}

func (h *serverHolder) set(s *Server) {
	h.mu.Lock()
	h.s = s
	h.mu.Unlock()
}

// watchConfig 配置文件写入后关闭旧 Server 并按新配置重建
func watchConfig(runEnv *runFlags, holder *serverHolder) *watcher.Watcher {
	w := watcher.New()

	// 每个监听周期至多接收 1 个事件
	w.SetMaxEvents(1)
	// 只通知写入事件
	w.FilterOps(watcher.Write)

	go func() {
		for {
			select {
			case event := <-w.Event:
				old := holder.get()
				global.Log().Info("config watcher change", zap.String("event", event.Op.String()), zap.String("file", event.Path))
				old.sc.SendCloseSignal(nil)
				if err := old.sc.WaitClosed(); err != nil {
					global.Log().Warn("previous server closed with error", zap.Error(err))
				}

				s, err := NewServer(runEnv)
				if err != nil {
					bootstrapLogger.Error("service restart err", zap.Error(err))
					continue
				}
				holder.set(s)

			case err := <-w.Error:
				bootstrapLogger.Error("config watcher error", zap.Error(err))
			case <-w.Closed:
				bootstrapLogger.Info("config watcher closed")
				return
			}
		}
	}()

	if err := w.Add(runEnv.config); err != nil {
		bootstrapLogger.Error("config watcher file error", zap.Error(err))
		return w
	}

	go func() {
		if err := w.Start(time.Second * 5); err != nil {
			bootstrapLogger.Error("config watcher start error", zap.Error(err))
		}
	}()
	return w
}
