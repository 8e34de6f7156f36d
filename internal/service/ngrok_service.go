package service

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/url"

	"go.uber.org/zap"
	"golang.ngrok.com/ngrok/v2"
)

// NgrokConfig ngrok 隧道配置
type NgrokConfig struct {
	IsEnable  bool   `yaml:"is-enable"`
	AuthToken string `yaml:"auth-token"`
	Domain    string `yaml:"domain"`
}

// NgrokService 把本地 HTTP 服务暴露到公网，便于手机端直接上传录音
type NgrokService interface {
	Start(ctx context.Context, addr string) error
	Stop(ctx context.Context) error
	TunnelURL() string
}

type ngrokService struct {
	logger   *zap.Logger
	config   NgrokConfig
	listener net.Listener
	url      string
	agent    ngrok.Agent
}

// NewNgrokService 创建 ngrok 服务
func NewNgrokService(logger *zap.Logger, config NgrokConfig) NgrokService {
	return &ngrokService{logger: logger, config: config}
}

// Start 建立隧道并把连接转发到 addr
func (s *ngrokService) Start(ctx context.Context, addr string) error {
	if s.config.AuthToken == "" {
		return fmt.Errorf("ngrok auth token is required")
	}

	agent, err := ngrok.NewAgent(ngrok.WithAuthtoken(s.config.AuthToken))
	if err != nil {
		return fmt.Errorf("failed to create ngrok agent: %w", err)
	}
	s.agent = agent

	var endpointOpts []ngrok.EndpointOption
	if s.config.Domain != "" {
		endpointOpts = append(endpointOpts, ngrok.WithURL("https://"+s.config.Domain))
	}

	ln, err := agent.Listen(ctx, endpointOpts...)
	if err != nil {
		return fmt.Errorf("failed to start ngrok tunnel: %w", err)
	}
	s.listener = ln

	if u, ok := ln.(interface{ URL() *url.URL }); ok {
		s.url = u.URL().String()
	} else {
		s.url = ln.Addr().String()
	}

	s.logger.Info("ngrok tunnel established", zap.String("url", s.url), zap.String("forward", addr))

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				s.logger.Debug("ngrok tunnel accept stopped", zap.Error(err))
				return
			}
			go s.forward(conn, addr)
		}
	}()

	return nil
}

func (s *ngrokService) forward(conn net.Conn, addr string) {
	defer conn.Close()
	local, err := net.Dial("tcp", addr)
	if err != nil {
		s.logger.Error("ngrok dial local address failed", zap.String("addr", addr), zap.Error(err))
		return
	}
	defer local.Close()

	done := make(chan struct{}, 2)
	go func() {
		_, _ = io.Copy(local, conn)
		done <- struct{}{}
	}()
	go func() {
		_, _ = io.Copy(conn, local)
		done <- struct{}{}
	}()
	<-done
}

// Stop 关闭隧道
func (s *ngrokService) Stop(ctx context.Context) error {
	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			s.logger.Warn("close ngrok tunnel failed", zap.Error(err))
		}
	}
	if s.agent != nil {
		if err := s.agent.Disconnect(); err != nil {
			s.logger.Warn("disconnect ngrok agent failed", zap.Error(err))
		}
	}
	return nil
}

func (s *ngrokService) TunnelURL() string {
	return s.url
}
