package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// MailConfig SMTP 配置
type MailConfig struct {
	IsEnable bool   `yaml:"is-enable"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" default:"587"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// MailService 发送通知邮件
type MailService interface {
	SendWelcome(ctx context.Context, to, name string) error
}

// MailSender 实际投递，测试中替换
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type mailService struct {
	config MailConfig
	sender MailSender
	logger *zap.Logger
}

// NewMailService 创建邮件服务，未启用时返回 nil
func NewMailService(cfg MailConfig, logger *zap.Logger) MailService {
	if !cfg.IsEnable || cfg.Host == "" {
		return nil
	}
	return NewMailServiceWithSender(cfg, gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), logger)
}

func NewMailServiceWithSender(cfg MailConfig, sender MailSender, logger *zap.Logger) MailService {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &mailService{config: cfg, sender: sender, logger: logger}
}

func (s *mailService) SendWelcome(ctx context.Context, to, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.From)
	m.SetAddressHeader("To", to, name)
	m.SetHeader("Subject", "Welcome to Voice Notes")
	m.SetBody("text/plain", fmt.Sprintf("Hi %s,\n\nYour account is ready. Speak a note in any supported language and it will be saved in English.\n", name))

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send welcome mail to %s: %w", to, err)
	}
	s.logger.Info("welcome mail sent", zap.String("to", to))
	return nil
}
