package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/haierkeys/voice-note-service/internal/dao"
	"github.com/haierkeys/voice-note-service/internal/domain"
	"github.com/haierkeys/voice-note-service/internal/service"
	"github.com/haierkeys/voice-note-service/internal/speech"
	pkgapp "github.com/haierkeys/voice-note-service/pkg/app"
	"github.com/haierkeys/voice-note-service/pkg/storage"
	"github.com/haierkeys/voice-note-service/pkg/workerpool"
	"github.com/haierkeys/voice-note-service/pkg/writequeue"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	workerPool    *workerpool.Pool
	writeQueueMgr *writequeue.Manager

	// Repository 层
	UserRepo          domain.UserRepository
	NoteRepo          domain.NoteRepository
	NoteRevisionRepo  domain.NoteRevisionRepository
	SchemaVersionRepo domain.SchemaVersionRepository

	// 外部适配器
	Transcriber speech.Transcriber
	Translator  speech.Translator
	Storage     storage.Storager
	httpClient  *http.Client

	// Service 层
	UserService    service.UserService
	NoteService    service.NoteService
	CommandService service.CommandService
	SpeechService  service.SpeechService
	AudioService   service.AudioService
	MailService    service.MailService

	// 基础设施组件
	TokenManager pkgapp.TokenManager
	Websocket    *pkgapp.WebsocketServer
	Registry     *prometheus.Registry

	startedAt time.Time

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// Option 替换容器中的组件，测试中注入假的适配器
type Option func(*App)

// WithTranscriber 使用指定的语音识别器
func WithTranscriber(t speech.Transcriber) Option {
	return func(a *App) { a.Transcriber = t }
}

// WithTranslator 使用指定的翻译器
func WithTranslator(t speech.Translator) Option {
	return func(a *App) { a.Translator = t }
}

// WithHTTPClient 外部服务使用的 HTTP 客户端
func WithHTTPClient(c *http.Client) Option {
	return func(a *App) { a.httpClient = c }
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		startedAt:  time.Now(),
		shutdownCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}

	// 外部适配器
	if a.Transcriber == nil {
		t, err := speech.NewTranscriber(cfg.Speech, a.httpClient)
		if err != nil {
			return nil, err
		}
		a.Transcriber = t
	}
	if a.Translator == nil {
		t, err := speech.NewTranslator(cfg.Translate, a.httpClient)
		if err != nil {
			return nil, err
		}
		a.Translator = t
	}
	if cfg.Storage.IsEnabled {
		s, err := storage.NewClient(&cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("storage %q: %w", cfg.Storage.Type, err)
		}
		a.Storage = s
	}

	// 初始化 Worker Pool
	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	// 初始化 Write Queue Manager
	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	dbConfig := cfg.Database
	dbConfig.RunMode = cfg.Server.RunMode
	a.Dao = dao.New(db, context.Background(),
		dao.WithConfig(&dbConfig),
		dao.WithLogger(logger),
	)

	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Issuer:    "voice-note-service",
		Expiry:    cfg.GetTokenExpiry(),
	})

	a.Websocket = pkgapp.NewWebsocketServer(pkgapp.WebsocketServerConfig{
		SecretKey: cfg.Security.AuthTokenKey,
	}, logger)

	// 初始化 Repository 层
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.NoteRevisionRepo = dao.NewNoteRevisionRepository(a.Dao)
	a.SchemaVersionRepo = dao.NewSchemaVersionRepository(a.Dao)

	svcConfig := cfg.GetServiceConfig()

	// 初始化 Service 层（依赖注入）
	a.MailService = service.NewMailService(cfg.Mail, logger)
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, a.MailService, a.workerPool, logger, svcConfig)
	a.NoteService = service.NewNoteService(a.NoteRepo, a.NoteRevisionRepo, a.writeQueueMgr, a.Websocket, logger, svcConfig)
	a.CommandService = service.NewCommandService(a.NoteService, logger)
	a.SpeechService = service.NewSpeechService(a.Transcriber, a.Translator, a.CommandService, logger, svcConfig)
	a.AudioService = service.NewAudioService(a.SpeechService, a.Storage, a.workerPool, logger, svcConfig)

	// 指标
	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Registry.MustRegister(a.workerPool.Collectors("voice_note")...)
	if err := service.RegisterMetrics(a.Registry); err != nil {
		return nil, err
	}

	logger.Info("App container initialized successfully",
		zap.String("transcriber", a.Transcriber.Name()),
		zap.String("translator", a.Translator.Name()),
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// Uptime 运行时长
func (a *App) Uptime() time.Duration {
	return time.Since(a.startedAt)
}

// WorkerPool 获取 Worker Pool
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// WriteQueueManager 获取 Write Queue Manager
func (a *App) WriteQueueManager() *writequeue.Manager {
	return a.writeQueueMgr
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：Worker Pool -> Write Queue Manager -> 后台操作 -> Database
// ctx 为 nil 时使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	select {
	case <-a.shutdownCh:
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	// 1. 关闭 Worker Pool（停止接受新任务，等待现有任务完成）
	if a.workerPool != nil {
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("Worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		}
	}

	// 2. 关闭 Write Queue Manager（排空所有队列）
	if a.writeQueueMgr != nil {
		if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
			a.logger.Warn("write queue manager shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
		}
	}

	// 3. 等待所有后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	// 4. 关闭数据库连接
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
