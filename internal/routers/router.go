package routers

import (
	"time"

	_ "github.com/haierkeys/voice-note-service/docs"
	"github.com/haierkeys/voice-note-service/internal/app"
	"github.com/haierkeys/voice-note-service/internal/middleware"
	"github.com/haierkeys/voice-note-service/internal/routers/api_router"
	"github.com/haierkeys/voice-note-service/internal/routers/mcp_router"
	"github.com/haierkeys/voice-note-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// newMethodLimiter /auth 下的注册与登录按秒限流
func newMethodLimiter(perSecond int64) limiter.Face {
	if perSecond <= 0 {
		perSecond = 10
	}
	return limiter.NewMethodLimiter().AddBuckets(
		limiter.BucketRule{
			Key:          "/auth",
			FillInterval: time.Second,
			Capacity:     perSecond,
			Quantum:      perSecond,
		},
	)
}

func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()
	r.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
	r.Use(gin.Logger())
	r.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
	r.Use(middleware.RateLimiter(newMethodLimiter(cfg.Security.AuthRateLimit)))
	r.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
	r.Use(middleware.Cors())
	r.Use(middleware.LangWithTranslator(uni))
	r.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
	r.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

	// 创建 Handlers（注入 App Container）
	userHandler := api_router.NewUserHandler(appContainer)
	noteHandler := api_router.NewNoteHandler(appContainer)
	speechHandler := api_router.NewSpeechHandler(appContainer)
	audioHandler := api_router.NewAudioHandler(appContainer)
	healthHandler := api_router.NewHealthHandler(appContainer)

	r.POST("/auth/register", userHandler.Register)
	r.POST("/auth/login", userHandler.Login)
	r.GET("/health", healthHandler.Check)
	r.GET("/version", healthHandler.ServerVersion)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := r.Group("/", middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey))
	{
		auth.GET("/auth/me", userHandler.Me)
		auth.POST("/auth/change-password", userHandler.ChangePassword)
		auth.DELETE("/auth/account", userHandler.DeleteAccount)

		auth.POST("/notes/", noteHandler.Create)
		auth.GET("/notes/", noteHandler.List)
		auth.GET("/notes/paginated", noteHandler.Paginated)
		auth.GET("/notes/search", noteHandler.Search)
		auth.GET("/notes/ws", appContainer.Websocket.Run())
		auth.GET("/notes/:id", noteHandler.Get)
		auth.PUT("/notes/:id", noteHandler.Update)
		auth.DELETE("/notes/:id", noteHandler.Delete)
		auth.GET("/notes/:id/revisions", noteHandler.Revisions)

		auth.POST("/speech/stt", speechHandler.STT)
		auth.POST("/speech/command", speechHandler.Command)
		auth.POST("/speech/command/text", speechHandler.CommandText)
		auth.GET("/speech/languages", speechHandler.Languages)
		auth.POST("/translate/", speechHandler.Translate)

		auth.POST("/upload-audio", audioHandler.Upload)
		auth.POST("/transcribe", audioHandler.Transcribe)

		if cfg.MCP.IsEnable {
			mcpHandler := mcp_router.NewServer(appContainer).Handler()
			auth.POST("/mcp", mcpHandler)
			auth.GET("/mcp", mcpHandler)
			auth.DELETE("/mcp", mcpHandler)
		}
	}

	r.NoRoute(middleware.NoFound())

	return r
}
