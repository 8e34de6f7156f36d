package api_router

import (
	"context"
	"runtime"
	"time"

	"github.com/haierkeys/voice-note-service/internal/app"
	"github.com/haierkeys/voice-note-service/internal/dto"
	pkgapp "github.com/haierkeys/voice-note-service/pkg/app"
	"github.com/haierkeys/voice-note-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// HealthHandler 健康检查与版本
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// Check 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态，包括数据库连接与主机资源
// @Tags System
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.HealthDTO}
// @Failure 503 {object} pkgapp.Res{data=dto.HealthDTO}
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	result := &dto.HealthDTO{
		Status:   "healthy",
		Version:  h.App.Version().Version,
		Uptime:   h.App.Uptime().Truncate(time.Second).String(),
		Database: "connected",
		System:   h.systemInfo(ctx),
	}

	if h.App.IsShuttingDown() {
		result.Status = "shutting_down"
		pkgapp.NewResponse(c).ToResponse(code.ErrorServiceUnavailable.WithData(result))
		return
	}

	// 检查数据库连接
	if sqlDB, err := h.App.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.ErrorServiceUnavailable.WithData(result))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(result))
}

// systemInfo 采集失败的指标保持零值
func (h *HealthHandler) systemInfo(ctx context.Context) *dto.SystemInfo {
	info := &dto.SystemInfo{
		Goroutines: runtime.NumGoroutine(),
		OS:         runtime.GOOS,
	}

	if hi, err := host.InfoWithContext(ctx); err == nil {
		info.Hostname = hi.Hostname
		info.OS = hi.OS + " " + hi.PlatformVersion
	}
	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		info.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemoryTotal = vm.Total
		info.MemoryUsed = vm.Used
		info.MemoryPercent = vm.UsedPercent
	}

	if pool := h.App.WorkerPool(); pool != nil {
		info.WorkerActive = pool.ActiveCount()
		info.WorkerQueued = pool.QueuedCount()
	}
	if wq := h.App.WriteQueueManager(); wq != nil {
		info.WriteQueues = wq.QueueCount()
	}
	if h.App.Websocket != nil {
		info.WebsocketConns = h.App.Websocket.ConnCount()
	}
	return info
}

// ServerVersion 服务端版本
// @Summary Server version
// @Tags System
// @Produce json
// @Success 200 {object} pkgapp.Res{data=pkgapp.VersionInfo}
// @Router /version [get]
func (h *HealthHandler) ServerVersion(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(h.App.Version()))
}
