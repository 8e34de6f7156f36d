package dto

// HealthDTO 健康检查
type HealthDTO struct {
	Status   string      `json:"status"`
	Version  string      `json:"version"`
	Uptime   string      `json:"uptime"`
	Database string      `json:"database"`
	System   *SystemInfo `json:"system,omitempty"`
}

// SystemInfo 主机资源
type SystemInfo struct {
	Hostname       string  `json:"hostname"`
	OS             string  `json:"os"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemoryTotal    uint64  `json:"memory_total"`
	MemoryUsed     uint64  `json:"memory_used"`
	MemoryPercent  float64 `json:"memory_percent"`
	Goroutines     int     `json:"goroutines"`
	WorkerActive   int64   `json:"worker_active"`
	WorkerQueued   int     `json:"worker_queued"`
	WriteQueues    int     `json:"write_queues"`
	WebsocketConns int     `json:"websocket_conns"`
}
