package util

import (
	"os"
	"strings"
	"sync"

	"github.com/denisbrodbeck/machineid"
)

var (
	machineID     string
	machineIDOnce sync.Once
)

// GetMachineID 获取当前机器的唯一标识符
// 优先使用 machineid，失败时回退到主机名，全部失败返回空字符串
func GetMachineID() string {
	machineIDOnce.Do(func() {
		if id, err := machineid.ProtectedID("voice-note-service"); err == nil && id != "" {
			machineID = id
			return
		}
		if host, err := os.Hostname(); err == nil {
			machineID = strings.TrimSpace(host)
		}
	})
	return machineID
}
