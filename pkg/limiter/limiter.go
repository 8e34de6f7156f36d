package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// Limiter 按 key 保存令牌桶，初始化后只读
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
	keys           []string
}

// BucketRule 令牌桶规则
type BucketRule struct {
	Key          string        // 路径前缀
	FillInterval time.Duration // 放入令牌的间隔
	Capacity     int64         // 桶容量
	Quantum      int64         // 每次放入的令牌数
}
