package limiter

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// MethodLimiter 按请求路径前缀限流，最长前缀优先
type MethodLimiter struct {
	*Limiter
}

func NewMethodLimiter() Face {
	return MethodLimiter{
		Limiter: &Limiter{limiterBuckets: make(map[string]*ratelimit.Bucket)},
	}
}

// Key 返回命中的规则前缀，未命中返回请求路径
func (l MethodLimiter) Key(c *gin.Context) string {
	path := c.Request.URL.Path
	best := ""
	for _, k := range l.keys {
		if (path == k || strings.HasPrefix(path, strings.TrimSuffix(k, "/")+"/")) && len(k) > len(best) {
			best = k
		}
	}
	if best == "" {
		return path
	}
	return best
}

func (l MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	bucket, ok := l.limiterBuckets[key]
	return bucket, ok
}

func (l MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	for _, rule := range rules {
		if _, ok := l.limiterBuckets[rule.Key]; !ok {
			l.limiterBuckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
			l.keys = append(l.keys, rule.Key)
		}
	}
	return l
}
