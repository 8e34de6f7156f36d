package limiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ctxFor(path string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", path+"?x=1", nil)
	return c
}

func TestMethodLimiter_PrefixKey(t *testing.T) {
	l := NewMethodLimiter().AddBuckets(
		BucketRule{Key: "/auth", FillInterval: time.Second, Capacity: 2, Quantum: 2},
		BucketRule{Key: "/speech/stt", FillInterval: time.Second, Capacity: 1, Quantum: 1},
	)

	assert.Equal(t, "/auth", l.Key(ctxFor("/auth/login")))
	assert.Equal(t, "/speech/stt", l.Key(ctxFor("/speech/stt")))
	assert.Equal(t, "/authors", l.Key(ctxFor("/authors")))
	assert.Equal(t, "/notes/", l.Key(ctxFor("/notes/")))
}

func TestMethodLimiter_Bucket(t *testing.T) {
	l := NewMethodLimiter().AddBuckets(BucketRule{Key: "/auth", FillInterval: time.Hour, Capacity: 2, Quantum: 1})

	bucket, ok := l.GetBucket("/auth")
	assert.True(t, ok)
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(0), bucket.TakeAvailable(1))

	_, ok = l.GetBucket("/notes/")
	assert.False(t, ok)
}
