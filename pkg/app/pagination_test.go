package app

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGetPageSizeWithConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query string
		cfg   PaginationConfig
		want  int
	}{
		{"", PaginationConfig{DefaultPageSize: 20, MaxPageSize: 50}, 20},
		{"limit=30", PaginationConfig{DefaultPageSize: 20, MaxPageSize: 50}, 30},
		{"pageSize=7", PaginationConfig{DefaultPageSize: 20, MaxPageSize: 50}, 7},
		{"limit=100000000", PaginationConfig{DefaultPageSize: 20, MaxPageSize: 50}, 50},
		{"limit=-1", PaginationConfig{DefaultPageSize: 20, MaxPageSize: 50}, 20},
		// 未配置时回落到默认上限
		{"limit=100000000", PaginationConfig{}, DefaultPaginationConfig.MaxPageSize},
		{"", PaginationConfig{}, DefaultPaginationConfig.DefaultPageSize},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/notes/paginated?"+tc.query, nil)
		if got := GetPageSizeWithConfig(c, tc.cfg); got != tc.want {
			t.Errorf("query %q: expected %d, got %d", tc.query, tc.want, got)
		}
	}
}
