package middleware

import (
	"strconv"
	"time"

	"RelationServer/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// PrometheusMiddleware Prometheus 监控中间件
// 记录每个请求的计数与耗时，path 使用路由模板避免高基数
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// 使用路由模板(如 /api/v1/relation/person/:personId/interaction)而非原始 URL
		path := c.FullPath()
		if path == "" {
			// 未匹配到路由(404)，统一归为 unknown 避免打爆标签
			path = "unknown"
		}

		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
