package router

import (
	"RelationServer/internal/handler"
	"RelationServer/internal/middleware"
	"RelationServer/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InitRouter 初始化路由
// relationHandler / insightHandler: 处理器（依赖注入）
func InitRouter(relationHandler *handler.RelationHandler, insightHandler *handler.InsightHandler) *gin.Engine {
	r := gin.New()

	// 恢复中间件
	r.Use(middleware.GinRecovery(true))

	// 追踪中间件 (生成 trace_id)
	r.Use(util.TraceLogger())

	// 客户端 IP 中间件
	r.Use(middleware.ClientIPMiddleware())

	// 日志中间件
	r.Use(middleware.GinLogger())

	// Prometheus 监控中间件
	r.Use(middleware.PrometheusMiddleware())

	// 跨域中间件
	r.Use(middleware.CorsMiddleware())

	// 健康检查（无需认证）
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Prometheus 指标暴露接口
	// Prometheus 会定时访问这个接口来拉取监控数据
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API 路由组
	api := r.Group("/api/v1")
	{
		// 人脉图谱接口（需要认证 + IP 限流）
		relation := api.Group("/relation")
		relation.Use(middleware.IPRateLimitMiddleware())
		relation.Use(middleware.JWTAuthMiddleware())
		{
			// 写接口
			relation.POST("/person", relationHandler.AddPerson)
			relation.POST("/person/:personId/interaction", relationHandler.RecordInteraction)

			// 读接口
			relation.GET("/person/:personId", insightHandler.GetPerson)
			relation.GET("/graph", insightHandler.GetGraph)
			relation.GET("/circles", insightHandler.GetCircles)
			relation.GET("/support-network", insightHandler.GetSupportNetwork)
			relation.GET("/social-score", insightHandler.GetSocialScore)
		}
	}

	return r
}
