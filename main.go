package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"RelationServer/config"
	"RelationServer/internal/handler"
	"RelationServer/internal/middleware"
	"RelationServer/internal/mq"
	"RelationServer/internal/repository"
	"RelationServer/internal/router"
	"RelationServer/internal/service"
	"RelationServer/model"
	"RelationServer/pkg/async"
	pkgkafka "RelationServer/pkg/kafka"
	"RelationServer/pkg/logger"
	pkgmysql "RelationServer/pkg/mysql"
	pkgredis "RelationServer/pkg/redis"
	"RelationServer/pkg/util"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()
	// 启动阶段统一使用 trace_id=0
	ctx = context.WithValue(ctx, "trace_id", "0")

	// 1. 初始化日志
	loggerCfg := config.DefaultLoggerConfig()
	l, err := logger.Build(loggerCfg)
	if err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	logger.ReplaceGlobal(l)
	defer func() {
		// 同步日志缓冲区
		if err := logger.L().Sync(); err != nil {
			// Sync 在某些情况下会返回错误（如 os.Stdout），可以忽略
			_ = err
		}
	}()

	logger.Info(ctx, "Relation 服务初始化中...")

	serverCfg := config.DefaultServerConfig()

	// 2. 初始化基础组件：雪花 ID、JWT
	if err := util.InitSnowflake(serverCfg.SnowflakeNode); err != nil {
		logger.Fatal(ctx, "初始化雪花 ID 节点失败", logger.ErrorField("error", err))
	}
	util.InitJWT(serverCfg.JWTSecret)

	// 3. 初始化 MySQL（主存储，失败直接退出）
	mysqlCfg := config.DefaultMySQLConfig()
	db, err := pkgmysql.Build(mysqlCfg)
	if err != nil {
		logger.Fatal(ctx, "初始化 MySQL 失败", logger.ErrorField("error", err))
	}
	pkgmysql.ReplaceGlobal(db)
	logger.Info(ctx, "MySQL 初始化成功", logger.Int("replicas", len(mysqlCfg.Replicas)))

	// 3.1 自动建表
	if err := db.AutoMigrate(&model.Relationship{}, &model.Interaction{}); err != nil {
		logger.Fatal(ctx, "自动建表失败", logger.ErrorField("error", err))
	}

	// 4. 初始化 Redis
	redisCfg := config.DefaultRedisConfig()
	redisClient, err := pkgredis.Build(redisCfg)
	if err != nil {
		logger.Error(ctx, "初始化 Redis 失败",
			logger.ErrorField("error", err),
		)
		// Redis 初始化失败不阻塞启动：列表缓存与分布式限流降级
		redisClient = nil
	} else {
		pkgredis.ReplaceGlobal(redisClient)
		logger.Info(ctx, "Redis 初始化成功",
			logger.String("addr", redisCfg.Addr),
		)
	}

	// 5. 初始化 Kafka 审计事件生产者（可选组件）
	kafkaCfg := config.DefaultKafkaConfig()
	if kafkaCfg.Enabled {
		producer := pkgkafka.NewProducer(kafkaCfg.Brokers, kafkaCfg.AuditTopic)
		mq.SetGlobalProducer(producer)
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error(ctx, "关闭 Kafka 生产者失败", logger.ErrorField("error", err))
			}
		}()
		logger.Info(ctx, "Kafka 审计事件生产者初始化完成",
			logger.Any("brokers", kafkaCfg.Brokers),
			logger.String("topic", kafkaCfg.AuditTopic),
		)
	} else {
		logger.Info(ctx, "Kafka 未启用，审计事件投递关闭")
	}

	// 6. 初始化异步协程池
	asyncCfg := config.DefaultAsyncConfig()
	if err := async.Init(asyncCfg); err != nil {
		logger.Fatal(ctx, "初始化异步协程池失败", logger.ErrorField("error", err))
	}
	// 异步任务透传链路字段，日志里能串起同一次请求
	async.SetContextPropagator(func(parent context.Context) context.Context {
		taskCtx := context.Background()
		if v := parent.Value("trace_id"); v != nil {
			taskCtx = context.WithValue(taskCtx, "trace_id", v)
		}
		if v := parent.Value("user_uuid"); v != nil {
			taskCtx = context.WithValue(taskCtx, "user_uuid", v)
		}
		return taskCtx
	})
	defer func() {
		if err := async.Release(); err != nil {
			logger.Error(ctx, "释放异步协程池失败", logger.ErrorField("error", err))
		}
	}()

	// 7. 初始化 IP 限流器（Redis 不可用时降级为本地令牌桶）
	middleware.InitRedisRateLimiter(serverCfg.RateLimitRate, serverCfg.RateLimitBurst, redisClient)

	// 8. 初始化 Repository / Service / Handler（依赖注入）
	relationRepo := repository.NewRelationshipRepository(db, redisClient)

	snapshots, err := service.NewSnapshotCache(1024)
	if err != nil {
		logger.Fatal(ctx, "初始化快照缓存失败", logger.ErrorField("error", err))
	}

	relationService := service.NewRelationService(relationRepo, snapshots)
	insightService := service.NewInsightService(relationRepo, snapshots)

	relationHandler := handler.NewRelationHandler(relationService)
	insightHandler := handler.NewInsightHandler(insightService)
	logger.Info(ctx, "业务组件初始化完成")

	// 9. 初始化路由
	gin.SetMode(gin.ReleaseMode)
	r := router.InitRouter(relationHandler, insightHandler)
	logger.Info(ctx, "路由初始化完成")

	// 10. 配置并启动服务器
	srv := &http.Server{
		Addr:           serverCfg.Addr,
		Handler:        r,
		ReadTimeout:    serverCfg.ReadTimeout,
		WriteTimeout:   serverCfg.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 最大请求头 1MB
	}

	go func() {
		logger.Info(ctx, "Relation 服务器启动中",
			logger.String("address", serverCfg.Addr),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "服务器启动失败", logger.ErrorField("error", err))
			os.Exit(1)
		}
	}()

	logger.Info(ctx, "Relation 服务器启动成功，按 Ctrl+C 关闭")

	// 11. 优雅停机
	quit := make(chan os.Signal, 1)
	// 监听中断信号：Ctrl+C (SIGINT) 和 kill 命令 (SIGTERM)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Info(ctx, "收到关闭信号，开始优雅停机...",
		logger.String("signal", sig.String()),
	)

	// 设置超时时间，等待正在处理的请求完成
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "服务器强制关闭", logger.ErrorField("error", err))
		os.Exit(1)
	}

	logger.Info(ctx, "Relation 服务器已优雅退出")
}
