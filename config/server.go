package config

import "time"

// ServerConfig HTTP 服务配置。
type ServerConfig struct {
	Addr            string        `json:"addr" yaml:"addr"`                       // 监听地址
	ReadTimeout     time.Duration `json:"readTimeout" yaml:"readTimeout"`         // 读超时
	WriteTimeout    time.Duration `json:"writeTimeout" yaml:"writeTimeout"`       // 写超时
	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"` // 优雅关闭等待时间
	RateLimitRate   float64       `json:"rateLimitRate" yaml:"rateLimitRate"`     // 每秒产生的令牌数
	RateLimitBurst  int           `json:"rateLimitBurst" yaml:"rateLimitBurst"`   // 令牌桶容量
	SnowflakeNode   int64         `json:"snowflakeNode" yaml:"snowflakeNode"`     // 雪花算法节点编号
	JWTSecret       string        `json:"jwtSecret" yaml:"jwtSecret"`             // JWT 签名密钥
}

// DefaultServerConfig 返回本地开发的默认配置。
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            getEnv("SERVER_ADDR", ":8080"),
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RateLimitRate:   float64(getEnvInt("RATE_LIMIT_RATE", 50)),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 100),
		SnowflakeNode:   int64(getEnvInt("SNOWFLAKE_NODE", 1)),
		JWTSecret:       getEnv("JWT_SECRET", "relation-server-dev-secret"),
	}
}
