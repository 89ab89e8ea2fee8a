package config

import "time"

// RedisConfig Redis 配置。
// Redis 仅作为缓存层，初始化失败不阻塞服务启动（降级到 MySQL-Only）。
type RedisConfig struct {
	Addr         string        `json:"addr" yaml:"addr"`                 // 地址 host:port
	Password     string        `json:"password" yaml:"password"`         // 密码
	DB           int           `json:"db" yaml:"db"`                     // 库编号
	PoolSize     int           `json:"poolSize" yaml:"poolSize"`         // 连接池大小
	DialTimeout  time.Duration `json:"dialTimeout" yaml:"dialTimeout"`   // 连接超时
	ReadTimeout  time.Duration `json:"readTimeout" yaml:"readTimeout"`   // 读超时
	WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"` // 写超时
}

// DefaultRedisConfig 返回本地开发的默认配置。
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:         getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		Password:     getEnv("REDIS_PASSWORD", ""),
		DB:           getEnvInt("REDIS_DB", 0),
		PoolSize:     getEnvInt("REDIS_POOL_SIZE", 50),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
