package config

import "time"

// MySQLConfig 数据库配置。
// Replicas 非空时通过 dbresolver 开启读写分离：写走 DSN，读走副本。
type MySQLConfig struct {
	DSN             string        `json:"dsn" yaml:"dsn"`                         // 主库 DSN
	Replicas        []string      `json:"replicas" yaml:"replicas"`               // 只读副本 DSN 列表（可为空）
	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns"`       // 最大连接数
	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns"`       // 最大空闲连接数
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"` // 连接最大存活时间
	LogSQL          bool          `json:"logSql" yaml:"logSql"`                   // 是否打印 SQL（仅调试用）
}

// DefaultMySQLConfig 返回本地开发的默认配置。
func DefaultMySQLConfig() MySQLConfig {
	return MySQLConfig{
		DSN:             getEnv("MYSQL_DSN", "root:root@tcp(127.0.0.1:3306)/relation?charset=utf8mb4&parseTime=True&loc=Local"),
		Replicas:        getEnvList("MYSQL_REPLICA_DSN", nil),
		MaxOpenConns:    getEnvInt("MYSQL_MAX_OPEN_CONNS", 100),
		MaxIdleConns:    getEnvInt("MYSQL_MAX_IDLE_CONNS", 10),
		ConnMaxLifetime: time.Hour,
		LogSQL:          getEnvBool("MYSQL_LOG_SQL", false),
	}
}
