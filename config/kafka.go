package config

// KafkaConfig 审计事件投递配置。
// 审计事件为 fire-and-forget，Kafka 不可用时仅记录日志，不影响主流程。
type KafkaConfig struct {
	Enabled    bool     `json:"enabled" yaml:"enabled"`       // 是否启用审计事件投递
	Brokers    []string `json:"brokers" yaml:"brokers"`       // broker 地址列表
	AuditTopic string   `json:"auditTopic" yaml:"auditTopic"` // 审计事件 topic
}

// DefaultKafkaConfig 返回本地开发的默认配置。
func DefaultKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Enabled:    getEnvBool("KAFKA_ENABLED", false),
		Brokers:    getEnvList("KAFKA_BROKERS", []string{"127.0.0.1:9092"}),
		AuditTopic: getEnv("KAFKA_AUDIT_TOPIC", "relation-audit-events"),
	}
}
