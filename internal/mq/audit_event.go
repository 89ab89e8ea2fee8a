package mq

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"RelationServer/pkg/async"
	"RelationServer/pkg/kafka"
	"RelationServer/pkg/logger"
	"RelationServer/pkg/metrics"
)

// ==================== 审计事件定义 ====================

// EventType 审计事件类型
type EventType string

const (
	// EventPersonCreated 新建人脉
	EventPersonCreated EventType = "person_created"
	// EventInteractionRecorded 记录交互
	EventInteractionRecorded EventType = "interaction_recorded"
)

// AuditEvent 投递到 Kafka 的审计消息体。
// fire-and-forget：投递失败只记录日志和指标，不影响主流程正确性。
type AuditEvent struct {
	Type          EventType `json:"type"`
	OwnerUUID     string    `json:"owner_uuid"`
	PersonID      int64     `json:"person_id"`
	InteractionID int64     `json:"interaction_id,omitempty"`
	HealthScore   int       `json:"health_score"`
	TraceID       string    `json:"trace_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// ==================== 构造器函数（Builder） ====================

// BuildPersonCreatedEvent 构造新建人脉事件
func BuildPersonCreatedEvent(ownerUUID string, personID int64, healthScore int) AuditEvent {
	return AuditEvent{
		Type:        EventPersonCreated,
		OwnerUUID:   ownerUUID,
		PersonID:    personID,
		HealthScore: healthScore,
		Timestamp:   time.Now(),
	}
}

// BuildInteractionRecordedEvent 构造记录交互事件
func BuildInteractionRecordedEvent(ownerUUID string, personID, interactionID int64, healthScore int) AuditEvent {
	return AuditEvent{
		Type:          EventInteractionRecorded,
		OwnerUUID:     ownerUUID,
		PersonID:      personID,
		InteractionID: interactionID,
		HealthScore:   healthScore,
		Timestamp:     time.Now(),
	}
}

// WithContext 从 ctx 提取 trace_id 附加到事件上
func (e AuditEvent) WithContext(ctx context.Context) AuditEvent {
	if ctx == nil {
		return e
	}
	if traceID, ok := ctx.Value("trace_id").(string); ok {
		e.TraceID = traceID
	}
	return e
}

// ==================== 投递 ====================

var globalProducer *kafka.Producer

// ErrProducerNotInitialized 表示 Kafka Producer 尚未初始化（未启用审计投递）。
var ErrProducerNotInitialized = errors.New("kafka producer not initialized")

// SetGlobalProducer 设置全局 Kafka Producer（进程启动时调用一次；不启用审计时不调用）。
func SetGlobalProducer(p *kafka.Producer) {
	globalProducer = p
}

// SendAuditEvent 同步投递一条审计事件（key 为 ownerUUID，同 owner 保序）。
func SendAuditEvent(ctx context.Context, ev AuditEvent) error {
	if globalProducer == nil {
		return ErrProducerNotInitialized
	}
	data, err := json.Marshal(&ev)
	if err != nil {
		return err
	}
	return globalProducer.Send(ctx, ev.OwnerUUID, data)
}

// PublishAsync 异步投递审计事件。
// 未启用 Producer 时静默跳过；投递失败记录日志与指标后放弃（不重试）。
func PublishAsync(ctx context.Context, ev AuditEvent) {
	if globalProducer == nil {
		return
	}
	ev = ev.WithContext(ctx)
	async.RunSafe(ctx, func(taskCtx context.Context) {
		if err := SendAuditEvent(taskCtx, ev); err != nil {
			metrics.AuditEventTotal.WithLabelValues(string(ev.Type), "failed").Inc()
			logger.Warn(taskCtx, "审计事件投递失败，放弃处理",
				logger.ErrorField("error", err),
				logger.String("event_type", string(ev.Type)),
				logger.Int64("person_id", ev.PersonID),
			)
			return
		}
		metrics.AuditEventTotal.WithLabelValues(string(ev.Type), "ok").Inc()
	}, 5*time.Second)
}
