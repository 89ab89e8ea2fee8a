package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer 封装 kafka-go Writer，提供按 key 分区的消息投递。
// 同一 owner 的消息落在同一分区，消费侧天然保序。
type Producer struct {
	writer *kafka.Writer
}

// NewProducer 创建 Producer。
// RequireOne：只等 leader 确认，审计场景吞吐优先于强持久性。
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		Async:        false,
	}
	return &Producer{writer: writer}
}

// Send 投递一条消息，key 用于分区路由。
func (p *Producer) Send(ctx context.Context, key string, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

// Close 关闭底层 Writer。
func (p *Producer) Close() error {
	return p.writer.Close()
}

// zapLoggerAdapter 把 kafka-go 的 Printf 风格日志接到 zap。
type zapLoggerAdapter struct {
	sugar *zap.SugaredLogger
}

// NewZapLoggerAdapter 创建 kafka-go Logger 适配器。
func NewZapLoggerAdapter(l *zap.Logger) kafka.Logger {
	return &zapLoggerAdapter{sugar: l.Sugar()}
}

func (a *zapLoggerAdapter) Printf(format string, args ...interface{}) {
	a.sugar.Infof(format, args...)
}
