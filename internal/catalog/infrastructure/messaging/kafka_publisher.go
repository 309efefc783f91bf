package messaging

import (
	"context"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/mq"
)

// kafkaPublisher 基于 Kafka 的事件发布者实现
type kafkaPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

// NewKafkaPublisher 创建 Kafka 事件发布者
func NewKafkaPublisher(producer *mq.KafkaProducer, topic string) domain.EventPublisher {
	return &kafkaPublisher{producer: producer, topic: topic}
}

func (p *kafkaPublisher) Publish(ctx context.Context, key string, event any) error {
	return p.producer.SendMessage(ctx, p.topic, key, event)
}

// noopPublisher 在未启用 Kafka 时丢弃事件
type noopPublisher struct{}

// NewNoopPublisher 创建空事件发布者
func NewNoopPublisher() domain.EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, key string, event any) error { return nil }
