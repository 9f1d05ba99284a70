package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/davicafu/moderlab/internal/outbox"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher envía mensajes del outbox a Kafka. El topic se deriva del
// event_type y la key es el message_id: el mismo evento reintentado cae en la
// misma partición y el consumidor puede deduplicar por key.
type KafkaPublisher struct {
	writer      *kafka.Writer
	topicPrefix string
	log         *zap.Logger
}

// NewKafkaWriter construye el writer compartido. Sin topic fijo: cada mensaje
// lleva el suyo. RequireAll hace la entrega durable frente a reinicios del
// broker.
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

func NewKafkaPublisher(writer *kafka.Writer, topicPrefix string, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topicPrefix: topicPrefix, log: log}
}

// TopicFor traduce el event_type al topic destino.
// ej. "ModerationDecisionAdded" -> "moderation.moderationdecisionadded"
func (p *KafkaPublisher) TopicFor(eventType string) string {
	return p.topicPrefix + strings.ToLower(eventType)
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg outbox.Message) error {
	kafkaMsg := kafka.Message{
		Topic: p.TopicFor(msg.EventType),
		Key:   []byte(msg.MessageID.String()),
		Value: msg.Data,
		Headers: []kafka.Header{
			{Key: "message_id", Value: []byte(msg.MessageID.String())},
			{Key: "event_type", Value: []byte(msg.EventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, kafkaMsg); err != nil {
		p.log.Error("Error publicando en Kafka",
			zap.String("message_id", msg.MessageID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("kafka publish %s: %w", msg.MessageID, err)
	}

	p.log.Debug("Mensaje publicado en Kafka",
		zap.String("topic", kafkaMsg.Topic),
		zap.String("message_id", msg.MessageID.String()),
	)
	return nil
}

// Verificación estática
var _ outbox.Publisher = (*KafkaPublisher)(nil)
