package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	sharedBus "github.com/davicafu/hexadmin/internal/shared/infra/platform/bus"
)

const EventTypeHeader = "event-type"

// kafkaWriter es la parte de *kafka.Writer que usa el publisher.
type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer       kafkaWriter
	defaultTopic bool
	log          *zap.Logger
}

func NewKafkaPublisher(writer *kafka.Writer, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, defaultTopic: writer.Topic != "", log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event interface{}) error {
	msg, err := buildMessage(event, p.defaultTopic)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Error publishing to Kafka", zap.Error(err))
		return err
	}

	p.log.Debug("Event published successfully", zap.String("key", string(msg.Key)), zap.String("topic", msg.Topic))
	return nil
}

func buildMessage(event interface{}, defaultTopic bool) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	msg := kafka.Message{Value: data}
	if keyer, ok := event.(sharedBus.Keyer); ok {
		msg.Key = []byte(keyer.PartitionKey())
	}
	if named, ok := event.(sharedBus.Named); ok {
		msg.Headers = append(msg.Headers, kafka.Header{Key: EventTypeHeader, Value: []byte(named.EventName())})
	}
	// Un writer con Topic fijo rechaza mensajes que traen el suyo.
	if routed, ok := event.(sharedBus.Routed); ok && !defaultTopic {
		msg.Topic = routed.EventTopic()
	}
	return msg, nil
}

// Verificación estática
var _ sharedBus.EventBus = (*KafkaPublisher)(nil)
