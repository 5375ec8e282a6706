package events

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	sharedBus "github.com/davicafu/hexadmin/internal/shared/infra/platform/bus"
)

// ConsumerAdapter es el "oído" que escucha en Kafka y delega en un MessageHandler.
type ConsumerAdapter struct {
	reader  *kafka.Reader
	handler sharedBus.MessageHandler
	log     *zap.Logger
}

func NewConsumerAdapter(reader *kafka.Reader, handler sharedBus.MessageHandler, log *zap.Logger) *ConsumerAdapter {
	return &ConsumerAdapter{reader: reader, handler: handler, log: log}
}

// Start inicia el bucle de consumo de mensajes en una goroutine.
func (c *ConsumerAdapter) Start(ctx context.Context) {
	cfg := c.reader.Config()
	c.log.Info("🎧 Starting Kafka consumer",
		zap.String("topic", cfg.Topic),
		zap.String("group", cfg.GroupID),
		zap.Strings("brokers", cfg.Brokers),
	)

	go func() {
		defer c.reader.Close()
		for {
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				// Contexto cancelado: salida normal.
				if ctx.Err() != nil {
					c.log.Info("Kafka consumer stopped", zap.String("topic", cfg.Topic))
					return
				}
				c.log.Error("Error reading Kafka message", zap.Error(err))
				continue
			}
			c.handler.HandleMessage(ctx, string(msg.Key), msg.Value)
		}
	}()
}
