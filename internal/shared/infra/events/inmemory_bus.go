package events

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	sharedBus "github.com/davicafu/hexadmin/internal/shared/infra/platform/bus"
)

// Message es lo que reciben los suscriptores del bus en memoria.
type Message struct {
	Key   string
	Value []byte
}

// InMemoryEventBus reemplaza a Kafka cuando KAFKA_BROKERS está vacío.
type InMemoryEventBus struct {
	subscribers []chan Message
	mu          sync.RWMutex
	closed      bool
	log         *zap.Logger
}

var _ sharedBus.EventBus = (*InMemoryEventBus)(nil)

func NewInMemoryEventBus(log *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{log: log}
}

// Publish serializa el evento y lo entrega a cada suscriptor.
// Un suscriptor con el buffer lleno pierde el mensaje.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := Message{Value: data}
	if keyer, ok := event.(sharedBus.Keyer); ok {
		msg.Key = keyer.PartitionKey()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	for _, sub := range b.subscribers {
		select {
		case sub <- msg:
		default:
			b.log.Warn("In-memory subscriber is full, dropping message", zap.String("key", msg.Key))
		}
	}
	return nil
}

// Subscribe registra un nuevo oyente con su propio buffer.
func (b *InMemoryEventBus) Subscribe(bufferSize int) <-chan Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(chan Message, bufferSize)
	if b.closed {
		close(sub)
		return sub
	}
	b.subscribers = append(b.subscribers, sub)
	return sub
}

// Consume entrega al handler cada mensaje hasta que se cancele ctx o se cierre el bus.
func (b *InMemoryEventBus) Consume(ctx context.Context, bufferSize int, handler sharedBus.MessageHandler) {
	sub := b.Subscribe(bufferSize)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub:
				if !ok {
					return
				}
				handler.HandleMessage(ctx, msg.Key, msg.Value)
			}
		}
	}()
}

// Close cierra todos los canales de suscripción.
func (b *InMemoryEventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, sub := range b.subscribers {
		close(sub)
	}
	b.subscribers = nil
}
