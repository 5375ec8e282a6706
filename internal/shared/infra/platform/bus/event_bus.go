package bus

import "context"

// Keyer lo implementan los eventos que eligen su clave de partición.
type Keyer interface {
	PartitionKey() string
}

// Named expone el tipo de evento para cabeceras y logs.
type Named interface {
	EventName() string
}

// Routed permite que el evento indique su topic cuando el adapter no tiene uno fijo.
type Routed interface {
	EventTopic() string
}

// La semántica de topic/nombre y formato del payload la decides en los adapters.
type EventBus interface {
	Publish(ctx context.Context, event interface{}) error
}

// MessageHandler es el lado consumidor: recibe la clave y el payload crudo.
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, payload []byte)
}
