package bus

import "context"

type Keyer interface {
	PartitionKey() string
}

// EventPublisher publica eventos de integración. La semántica de topic y el
// formato del payload los deciden los adaptadores.
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}
