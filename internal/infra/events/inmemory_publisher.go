package events

import (
	"context"

	"github.com/davicafu/moderlab/internal/outbox"
	"go.uber.org/zap"
)

// InMemoryPublisher sustituye al broker en desarrollo local: entrega los
// mensajes por un canal de Go a los suscriptores del proceso.
type InMemoryPublisher struct {
	ch  chan outbox.Message
	log *zap.Logger
}

func NewInMemoryPublisher(buffer int, log *zap.Logger) *InMemoryPublisher {
	return &InMemoryPublisher{ch: make(chan outbox.Message, buffer), log: log}
}

// Subscribe devuelve el canal de mensajes publicados.
func (p *InMemoryPublisher) Subscribe() <-chan outbox.Message {
	return p.ch
}

func (p *InMemoryPublisher) Publish(ctx context.Context, msg outbox.Message) error {
	select {
	case p.ch <- msg:
		p.log.Debug("Mensaje entregado al bus en memoria",
			zap.String("event_type", msg.EventType),
			zap.String("message_id", msg.MessageID.String()),
		)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Verificación estática
var _ outbox.Publisher = (*InMemoryPublisher)(nil)
