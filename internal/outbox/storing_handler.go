package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	sharedDomain "github.com/davicafu/moderlab/internal/shared/domain"
)

// StoringHandler recibe cada evento de dominio como notificación y lo deja en
// la tabla outbox sobre la transacción aún abierta. Es el único destino de los
// eventos dentro de la petición: el broker se contacta en otra pasada.
type StoringHandler struct {
	store Store
}

func NewStoringHandler(store Store) *StoringHandler {
	return &StoringHandler{store: store}
}

func (h *StoringHandler) Handle(ctx context.Context, event sharedDomain.DomainEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %q: %w", event.EventType(), err)
	}

	msg := Message{
		MessageID: event.EventID(),
		Data:      data,
		EventType: event.EventType(),
		CreatedAt: event.EventDate(),
	}

	if err := h.store.Insert(ctx, msg); err != nil {
		return fmt.Errorf("insert outbox message %s: %w", msg.MessageID, err)
	}
	return nil
}
