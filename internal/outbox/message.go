package outbox

import (
	"time"

	"github.com/google/uuid"
)

// Message es una fila de la tabla outbox: un evento pendiente de publicar.
// El message_id reutiliza el event_id del evento de dominio, lo que hace la
// inserción idempotente ante reintentos y sirve de deduplicación en el broker.
type Message struct {
	MessageID uuid.UUID `json:"message_id"`
	Data      []byte    `json:"data"` // payload del evento ya serializado
	EventType string    `json:"event_type"`
	CreatedAt time.Time `json:"created_at"`
	Published bool      `json:"published"`
}
