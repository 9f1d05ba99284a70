package outbox

import (
	"context"

	"github.com/google/uuid"
)

// Store es el contrato de la tabla outbox. Insert corre sobre la misma
// transacción que las escrituras de entidad; FetchPending y MarkPublished los
// usa el processor en su propia pasada, fuera de la petición que los creó.
type Store interface {
	Insert(ctx context.Context, msg Message) error
	FetchPending(ctx context.Context, limit int) ([]Message, error)
	MarkPublished(ctx context.Context, id uuid.UUID) error
}

// Publisher envía un mensaje del outbox al broker. El destino se deriva del
// event_type y el message_id viaja como identificador de deduplicación. Un
// fallo debe propagarse: el processor decide si el mensaje queda pendiente.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}
