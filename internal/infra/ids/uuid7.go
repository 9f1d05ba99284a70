package ids

import (
	"github.com/davicafu/moderlab/internal/shared/app/ports"
	"github.com/google/uuid"
)

// UUID7Generator genera UUIDv7: ordenables por tiempo, lo que mantiene los
// índices de task_id y message_id aproximadamente secuenciales.
type UUID7Generator struct{}

func NewUUID7Generator() UUID7Generator { return UUID7Generator{} }

func (UUID7Generator) NewEventID() uuid.UUID { return mustV7() }
func (UUID7Generator) NewTaskID() uuid.UUID  { return mustV7() }

func mustV7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// Solo falla si la fuente de entropía del sistema está rota.
		panic(err)
	}
	return id
}

// Verificación estática
var _ ports.IdGenerator = UUID7Generator{}
