package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role es el rol del usuario autenticado en la petición actual.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IdentityProvider expone la identidad de la petición en curso.
type IdentityProvider interface {
	CurrentUserID(ctx context.Context) (uuid.UUID, error)
	CurrentUserRole(ctx context.Context) (Role, error)
}

// TimeProvider abstrae el reloj. Todos los eventos levantados en una misma
// invocación de handler comparten la lectura de "ahora" que hizo el handler.
type TimeProvider interface {
	Now() time.Time
}

// IdGenerator genera identificadores nuevos para eventos y para tareas.
type IdGenerator interface {
	NewEventID() uuid.UUID
	NewTaskID() uuid.UUID
}
