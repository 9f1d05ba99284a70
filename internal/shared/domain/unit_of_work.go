package domain

import "github.com/google/uuid"

// Tracked es lo mínimo que el unit of work necesita saber de una entidad.
type Tracked interface {
	EntityID() uuid.UUID
}

// UnitOfWork registra las intenciones de persistencia de la operación en curso:
// entidades nuevas, modificadas y borradas. Cada entidad pertenece como mucho
// a uno de los tres conjuntos; registrar dos veces en el mismo rol es un no-op.
type UnitOfWork interface {
	RegisterNew(entity Tracked)
	RegisterDirty(entity Tracked)
	RegisterDeleted(entity Tracked)
}
