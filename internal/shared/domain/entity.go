package domain

import "github.com/google/uuid"

// Entity es la base que comparten todas las entidades de dominio.
// No conoce infraestructura: solo los colaboradores inyectados en la
// construcción (collector de eventos y unit of work). Una entidad nunca
// publica en el broker directamente; solo añade eventos al collector.
type Entity struct {
	id     uuid.UUID
	self   Tracked
	events EventAdder
	uow    UnitOfWork
}

// NewEntity construye la base. `self` es la entidad concreta que la embebe:
// es lo que se registra en el unit of work, no la base.
func NewEntity(id uuid.UUID, self Tracked, events EventAdder, uow UnitOfWork) Entity {
	return Entity{id: id, self: self, events: events, uow: uow}
}

func (e *Entity) EntityID() uuid.UUID { return e.id }

// Record añade un evento de dominio al collector de la operación en curso.
func (e *Entity) Record(event DomainEvent) {
	e.events.Add(event)
}

// MarkNew registra la entidad como pendiente de insertar.
func (e *Entity) MarkNew() {
	e.uow.RegisterNew(e.self)
}

// MarkDirty registra la entidad como pendiente de actualizar.
// Si ya estaba registrada como nueva, sigue clasificada como nueva.
func (e *Entity) MarkDirty() {
	e.uow.RegisterDirty(e.self)
}

// MarkDeleted registra la entidad como pendiente de borrar.
func (e *Entity) MarkDeleted() {
	e.uow.RegisterDeleted(e.self)
}
