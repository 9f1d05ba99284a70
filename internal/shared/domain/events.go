package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent representa un hecho inmutable levantado por una entidad.
// El event_id lo asigna el behavior de generación de ids del pipeline,
// nunca el que crea el evento.
type DomainEvent interface {
	EventID() uuid.UUID
	SetEventID(id uuid.UUID)
	EventType() string
	EventDate() time.Time
}

// BaseEvent agrupa los campos comunes a todos los eventos de dominio.
// Los eventos concretos lo embeben y aportan EventType() y su payload.
type BaseEvent struct {
	ID   uuid.UUID `json:"event_id"`
	Date time.Time `json:"event_date"`
}

func (e *BaseEvent) EventID() uuid.UUID      { return e.ID }
func (e *BaseEvent) SetEventID(id uuid.UUID) { e.ID = id }
func (e *BaseEvent) EventDate() time.Time    { return e.Date }

// EventAdder es el único puerto que ve la entidad para registrar eventos.
type EventAdder interface {
	Add(event DomainEvent)
}

// EventCollector acumula los eventos levantados durante una operación lógica.
// Es append-only y conserva el orden de inserción: ese orden se convierte en
// el orden de escritura en la tabla outbox.
type EventCollector struct {
	events []DomainEvent
}

func NewEventCollector() *EventCollector {
	return &EventCollector{}
}

// Add añade un evento al final de la secuencia.
func (c *EventCollector) Add(event DomainEvent) {
	c.events = append(c.events, event)
}

// Release devuelve los eventos acumulados y vacía el collector.
// Se drena exactamente una vez por operación, desde el behavior de publicación.
func (c *EventCollector) Release() []DomainEvent {
	released := c.events
	c.events = nil
	return released
}

// Verificación estática
var _ EventAdder = (*EventCollector)(nil)
