package domain

import (
	"time"

	sharedDomain "github.com/davicafu/moderlab/internal/shared/domain"
	"github.com/google/uuid"
)

// Nombres de evento: se usan como discriminador en el outbox y como routing
// key hacia el broker.
const (
	EventModerationStarted       = "ModerationStarted"
	EventModerationDecisionAdded = "ModerationDecisionAdded"
	EventAdminReassigned         = "AdminReassigned"
)

// ModerationStarted se levanta al crear una tarea de moderación.
type ModerationStarted struct {
	sharedDomain.BaseEvent
	TaskID        uuid.UUID  `json:"task_id"`
	AssignedAdmin uuid.UUID  `json:"assigned_admin"`
	Expiration    time.Time  `json:"expiration"`
	ContentRef    ContentRef `json:"content_ref"`
}

func (e *ModerationStarted) EventType() string { return EventModerationStarted }

// ModerationDecisionAdded se levanta cuando la tarea recibe una decisión.
type ModerationDecisionAdded struct {
	sharedDomain.BaseEvent
	TaskID     uuid.UUID  `json:"task_id"`
	Decision   Decision   `json:"decision"`
	ContentRef ContentRef `json:"content_ref"`
}

func (e *ModerationDecisionAdded) EventType() string { return EventModerationDecisionAdded }

// AdminReassigned se levanta cuando la tarea cambia de admin asignado.
type AdminReassigned struct {
	sharedDomain.BaseEvent
	TaskID        uuid.UUID `json:"task_id"`
	AssignedAdmin uuid.UUID `json:"assigned_admin"`
}

func (e *AdminReassigned) EventType() string { return EventAdminReassigned }

// Verificaciones estáticas
var (
	_ sharedDomain.DomainEvent = (*ModerationStarted)(nil)
	_ sharedDomain.DomainEvent = (*ModerationDecisionAdded)(nil)
	_ sharedDomain.DomainEvent = (*AdminReassigned)(nil)
)
