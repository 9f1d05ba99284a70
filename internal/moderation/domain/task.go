package domain

import (
	"time"

	sharedDomain "github.com/davicafu/moderlab/internal/shared/domain"
	"github.com/google/uuid"
)

// ModerationTask es la entidad bajo moderación: un contenido pendiente de que
// el admin asignado lo apruebe o rechace antes de que expire.
type ModerationTask struct {
	sharedDomain.Entity

	assignedAdmin uuid.UUID
	createdAt     time.Time
	expiration    time.Time
	contentRef    ContentRef
	decision      Decision
}

// NewModerationTask reconstruye una tarea con todos sus atributos. Lo usan la
// factoría y el camino de carga del repositorio; cargar no toca el unit of work.
func NewModerationTask(
	id uuid.UUID,
	events sharedDomain.EventAdder,
	uow sharedDomain.UnitOfWork,
	assignedAdmin uuid.UUID,
	createdAt time.Time,
	expiration time.Time,
	contentRef ContentRef,
	decision Decision,
) *ModerationTask {
	task := &ModerationTask{
		assignedAdmin: assignedAdmin,
		createdAt:     createdAt,
		expiration:    expiration,
		contentRef:    contentRef,
		decision:      decision,
	}
	task.Entity = sharedDomain.NewEntity(id, task, events, uow)
	return task
}

func (t *ModerationTask) AssignedAdmin() uuid.UUID { return t.assignedAdmin }
func (t *ModerationTask) CreatedAt() time.Time     { return t.createdAt }
func (t *ModerationTask) Expiration() time.Time    { return t.expiration }
func (t *ModerationTask) ContentRef() ContentRef   { return t.contentRef }
func (t *ModerationTask) Decision() Decision       { return t.decision }

// ProvideDecision fija la decisión de la tarea. Repetir la decisión vigente es
// un no-op: no levanta evento ni marca dirty. Cambiar una tarea ya decidida
// falla con ErrTaskAlreadyDecided.
func (t *ModerationTask) ProvideDecision(decision Decision, now time.Time) error {
	if t.decision == decision {
		return nil
	}
	if t.decision != DecisionPending {
		return ErrTaskAlreadyDecided
	}

	t.decision = decision
	t.MarkDirty()
	t.Record(&ModerationDecisionAdded{
		BaseEvent:  sharedDomain.BaseEvent{Date: now},
		TaskID:     t.EntityID(),
		Decision:   decision,
		ContentRef: t.contentRef,
	})
	return nil
}

// ReassignAdmin cambia el admin asignado mientras la tarea siga pendiente.
// Reasignar al mismo admin es un no-op.
func (t *ModerationTask) ReassignAdmin(adminID uuid.UUID, now time.Time) error {
	if t.assignedAdmin == adminID {
		return nil
	}
	if t.decision != DecisionPending {
		return ErrTaskAlreadyDecided
	}

	t.assignedAdmin = adminID
	t.MarkDirty()
	t.Record(&AdminReassigned{
		BaseEvent:     sharedDomain.BaseEvent{Date: now},
		TaskID:        t.EntityID(),
		AssignedAdmin: adminID,
	})
	return nil
}
