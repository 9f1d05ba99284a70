package application

import (
	"time"

	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	"github.com/davicafu/moderlab/internal/shared/app/ports"
	sharedDomain "github.com/davicafu/moderlab/internal/shared/domain"
	"github.com/google/uuid"
)

// DefaultExpiration es el plazo que tiene el admin para decidir.
const DefaultExpiration = 24 * time.Hour

// TaskFactory crea tareas de moderación con scope de petición: comparte el
// collector y el unit of work de la operación en curso.
type TaskFactory struct {
	events       sharedDomain.EventAdder
	uow          sharedDomain.UnitOfWork
	clock        ports.TimeProvider
	ids          ports.IdGenerator
	defaultAdmin uuid.UUID
}

func NewTaskFactory(
	events sharedDomain.EventAdder,
	uow sharedDomain.UnitOfWork,
	clock ports.TimeProvider,
	ids ports.IdGenerator,
	defaultAdmin uuid.UUID,
) *TaskFactory {
	return &TaskFactory{
		events:       events,
		uow:          uow,
		clock:        clock,
		ids:          ids,
		defaultAdmin: defaultAdmin,
	}
}

// Create construye la tarea y levanta ModerationStarted con la misma lectura
// de reloj que el created_at de la tarea.
func (f *TaskFactory) Create(contentRef moderationDomain.ContentRef) *moderationDomain.ModerationTask {
	now := f.clock.Now()

	task := moderationDomain.NewModerationTask(
		f.ids.NewTaskID(),
		f.events,
		f.uow,
		f.defaultAdmin,
		now,
		now.Add(DefaultExpiration),
		contentRef,
		moderationDomain.DecisionPending,
	)

	task.Record(&moderationDomain.ModerationStarted{
		BaseEvent:     sharedDomain.BaseEvent{Date: task.CreatedAt()},
		TaskID:        task.EntityID(),
		AssignedAdmin: task.AssignedAdmin(),
		Expiration:    task.Expiration(),
		ContentRef:    task.ContentRef(),
	})

	return task
}

// Verificación estática
var _ moderationDomain.TaskFactory = (*TaskFactory)(nil)
