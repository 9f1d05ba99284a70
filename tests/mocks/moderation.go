package mocks

import (
	"context"

	"github.com/google/uuid"

	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	sharedDomain "github.com/davicafu/moderlab/internal/shared/domain"
)

// TrackerSpy registra las llamadas al unit of work sin persistir nada.
type TrackerSpy struct {
	New     []sharedDomain.Tracked
	Dirty   []sharedDomain.Tracked
	Deleted []sharedDomain.Tracked
}

var _ sharedDomain.UnitOfWork = (*TrackerSpy)(nil)

func NewTrackerSpy() *TrackerSpy { return &TrackerSpy{} }

func (t *TrackerSpy) RegisterNew(entity sharedDomain.Tracked)   { t.New = append(t.New, entity) }
func (t *TrackerSpy) RegisterDirty(entity sharedDomain.Tracked) { t.Dirty = append(t.Dirty, entity) }
func (t *TrackerSpy) RegisterDeleted(entity sharedDomain.Tracked) {
	t.Deleted = append(t.Deleted, entity)
}

// InMemoryTaskRepo es un repositorio de tareas en memoria para tests de
// aplicación. Respeta el contrato del identity map: misma identidad, misma
// instancia; un miss devuelve (nil, nil).
type InMemoryTaskRepo struct {
	tasks map[uuid.UUID]*moderationDomain.ModerationTask
}

var _ moderationDomain.TaskRepository = (*InMemoryTaskRepo)(nil)

func NewInMemoryTaskRepo() *InMemoryTaskRepo {
	return &InMemoryTaskRepo{tasks: make(map[uuid.UUID]*moderationDomain.ModerationTask)}
}

func (r *InMemoryTaskRepo) Add(task *moderationDomain.ModerationTask) {
	task.MarkNew()
	r.tasks[task.EntityID()] = task
}

func (r *InMemoryTaskRepo) Delete(task *moderationDomain.ModerationTask) {
	task.MarkDeleted()
	delete(r.tasks, task.EntityID())
}

func (r *InMemoryTaskRepo) WithTaskID(ctx context.Context, taskID uuid.UUID) (*moderationDomain.ModerationTask, error) {
	return r.tasks[taskID], nil
}

func (r *InMemoryTaskRepo) WithAssignedAdmin(ctx context.Context, adminID uuid.UUID) ([]*moderationDomain.ModerationTask, error) {
	var result []*moderationDomain.ModerationTask
	for _, task := range r.tasks {
		if task.AssignedAdmin() == adminID {
			result = append(result, task)
		}
	}
	return result, nil
}

// Seed registra una tarea existente sin pasar por el unit of work, como si
// viniera cargada de la base de datos.
func (r *InMemoryTaskRepo) Seed(task *moderationDomain.ModerationTask) {
	r.tasks[task.EntityID()] = task
}
