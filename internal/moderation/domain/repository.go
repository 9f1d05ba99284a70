package domain

import (
	"context"

	"github.com/google/uuid"
)

// TaskRepository carga y registra tareas de moderación. Dentro de un scope,
// dos búsquedas por la misma identidad devuelven la misma instancia en
// memoria (identity map). Un miss devuelve (nil, nil), no un error.
type TaskRepository interface {
	Add(task *ModerationTask)
	Delete(task *ModerationTask)
	WithTaskID(ctx context.Context, taskID uuid.UUID) (*ModerationTask, error)
	WithAssignedAdmin(ctx context.Context, adminID uuid.UUID) ([]*ModerationTask, error)
}

// TaskFactory crea tareas nuevas y levanta el evento de arranque de
// moderación.
type TaskFactory interface {
	Create(contentRef ContentRef) *ModerationTask
}
