package application

import (
	"time"

	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	"github.com/google/uuid"
)

// TaskReadModel es la proyección de lectura de una tarea de moderación.
type TaskReadModel struct {
	TaskID        uuid.UUID                   `json:"task_id"`
	AssignedAdmin uuid.UUID                   `json:"assigned_admin"`
	CreatedAt     time.Time                   `json:"created_at"`
	Expiration    time.Time                   `json:"expiration"`
	ContentRef    moderationDomain.ContentRef `json:"content_ref"`
	Decision      moderationDomain.Decision   `json:"decision"`
}

// Pagination describe límite y offset de una consulta.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
