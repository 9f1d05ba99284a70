package application

import (
	"context"
	"fmt"

	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	"github.com/google/uuid"
)

// ModerateContent abre una tarea de moderación para un contenido.
// Devuelve el task_id.
type ModerateContent struct {
	ContentType moderationDomain.ContentType
	ContentID   uuid.UUID
}

func (ModerateContent) Command() {}

type ModerateContentHandler struct {
	factory moderationDomain.TaskFactory
	repo    moderationDomain.TaskRepository
}

func NewModerateContentHandler(
	factory moderationDomain.TaskFactory,
	repo moderationDomain.TaskRepository,
) *ModerateContentHandler {
	return &ModerateContentHandler{factory: factory, repo: repo}
}

func (h *ModerateContentHandler) Handle(ctx context.Context, req any) (any, error) {
	cmd, ok := req.(ModerateContent)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T", req)
	}

	task := h.factory.Create(moderationDomain.ContentRef{
		ContentType: cmd.ContentType,
		ContentID:   cmd.ContentID,
	})

	h.repo.Add(task)

	return task.EntityID(), nil
}
