package application

import (
	"context"
	"fmt"

	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	"github.com/davicafu/moderlab/internal/shared/app/apperror"
	"github.com/davicafu/moderlab/internal/shared/app/ports"
	"github.com/google/uuid"
)

// ReassignAdmin traspasa una tarea pendiente a otro admin.
type ReassignAdmin struct {
	TaskID  uuid.UUID
	AdminID uuid.UUID
}

func (ReassignAdmin) Command() {}

type ReassignAdminHandler struct {
	repo     moderationDomain.TaskRepository
	identity ports.IdentityProvider
	clock    ports.TimeProvider
}

func NewReassignAdminHandler(
	repo moderationDomain.TaskRepository,
	identity ports.IdentityProvider,
	clock ports.TimeProvider,
) *ReassignAdminHandler {
	return &ReassignAdminHandler{repo: repo, identity: identity, clock: clock}
}

func (h *ReassignAdminHandler) Handle(ctx context.Context, req any) (any, error) {
	cmd, ok := req.(ReassignAdmin)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T", req)
	}

	role, err := h.identity.CurrentUserRole(ctx)
	if err != nil {
		return nil, err
	}
	if role != ports.RoleAdmin {
		return nil, apperror.PermissionDenied("only admin can reassign tasks")
	}

	task, err := h.repo.WithTaskID(ctx, cmd.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.NotFound("task not found")
	}

	if err := task.ReassignAdmin(cmd.AdminID, h.clock.Now()); err != nil {
		return nil, err
	}

	return nil, nil
}
