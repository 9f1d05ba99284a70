package application

import (
	"context"
	"fmt"

	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	"github.com/davicafu/moderlab/internal/shared/app/apperror"
	"github.com/davicafu/moderlab/internal/shared/app/ports"
	"github.com/google/uuid"
)

// ProvideDecision registra la decisión del admin asignado sobre una tarea.
type ProvideDecision struct {
	TaskID   uuid.UUID
	Decision moderationDomain.Decision
}

func (ProvideDecision) Command() {}

type ProvideDecisionHandler struct {
	repo     moderationDomain.TaskRepository
	identity ports.IdentityProvider
	clock    ports.TimeProvider
}

func NewProvideDecisionHandler(
	repo moderationDomain.TaskRepository,
	identity ports.IdentityProvider,
	clock ports.TimeProvider,
) *ProvideDecisionHandler {
	return &ProvideDecisionHandler{repo: repo, identity: identity, clock: clock}
}

func (h *ProvideDecisionHandler) Handle(ctx context.Context, req any) (any, error) {
	cmd, ok := req.(ProvideDecision)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T", req)
	}

	userID, err := h.identity.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	role, err := h.identity.CurrentUserRole(ctx)
	if err != nil {
		return nil, err
	}
	if role != ports.RoleAdmin {
		return nil, apperror.PermissionDenied("only admin can provide decision")
	}

	task, err := h.repo.WithTaskID(ctx, cmd.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.NotFound("task not found")
	}
	if task.AssignedAdmin() != userID {
		return nil, apperror.PermissionDenied("task is not assigned to current user")
	}

	if err := task.ProvideDecision(cmd.Decision, h.clock.Now()); err != nil {
		return nil, err
	}

	return nil, nil
}
