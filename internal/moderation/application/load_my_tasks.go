package application

import (
	"context"
	"fmt"

	"github.com/davicafu/moderlab/internal/shared/app/ports"
	"github.com/google/uuid"
)

// LoadMyTasks devuelve las tareas asignadas al usuario actual, paginadas.
// Es una query: el pipeline no le aplica publicación ni commit.
type LoadMyTasks struct {
	Pagination Pagination
}

type LoadMyTasksHandler struct {
	gateway  TaskGateway
	identity ports.IdentityProvider
	cache    Cache // puede ser nil
	cacheTTL int   // segundos
}

func NewLoadMyTasksHandler(
	gateway TaskGateway,
	identity ports.IdentityProvider,
	cache Cache,
	cacheTTLSecs int,
) *LoadMyTasksHandler {
	return &LoadMyTasksHandler{
		gateway:  gateway,
		identity: identity,
		cache:    cache,
		cacheTTL: cacheTTLSecs,
	}
}

func cacheKeyMyTasks(adminID uuid.UUID, p Pagination) string {
	return fmt.Sprintf("moderation:my-tasks:%s:%d:%d", adminID, p.Limit, p.Offset)
}

func (h *LoadMyTasksHandler) Handle(ctx context.Context, req any) (any, error) {
	query, ok := req.(LoadMyTasks)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T", req)
	}

	userID, err := h.identity.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	key := cacheKeyMyTasks(userID, query.Pagination)
	if h.cache != nil {
		var cached []TaskReadModel
		if hit, _ := h.cache.Get(ctx, key, &cached); hit {
			return cached, nil
		}
	}

	tasks, err := h.gateway.LoadAdminTasks(ctx, userID, query.Pagination)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		_ = h.cache.Set(ctx, key, tasks, h.cacheTTL)
	}

	return tasks, nil
}
