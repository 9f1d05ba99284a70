package identity

import (
	"context"

	"github.com/davicafu/moderlab/internal/shared/app/ports"
	"github.com/google/uuid"
)

// StaticProvider devuelve siempre la misma identidad. Sustituye a la capa de
// autenticación real, que queda fuera de este servicio; el id y el rol se
// fijan por configuración.
type StaticProvider struct {
	userID uuid.UUID
	role   ports.Role
}

func NewStaticProvider(userID uuid.UUID, role ports.Role) *StaticProvider {
	return &StaticProvider{userID: userID, role: role}
}

func (p *StaticProvider) CurrentUserID(ctx context.Context) (uuid.UUID, error) {
	return p.userID, nil
}

func (p *StaticProvider) CurrentUserRole(ctx context.Context) (ports.Role, error) {
	return p.role, nil
}

// Verificación estática
var _ ports.IdentityProvider = (*StaticProvider)(nil)
