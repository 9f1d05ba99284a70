package application

import (
	"context"

	"github.com/google/uuid"
)

// TaskGateway es el acceso de solo lectura a las tareas. Va por fuera de la
// entidad y el unit of work: leer no es mutar.
type TaskGateway interface {
	LoadAdminTasks(ctx context.Context, adminID uuid.UUID, pagination Pagination) ([]TaskReadModel, error)
}

// Cache es el puerto de caché de modelos de lectura.
type Cache interface {
	// Get intenta poblar dest (puntero) con el valor asociado a la key.
	// Devuelve (true, nil) si hay hit y dest fue rellenado.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set serializa y guarda el valor con TTL en segundos.
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error

	// Delete elimina la key del cache.
	Delete(ctx context.Context, key string) error
}
