package domain

import "errors"

// Errores de dominio: violaciones de invariante levantadas por la entidad.
// Abortan la operación sin mutación parcial y no se reintentan.
var (
	// ErrTaskAlreadyDecided: la tarea ya tiene decisión y no admite otra
	// decisión ni reasignación de admin.
	ErrTaskAlreadyDecided = errors.New("moderation task is already decided")
)
