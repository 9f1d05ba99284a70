package apperror

import "errors"

// Kind es el tipo legible por máquina de un error de aplicación.
type Kind string

const (
	KindPermission Kind = "permission_denied"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
)

// Error es un error de aplicación: lo levantan los handlers tras comprobar
// autorización o existencia, y aborta la operación sin mutación parcial.
// No se confunde con los errores de dominio (invariantes) ni con los fallos
// de infraestructura.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func PermissionDenied(message string) *Error { return New(KindPermission, message) }
func NotFound(message string) *Error         { return New(KindNotFound, message) }
func Conflict(message string) *Error         { return New(KindConflict, message) }

// KindOf extrae el Kind si err es (o envuelve) un error de aplicación.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}
