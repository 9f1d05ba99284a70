package dispatch

import (
	"context"
	"fmt"
	"reflect"

	sharedDomain "github.com/davicafu/moderlab/internal/shared/domain"
)

// Command marca las peticiones de escritura. Los behaviors transaccionales
// (publicación de eventos y commit) solo envuelven a las peticiones que lo
// implementan; las queries pasan directas al handler.
type Command interface {
	Command()
}

// Sender envía una petición a través del pipeline. Lo consumen los adaptadores
// de entrada (HTTP, consumidores de stream), que no saben nada del scope.
type Sender interface {
	Send(ctx context.Context, req any) (any, error)
}

// Notifier publica una notificación (evento de dominio) de forma síncrona a
// través de sus propios behaviors y handlers.
type Notifier interface {
	Publish(ctx context.Context, event sharedDomain.DomainEvent) error
}

// Next invoca el resto del pipeline desde dentro de un behavior.
type Next func(ctx context.Context, req any) (any, error)

// Behavior es un paso transversal envuelto alrededor del handler terminal.
type Behavior interface {
	Handle(ctx context.Context, req any, next Next) (any, error)
}

// Handler es el handler terminal de una petición.
type Handler interface {
	Handle(ctx context.Context, req any) (any, error)
}

// NotificationNext invoca el resto del pipeline de notificaciones.
type NotificationNext func(ctx context.Context, event sharedDomain.DomainEvent) error

// NotificationBehavior envuelve el despacho de una notificación.
type NotificationBehavior interface {
	Handle(ctx context.Context, event sharedDomain.DomainEvent, next NotificationNext) error
}

// NotificationHandler procesa una notificación ya pasada por sus behaviors.
type NotificationHandler interface {
	Handle(ctx context.Context, event sharedDomain.DomainEvent) error
}

// Dispatcher enruta peticiones a su handler envolviéndolas en una cadena
// ordenada de behaviors. Se construye uno nuevo por scope de petición: no
// guarda estado compartido entre operaciones.
type Dispatcher struct {
	handlers       map[reflect.Type]Handler
	behaviors      []Behavior // el primero registrado es el más externo
	notifBehaviors []NotificationBehavior
	notifHandlers  []NotificationHandler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[reflect.Type]Handler)}
}

// RegisterHandler asocia el tipo de `req` con su handler terminal.
func (d *Dispatcher) RegisterHandler(req any, h Handler) {
	d.handlers[reflect.TypeOf(req)] = h
}

// Use añade behaviors a la cadena de peticiones. El primero registrado queda
// como el más externo: envuelve a todos los demás y al handler.
func (d *Dispatcher) Use(behaviors ...Behavior) {
	d.behaviors = append(d.behaviors, behaviors...)
}

// UseNotification añade behaviors a la cadena de notificaciones.
func (d *Dispatcher) UseNotification(behaviors ...NotificationBehavior) {
	d.notifBehaviors = append(d.notifBehaviors, behaviors...)
}

// RegisterNotificationHandler añade un handler que recibe toda notificación.
func (d *Dispatcher) RegisterNotificationHandler(h NotificationHandler) {
	d.notifHandlers = append(d.notifHandlers, h)
}

// Send ejecuta la petición a través de la cadena de behaviors y su handler.
func (d *Dispatcher) Send(ctx context.Context, req any) (any, error) {
	handler, ok := d.handlers[reflect.TypeOf(req)]
	if !ok {
		return nil, fmt.Errorf("dispatch: no handler registered for %T", req)
	}

	next := handler.Handle
	for i := len(d.behaviors) - 1; i >= 0; i-- {
		behavior := d.behaviors[i]
		inner := next
		next = func(ctx context.Context, req any) (any, error) {
			return behavior.Handle(ctx, req, inner)
		}
	}

	return next(ctx, req)
}

// Publish despacha una notificación de forma síncrona: primero sus behaviors
// (asignación de event_id) y después todos los handlers registrados.
func (d *Dispatcher) Publish(ctx context.Context, event sharedDomain.DomainEvent) error {
	next := func(ctx context.Context, event sharedDomain.DomainEvent) error {
		for _, h := range d.notifHandlers {
			if err := h.Handle(ctx, event); err != nil {
				return err
			}
		}
		return nil
	}
	for i := len(d.notifBehaviors) - 1; i >= 0; i-- {
		behavior := d.notifBehaviors[i]
		inner := next
		next = func(ctx context.Context, event sharedDomain.DomainEvent) error {
			return behavior.Handle(ctx, event, inner)
		}
	}

	return next(ctx, event)
}

// Verificaciones estáticas
var (
	_ Sender   = (*Dispatcher)(nil)
	_ Notifier = (*Dispatcher)(nil)
)
