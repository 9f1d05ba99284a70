package dispatch

import (
	"context"
	"fmt"

	"github.com/davicafu/moderlab/internal/shared/app/ports"
	sharedDomain "github.com/davicafu/moderlab/internal/shared/domain"
	"github.com/google/uuid"
)

// ---------------- Behaviors de notificación ----------------

// EventIDGenerationBehavior asigna un event_id nuevo a toda notificación que
// llegue sin él. Corre antes que cualquier handler que persista el evento: el
// event_id es el message_id del outbox.
type EventIDGenerationBehavior struct {
	ids ports.IdGenerator
}

func NewEventIDGenerationBehavior(ids ports.IdGenerator) *EventIDGenerationBehavior {
	return &EventIDGenerationBehavior{ids: ids}
}

func (b *EventIDGenerationBehavior) Handle(
	ctx context.Context,
	event sharedDomain.DomainEvent,
	next NotificationNext,
) error {
	if event.EventID() == uuid.Nil {
		event.SetEventID(b.ids.NewEventID())
	}
	return next(ctx, event)
}

// ---------------- Behaviors de comando ----------------

// EventPublishingBehavior drena el collector cuando el handler terminó bien y
// despacha cada evento como notificación síncrona: así la generación de ids
// aplica y el handler de outbox inserta en la transacción aún abierta.
// Nunca llama al publisher de red; solo escribe en el store durable.
type EventPublishingBehavior struct {
	collector *sharedDomain.EventCollector
	notifier  Notifier
}

func NewEventPublishingBehavior(collector *sharedDomain.EventCollector, notifier Notifier) *EventPublishingBehavior {
	return &EventPublishingBehavior{collector: collector, notifier: notifier}
}

func (b *EventPublishingBehavior) Handle(ctx context.Context, req any, next Next) (any, error) {
	result, err := next(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, ok := req.(Command); !ok {
		return result, nil
	}

	for _, event := range b.collector.Release() {
		if err := b.notifier.Publish(ctx, event); err != nil {
			return nil, fmt.Errorf("publish domain event %q: %w", event.EventType(), err)
		}
	}

	return result, nil
}

// Committer es lo que el behavior de commit necesita del scope: volcar el
// unit of work y confirmar la transacción.
type Committer interface {
	Flush(ctx context.Context) error
}

// Tx es la parte de la transacción que ve el pipeline.
type Tx interface {
	Commit() error
	Rollback() error
}

// CommitBehavior vuelca las operaciones del unit of work y confirma la
// transacción. Debe ser el behavior más externo: si el handler o la
// publicación fallan, no hay commit y la escritura de entidad y la fila de
// outbox se pierden juntas.
type CommitBehavior struct {
	uow Committer
	tx  Tx
}

func NewCommitBehavior(uow Committer, tx Tx) *CommitBehavior {
	return &CommitBehavior{uow: uow, tx: tx}
}

func (b *CommitBehavior) Handle(ctx context.Context, req any, next Next) (any, error) {
	result, err := next(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, ok := req.(Command); !ok {
		return result, nil
	}

	if err := b.uow.Flush(ctx); err != nil {
		return nil, fmt.Errorf("flush unit of work: %w", err)
	}
	if err := b.tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return result, nil
}

// Verificaciones estáticas
var (
	_ NotificationBehavior = (*EventIDGenerationBehavior)(nil)
	_ Behavior             = (*EventPublishingBehavior)(nil)
	_ Behavior             = (*CommitBehavior)(nil)
)
