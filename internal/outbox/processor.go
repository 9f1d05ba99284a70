package outbox

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Archiver guarda una copia de los mensajes ya publicados fuera del camino
// caliente. Es opcional y best effort: un fallo al archivar no re-encola nada.
type Archiver interface {
	Archive(ctx context.Context, msg Message) error
}

// Processor drena la tabla outbox: lee los mensajes pendientes en orden de
// inserción, los publica uno a uno y los marca como publicados. Si el broker
// rechaza un mensaje, se queda pendiente y lo recoge una pasada posterior;
// nunca se descarta en silencio.
type Processor struct {
	store     Store
	publisher Publisher
	archiver  Archiver // puede ser nil
	log       *zap.Logger
}

func NewProcessor(store Store, publisher Publisher, log *zap.Logger) *Processor {
	return &Processor{store: store, publisher: publisher, log: log}
}

// WithArchiver activa el archivado de mensajes publicados.
func (p *Processor) WithArchiver(archiver Archiver) *Processor {
	p.archiver = archiver
	return p
}

// ProcessBatch hace una pasada: como mucho `limit` mensajes.
func (p *Processor) ProcessBatch(ctx context.Context, limit int) error {
	messages, err := p.store.FetchPending(ctx, limit)
	if err != nil {
		return fmt.Errorf("fetch pending outbox messages: %w", err)
	}
	if len(messages) > 0 {
		p.log.Info(fmt.Sprintf("📬 %d mensajes de outbox pendientes", len(messages)))
	}

	for _, msg := range messages {
		p.publishAndMark(ctx, msg)
	}
	return nil
}

func (p *Processor) publishAndMark(ctx context.Context, msg Message) {
	if err := p.publisher.Publish(ctx, msg); err != nil {
		// Se queda pendiente: lo reintentará la siguiente pasada.
		p.log.Warn("⚠️ No se pudo publicar mensaje de outbox",
			zap.String("message_id", msg.MessageID.String()),
			zap.String("event_type", msg.EventType),
			zap.Error(err),
		)
		return
	}

	if err := p.store.MarkPublished(ctx, msg.MessageID); err != nil {
		// El consumidor tolera at-least-once: peor caso, se re-publica.
		p.log.Warn("⚠️ No se pudo marcar mensaje como publicado",
			zap.String("message_id", msg.MessageID.String()),
			zap.Error(err),
		)
		return
	}

	p.log.Info("✅ Mensaje publicado y marcado",
		zap.String("message_id", msg.MessageID.String()),
		zap.String("event_type", msg.EventType),
	)

	if p.archiver != nil {
		if err := p.archiver.Archive(ctx, msg); err != nil {
			p.log.Warn("⚠️ No se pudo archivar mensaje publicado",
				zap.String("message_id", msg.MessageID.String()),
				zap.Error(err),
			)
		}
	}
}
