package relay

import (
	"context"
	"time"

	"github.com/davicafu/moderlab/internal/outbox"
	"go.uber.org/zap"
)

// Worker ejecuta el processor de outbox en bucle de polling, independiente de
// las peticiones que crearon los mensajes.
type Worker struct {
	processor *outbox.Processor
	interval  time.Duration
	batchSize int
	log       *zap.Logger
}

func NewWorker(processor *outbox.Processor, interval time.Duration, batchSize int, log *zap.Logger) *Worker {
	return &Worker{
		processor: processor,
		interval:  interval,
		batchSize: batchSize,
		log:       log,
	}
}

// Start inicia el bucle de polling. Bloquea hasta que el contexto se cancele.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("🚀 Outbox relay iniciado", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("🛑 Outbox relay detenido.")
			return
		case <-ticker.C:
			if err := w.processor.ProcessBatch(ctx, w.batchSize); err != nil {
				w.log.Warn("⚠️ Pasada de outbox fallida", zap.Error(err))
			}
		}
	}
}
