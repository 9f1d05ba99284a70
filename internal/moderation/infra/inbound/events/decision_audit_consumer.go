package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	analytics "github.com/davicafu/moderlab/internal/moderation/infra/analytics/clickhouse"
)

// DecisionAuditConsumer vuelca los eventos ModerationDecisionAdded al log
// analítico. Va detrás del broker, nunca dentro de la transacción del comando.
type DecisionAuditConsumer struct {
	repo *analytics.DecisionAnalyticsRepo
	log  *zap.Logger
}

// NewDecisionAuditConsumer es el constructor.
func NewDecisionAuditConsumer(repo *analytics.DecisionAnalyticsRepo, logger *zap.Logger) *DecisionAuditConsumer {
	return &DecisionAuditConsumer{repo: repo, log: logger}
}

// HandleMessage es el punto de entrada para un nuevo mensaje/evento.
func (c *DecisionAuditConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var evt moderationDomain.ModerationDecisionAdded
	if err := json.Unmarshal(payload, &evt); err != nil {
		c.log.Warn("Failed to unmarshal ModerationDecisionAdded event", zap.String("key", key), zap.Error(err))
		return
	}

	ctxLog, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	record := analytics.DecisionRecord{
		EventID:     evt.EventID(),
		TaskID:      evt.TaskID,
		Decision:    string(evt.Decision),
		ContentType: string(evt.ContentRef.ContentType),
		ContentID:   evt.ContentRef.ContentID,
		DecidedAt:   evt.EventDate(),
	}

	if err := c.repo.LogBatch(ctxLog, []analytics.DecisionRecord{record}); err != nil {
		c.log.Warn("Failed to log decision to analytics",
			zap.String("task_id", evt.TaskID.String()),
			zap.Error(err),
		)
		return
	}

	c.log.Debug("Decision logged to analytics",
		zap.String("task_id", evt.TaskID.String()),
		zap.String("decision", string(evt.Decision)),
	)
}
