package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/moderlab/internal/moderation/application"
	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	"github.com/davicafu/moderlab/internal/shared/app/dispatch"
	"github.com/google/uuid"
)

// MeetupCreated es el evento de integración que emite el servicio de meetups.
type MeetupCreated struct {
	MeetupID uuid.UUID `json:"meetup_id"`
}

// MeetupConsumer abre una tarea de moderación por cada meetup creado.
type MeetupConsumer struct {
	sender dispatch.Sender
	log    *zap.Logger
}

// NewMeetupConsumer es el constructor.
func NewMeetupConsumer(sender dispatch.Sender, logger *zap.Logger) *MeetupConsumer {
	return &MeetupConsumer{sender: sender, log: logger}
}

// HandleMessage es el punto de entrada para un nuevo mensaje/evento.
func (c *MeetupConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var evt MeetupCreated
	if err := json.Unmarshal(payload, &evt); err != nil {
		c.log.Warn("Failed to unmarshal MeetupCreated event", zap.String("key", key), zap.Error(err))
		return
	}
	if evt.MeetupID == uuid.Nil {
		c.log.Warn("MeetupCreated event without meetup_id", zap.String("key", key))
		return
	}

	ctxCmd, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := c.sender.Send(ctxCmd, application.ModerateContent{
		ContentType: moderationDomain.ContentMeetup,
		ContentID:   evt.MeetupID,
	})
	if err != nil {
		c.log.Warn("Failed to open moderation task for meetup",
			zap.String("meetup_id", evt.MeetupID.String()),
			zap.Error(err),
		)
		return
	}

	c.log.Info("Moderation task opened via event",
		zap.String("meetup_id", evt.MeetupID.String()),
		zap.Any("task_id", result),
	)
}
