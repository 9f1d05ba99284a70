package contracts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/moderlab/internal/moderation/application"
	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	moderationEvents "github.com/davicafu/moderlab/internal/moderation/infra/inbound/events"
)

func TestMeetupConsumer_OpensModerationTask(t *testing.T) {
	// Arrange
	sender := &stubSender{result: uuid.New()}
	consumer := moderationEvents.NewMeetupConsumer(sender, zap.NewNop())
	meetupID := uuid.New()

	// Act
	consumer.HandleMessage(context.Background(), "key", []byte(`{"meetup_id":"`+meetupID.String()+`"}`))

	// Assert
	cmd, ok := sender.got.(application.ModerateContent)
	require.True(t, ok)
	assert.Equal(t, moderationDomain.ContentMeetup, cmd.ContentType)
	assert.Equal(t, meetupID, cmd.ContentID)
}

func TestMeetupConsumer_IgnoresMalformedPayload(t *testing.T) {
	// Arrange
	sender := &stubSender{}
	consumer := moderationEvents.NewMeetupConsumer(sender, zap.NewNop())

	// Act
	consumer.HandleMessage(context.Background(), "key", []byte(`not json`))
	consumer.HandleMessage(context.Background(), "key", []byte(`{}`)) // sin meetup_id

	// Assert
	assert.Nil(t, sender.got)
}
