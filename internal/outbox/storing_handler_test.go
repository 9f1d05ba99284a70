package outbox_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/moderlab/internal/outbox"
	sharedDomain "github.com/davicafu/moderlab/internal/shared/domain"
	"github.com/davicafu/moderlab/tests/mocks"
)

type noteAdded struct {
	sharedDomain.BaseEvent
	Note string `json:"note"`
}

func (e *noteAdded) EventType() string { return "NoteAdded" }

func TestStoringHandler_InsertsEventAsMessage(t *testing.T) {
	// ARRANGE
	store := new(mocks.MockOutboxStore)
	eventID := uuid.New()
	eventDate := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)

	event := &noteAdded{Note: "hola"}
	event.SetEventID(eventID)
	event.Date = eventDate

	var inserted outbox.Message
	store.On("Insert", mock.Anything, mock.AnythingOfType("outbox.Message")).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(outbox.Message) }).
		Return(nil).Once()

	handler := outbox.NewStoringHandler(store)

	// ACT
	err := handler.Handle(context.Background(), event)

	// ASSERT: el event_id es el message_id y el payload va serializado.
	require.NoError(t, err)
	assert.Equal(t, eventID, inserted.MessageID)
	assert.Equal(t, "NoteAdded", inserted.EventType)
	assert.Equal(t, eventDate, inserted.CreatedAt)
	assert.JSONEq(t, `{"event_id":"`+eventID.String()+`","event_date":"2026-02-01T09:30:00Z","note":"hola"}`, string(inserted.Data))
	store.AssertExpectations(t)
}
