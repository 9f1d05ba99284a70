package outbox_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/davicafu/moderlab/internal/outbox"
	"github.com/davicafu/moderlab/tests/mocks"
)

func pendingMessage(eventType string) outbox.Message {
	return outbox.Message{
		MessageID: uuid.New(),
		Data:      []byte(`{"task_id":"x"}`),
		EventType: eventType,
		CreatedAt: time.Now().UTC(),
	}
}

func TestProcessor_ProcessBatch_Success(t *testing.T) {
	// ARRANGE
	store := new(mocks.MockOutboxStore)
	publisher := new(mocks.MockPublisher)

	msg := pendingMessage("ModerationStarted")

	store.On("FetchPending", mock.Anything, 10).Return([]outbox.Message{msg}, nil).Once()
	publisher.On("Publish", mock.Anything, msg).Return(nil).Once()
	store.On("MarkPublished", mock.Anything, msg.MessageID).Return(nil).Once()

	processor := outbox.NewProcessor(store, publisher, zap.NewNop())

	// ACT
	err := processor.ProcessBatch(context.Background(), 10)

	// ASSERT
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProcessor_ProcessBatch_PublisherFailureKeepsMessagePending(t *testing.T) {
	// ARRANGE: dos mensajes, el broker rechaza el segundo.
	store := new(mocks.MockOutboxStore)
	publisher := new(mocks.MockPublisher)

	first := pendingMessage("ModerationStarted")
	second := pendingMessage("ModerationDecisionAdded")

	store.On("FetchPending", mock.Anything, 10).Return([]outbox.Message{first, second}, nil).Once()
	publisher.On("Publish", mock.Anything, first).Return(nil).Once()
	publisher.On("Publish", mock.Anything, second).Return(errors.New("kafka is down")).Once()
	store.On("MarkPublished", mock.Anything, first.MessageID).Return(nil).Once()

	processor := outbox.NewProcessor(store, publisher, zap.NewNop())

	// ACT
	err := processor.ProcessBatch(context.Background(), 10)

	// ASSERT: el fallo no aborta la pasada y el segundo nunca se marca.
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.AssertExpectations(t)
	publisher.AssertExpectations(t)
	store.AssertNotCalled(t, "MarkPublished", mock.Anything, second.MessageID)
}

func TestProcessor_ProcessBatch_MarkFailureDoesNotAbort(t *testing.T) {
	// ARRANGE
	store := new(mocks.MockOutboxStore)
	publisher := new(mocks.MockPublisher)

	msg := pendingMessage("AdminReassigned")

	store.On("FetchPending", mock.Anything, 10).Return([]outbox.Message{msg}, nil).Once()
	publisher.On("Publish", mock.Anything, msg).Return(nil).Once()
	store.On("MarkPublished", mock.Anything, msg.MessageID).Return(errors.New("db locked")).Once()

	processor := outbox.NewProcessor(store, publisher, zap.NewNop())

	// ACT
	err := processor.ProcessBatch(context.Background(), 10)

	// ASSERT
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.AssertExpectations(t)
}

func TestProcessor_ProcessBatch_FetchFailurePropagates(t *testing.T) {
	// ARRANGE
	store := new(mocks.MockOutboxStore)
	publisher := new(mocks.MockPublisher)

	store.On("FetchPending", mock.Anything, 10).Return(nil, errors.New("db gone")).Once()

	processor := outbox.NewProcessor(store, publisher, zap.NewNop())

	// ACT
	err := processor.ProcessBatch(context.Background(), 10)

	// ASSERT
	if err == nil {
		t.Fatal("expected error")
	}
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestProcessor_ProcessBatch_ArchivesPublishedMessages(t *testing.T) {
	// ARRANGE
	store := new(mocks.MockOutboxStore)
	publisher := new(mocks.MockPublisher)
	archiver := new(mocks.MockArchiver)

	msg := pendingMessage("ModerationStarted")

	store.On("FetchPending", mock.Anything, 10).Return([]outbox.Message{msg}, nil).Once()
	publisher.On("Publish", mock.Anything, msg).Return(nil).Once()
	store.On("MarkPublished", mock.Anything, msg.MessageID).Return(nil).Once()
	archiver.On("Archive", mock.Anything, msg).Return(nil).Once()

	processor := outbox.NewProcessor(store, publisher, zap.NewNop()).WithArchiver(archiver)

	// ACT
	err := processor.ProcessBatch(context.Background(), 10)

	// ASSERT
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	archiver.AssertExpectations(t)
}
