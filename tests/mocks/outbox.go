package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/davicafu/moderlab/internal/outbox"
)

// MockOutboxStore es un mock de outbox.Store basado en testify.
type MockOutboxStore struct {
	mock.Mock
}

var _ outbox.Store = (*MockOutboxStore)(nil)

func (m *MockOutboxStore) Insert(ctx context.Context, msg outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockOutboxStore) FetchPending(ctx context.Context, limit int) ([]outbox.Message, error) {
	args := m.Called(ctx, limit)
	if msgs, ok := args.Get(0).([]outbox.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOutboxStore) MarkPublished(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher es un mock de outbox.Publisher basado en testify.
type MockPublisher struct {
	mock.Mock
}

var _ outbox.Publisher = (*MockPublisher)(nil)

func (m *MockPublisher) Publish(ctx context.Context, msg outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockArchiver es un mock de outbox.Archiver basado en testify.
type MockArchiver struct {
	mock.Mock
}

var _ outbox.Archiver = (*MockArchiver)(nil)

func (m *MockArchiver) Archive(ctx context.Context, msg outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
