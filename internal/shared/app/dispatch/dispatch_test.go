package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/moderlab/internal/shared/app/ports"
	sharedDomain "github.com/davicafu/moderlab/internal/shared/domain"
)

// ---------------- Fakes ----------------

type testCommand struct{}

func (testCommand) Command() {}

type testQuery struct{}

type handlerFunc func(ctx context.Context, req any) (any, error)

func (f handlerFunc) Handle(ctx context.Context, req any) (any, error) { return f(ctx, req) }

// traceBehavior apunta su paso por el pipeline antes y después de next.
type traceBehavior struct {
	name  string
	trace *[]string
}

func (b *traceBehavior) Handle(ctx context.Context, req any, next Next) (any, error) {
	*b.trace = append(*b.trace, b.name+":pre")
	result, err := next(ctx, req)
	*b.trace = append(*b.trace, b.name+":post")
	return result, err
}

type fakeCommitter struct {
	flushed int
	fail    error
	trace   *[]string
}

func (c *fakeCommitter) Flush(ctx context.Context) error {
	if c.fail != nil {
		return c.fail
	}
	c.flushed++
	if c.trace != nil {
		*c.trace = append(*c.trace, "flush")
	}
	return nil
}

type fakeTx struct {
	commits   int
	rollbacks int
	trace     *[]string
}

func (t *fakeTx) Commit() error {
	t.commits++
	if t.trace != nil {
		*t.trace = append(*t.trace, "commit")
	}
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rollbacks++
	return nil
}

type fakeNotifier struct {
	published []sharedDomain.DomainEvent
	fail      error
}

func (n *fakeNotifier) Publish(ctx context.Context, event sharedDomain.DomainEvent) error {
	if n.fail != nil {
		return n.fail
	}
	n.published = append(n.published, event)
	return nil
}

type seqIDs struct {
	next uuid.UUID
}

func (s seqIDs) NewEventID() uuid.UUID { return s.next }
func (s seqIDs) NewTaskID() uuid.UUID  { return s.next }

var _ ports.IdGenerator = seqIDs{}

type stubEvent struct {
	sharedDomain.BaseEvent
}

func (e *stubEvent) EventType() string { return "StubEvent" }

// ---------------- Tests ----------------

func TestDispatcher_SendWithoutHandlerFails(t *testing.T) {
	d := NewDispatcher()

	_, err := d.Send(context.Background(), testCommand{})

	assert.Error(t, err)
}

func TestDispatcher_FirstRegisteredBehaviorIsOutermost(t *testing.T) {
	// Arrange
	var trace []string
	d := NewDispatcher()
	d.Use(&traceBehavior{name: "outer", trace: &trace})
	d.Use(&traceBehavior{name: "inner", trace: &trace})
	d.RegisterHandler(testCommand{}, handlerFunc(func(ctx context.Context, req any) (any, error) {
		trace = append(trace, "handler")
		return nil, nil
	}))

	// Act
	_, err := d.Send(context.Background(), testCommand{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:pre", "inner:pre", "handler", "inner:post", "outer:post"}, trace)
}

func TestCommitBehavior_FlushesThenCommits(t *testing.T) {
	// Arrange
	var trace []string
	committer := &fakeCommitter{trace: &trace}
	tx := &fakeTx{trace: &trace}

	d := NewDispatcher()
	d.Use(NewCommitBehavior(committer, tx))
	d.RegisterHandler(testCommand{}, handlerFunc(func(ctx context.Context, req any) (any, error) {
		trace = append(trace, "handler")
		return "ok", nil
	}))

	// Act
	result, err := d.Send(context.Background(), testCommand{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, []string{"handler", "flush", "commit"}, trace)
}

func TestCommitBehavior_QueriesBypassCommit(t *testing.T) {
	// Arrange
	committer := &fakeCommitter{}
	tx := &fakeTx{}

	d := NewDispatcher()
	d.Use(NewCommitBehavior(committer, tx))
	d.RegisterHandler(testQuery{}, handlerFunc(func(ctx context.Context, req any) (any, error) {
		return 42, nil
	}))

	// Act
	result, err := d.Send(context.Background(), testQuery{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Zero(t, committer.flushed)
	assert.Zero(t, tx.commits)
}

func TestCommitBehavior_HandlerErrorSkipsCommit(t *testing.T) {
	// Arrange
	committer := &fakeCommitter{}
	tx := &fakeTx{}
	handlerErr := errors.New("boom")

	d := NewDispatcher()
	d.Use(NewCommitBehavior(committer, tx))
	d.RegisterHandler(testCommand{}, handlerFunc(func(ctx context.Context, req any) (any, error) {
		return nil, handlerErr
	}))

	// Act
	_, err := d.Send(context.Background(), testCommand{})

	// Assert
	assert.ErrorIs(t, err, handlerErr)
	assert.Zero(t, committer.flushed)
	assert.Zero(t, tx.commits)
}

func TestCommitBehavior_FlushErrorSkipsCommit(t *testing.T) {
	// Arrange
	flushErr := errors.New("mapper failed")
	committer := &fakeCommitter{fail: flushErr}
	tx := &fakeTx{}

	d := NewDispatcher()
	d.Use(NewCommitBehavior(committer, tx))
	d.RegisterHandler(testCommand{}, handlerFunc(func(ctx context.Context, req any) (any, error) {
		return nil, nil
	}))

	// Act
	_, err := d.Send(context.Background(), testCommand{})

	// Assert
	assert.ErrorIs(t, err, flushErr)
	assert.Zero(t, tx.commits)
}

func TestEventPublishingBehavior_DrainsCollectorInOrder(t *testing.T) {
	// Arrange
	collector := sharedDomain.NewEventCollector()
	notifier := &fakeNotifier{}
	first := &stubEvent{}
	second := &stubEvent{}

	d := NewDispatcher()
	d.Use(NewEventPublishingBehavior(collector, notifier))
	d.RegisterHandler(testCommand{}, handlerFunc(func(ctx context.Context, req any) (any, error) {
		collector.Add(first)
		collector.Add(second)
		return nil, nil
	}))

	// Act
	_, err := d.Send(context.Background(), testCommand{})

	// Assert
	require.NoError(t, err)
	require.Len(t, notifier.published, 2)
	assert.Same(t, first, notifier.published[0].(*stubEvent))
	assert.Same(t, second, notifier.published[1].(*stubEvent))
	assert.Empty(t, collector.Release(), "el collector queda drenado")
}

func TestEventPublishingBehavior_QueriesDoNotPublish(t *testing.T) {
	// Arrange
	collector := sharedDomain.NewEventCollector()
	notifier := &fakeNotifier{}

	d := NewDispatcher()
	d.Use(NewEventPublishingBehavior(collector, notifier))
	d.RegisterHandler(testQuery{}, handlerFunc(func(ctx context.Context, req any) (any, error) {
		return nil, nil
	}))

	// Act
	_, err := d.Send(context.Background(), testQuery{})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, notifier.published)
}

func TestEventPublishingBehavior_PublishErrorAbortsOperation(t *testing.T) {
	// Arrange: el commit envuelve a la publicación, como en producción.
	publishErr := errors.New("outbox insert failed")
	collector := sharedDomain.NewEventCollector()
	notifier := &fakeNotifier{fail: publishErr}
	committer := &fakeCommitter{}
	tx := &fakeTx{}

	d := NewDispatcher()
	d.Use(NewCommitBehavior(committer, tx))
	d.Use(NewEventPublishingBehavior(collector, notifier))
	d.RegisterHandler(testCommand{}, handlerFunc(func(ctx context.Context, req any) (any, error) {
		collector.Add(&stubEvent{})
		return nil, nil
	}))

	// Act
	_, err := d.Send(context.Background(), testCommand{})

	// Assert: si un evento no entra en el outbox, no hay commit.
	assert.ErrorIs(t, err, publishErr)
	assert.Zero(t, committer.flushed)
	assert.Zero(t, tx.commits)
}

func TestEventIDGenerationBehavior_AssignsMissingID(t *testing.T) {
	// Arrange
	assigned := uuid.New()
	event := &stubEvent{}
	var seen sharedDomain.DomainEvent

	d := NewDispatcher()
	d.UseNotification(NewEventIDGenerationBehavior(seqIDs{next: assigned}))
	d.RegisterNotificationHandler(notificationHandlerFunc(func(ctx context.Context, e sharedDomain.DomainEvent) error {
		seen = e
		return nil
	}))

	// Act
	require.NoError(t, d.Publish(context.Background(), event))

	// Assert
	assert.Equal(t, assigned, seen.EventID())
}

func TestEventIDGenerationBehavior_KeepsExistingID(t *testing.T) {
	// Arrange
	existing := uuid.New()
	event := &stubEvent{}
	event.SetEventID(existing)

	d := NewDispatcher()
	d.UseNotification(NewEventIDGenerationBehavior(seqIDs{next: uuid.New()}))
	d.RegisterNotificationHandler(notificationHandlerFunc(func(ctx context.Context, e sharedDomain.DomainEvent) error {
		return nil
	}))

	// Act
	require.NoError(t, d.Publish(context.Background(), event))

	// Assert
	assert.Equal(t, existing, event.EventID())
}

type notificationHandlerFunc func(ctx context.Context, event sharedDomain.DomainEvent) error

func (f notificationHandlerFunc) Handle(ctx context.Context, event sharedDomain.DomainEvent) error {
	return f(ctx, event)
}
