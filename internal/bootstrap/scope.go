package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davicafu/moderlab/internal/moderation/application"
	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	"github.com/davicafu/moderlab/internal/outbox"
	"github.com/davicafu/moderlab/internal/shared/app/dispatch"
	"github.com/davicafu/moderlab/internal/shared/app/ports"
	sharedDomain "github.com/davicafu/moderlab/internal/shared/domain"
	"github.com/davicafu/moderlab/internal/shared/infra/persistence"
)

// ScopeFactory construye un scope nuevo por petición: transacción, collector,
// unit of work, repositorios y dispatcher viven juntos lo que dura la
// operación. Es el Sender que ven los adaptadores de entrada.
type ScopeFactory struct {
	db           *sql.DB
	adapters     Adapters
	identity     ports.IdentityProvider
	clock        ports.TimeProvider
	ids          ports.IdGenerator
	defaultAdmin uuid.UUID
	cache        application.Cache // puede ser nil
	cacheTTLSecs int
	log          *zap.Logger
}

func NewScopeFactory(
	db *sql.DB,
	adapters Adapters,
	identity ports.IdentityProvider,
	clock ports.TimeProvider,
	ids ports.IdGenerator,
	defaultAdmin uuid.UUID,
	cache application.Cache,
	cacheTTLSecs int,
	log *zap.Logger,
) *ScopeFactory {
	return &ScopeFactory{
		db:           db,
		adapters:     adapters,
		identity:     identity,
		clock:        clock,
		ids:          ids,
		defaultAdmin: defaultAdmin,
		cache:        cache,
		cacheTTLSecs: cacheTTLSecs,
		log:          log,
	}
}

// Send abre la transacción del scope, monta el pipeline y ejecuta la
// petición. El commit lo hace el behavior más externo; aquí solo queda el
// rollback de los caminos de error (y de las queries, que nunca confirman).
func (f *ScopeFactory) Send(ctx context.Context, req any) (any, error) {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	// Tras un commit el rollback devuelve ErrTxDone y se ignora.
	defer tx.Rollback()

	dispatcher := f.buildScope(tx)

	result, err := dispatcher.Send(ctx, req)
	if err != nil {
		f.log.Debug("🔄 Operación revertida",
			zap.String("request", fmt.Sprintf("%T", req)),
			zap.Error(err),
		)
		return nil, err
	}

	return result, nil
}

// buildScope cablea collector, tracker, repositorios y behaviors sobre la
// transacción recibida.
func (f *ScopeFactory) buildScope(tx *sql.Tx) *dispatch.Dispatcher {
	collector := sharedDomain.NewEventCollector()

	registry := persistence.NewMapperRegistry()
	registry.Register(&moderationDomain.ModerationTask{}, f.adapters.TaskMapper(tx))
	tracker := persistence.NewChangeTracker(registry)

	repo := f.adapters.TaskRepository(tx, collector, tracker)
	gateway := f.adapters.TaskGateway(tx)
	store := f.adapters.OutboxStore(tx)

	factory := application.NewTaskFactory(collector, tracker, f.clock, f.ids, f.defaultAdmin)

	dispatcher := dispatch.NewDispatcher()

	// Orden de behaviors: el commit envuelve a la publicación, que envuelve
	// al handler. Los eventos se insertan en el outbox con la transacción
	// todavía abierta y el commit confirma entidad y outbox juntos.
	dispatcher.Use(dispatch.NewCommitBehavior(tracker, tx))
	dispatcher.Use(dispatch.NewEventPublishingBehavior(collector, dispatcher))
	dispatcher.UseNotification(dispatch.NewEventIDGenerationBehavior(f.ids))
	dispatcher.RegisterNotificationHandler(outbox.NewStoringHandler(store))

	dispatcher.RegisterHandler(application.ModerateContent{}, application.NewModerateContentHandler(factory, repo))
	dispatcher.RegisterHandler(application.ProvideDecision{}, application.NewProvideDecisionHandler(repo, f.identity, f.clock))
	dispatcher.RegisterHandler(application.ReassignAdmin{}, application.NewReassignAdminHandler(repo, f.identity, f.clock))
	dispatcher.RegisterHandler(application.LoadMyTasks{}, application.NewLoadMyTasksHandler(gateway, f.identity, f.cache, f.cacheTTLSecs))

	return dispatcher
}

// Verificación estática
var _ dispatch.Sender = (*ScopeFactory)(nil)
