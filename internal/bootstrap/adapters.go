package bootstrap

import (
	outboxPostgres "github.com/davicafu/moderlab/internal/infra/db/postgres"
	outboxSQLite "github.com/davicafu/moderlab/internal/infra/db/sqlite"
	"github.com/davicafu/moderlab/internal/moderation/application"
	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	moderationPostgres "github.com/davicafu/moderlab/internal/moderation/infra/db/postgres"
	moderationSQLite "github.com/davicafu/moderlab/internal/moderation/infra/db/sqlite"
	"github.com/davicafu/moderlab/internal/outbox"
	sharedDomain "github.com/davicafu/moderlab/internal/shared/domain"
	"github.com/davicafu/moderlab/internal/shared/infra/persistence"
)

// Adapters construye los adaptadores de persistencia de un scope sobre la
// transacción abierta. Hay una implementación por driver: el resto del
// arranque no sabe contra qué motor corre.
type Adapters interface {
	TaskMapper(tx persistence.Executor) persistence.DataMapper
	TaskRepository(tx persistence.Executor, events sharedDomain.EventAdder, uow sharedDomain.UnitOfWork) moderationDomain.TaskRepository
	TaskGateway(tx persistence.Executor) application.TaskGateway
	OutboxStore(tx persistence.Executor) outbox.Store
}

// ---------------- SQLite ----------------

type SQLiteAdapters struct{}

func (SQLiteAdapters) TaskMapper(tx persistence.Executor) persistence.DataMapper {
	return moderationSQLite.NewTaskMapperSQLite(tx)
}

func (SQLiteAdapters) TaskRepository(
	tx persistence.Executor,
	events sharedDomain.EventAdder,
	uow sharedDomain.UnitOfWork,
) moderationDomain.TaskRepository {
	return moderationSQLite.NewTaskRepoSQLite(tx, events, uow)
}

func (SQLiteAdapters) TaskGateway(tx persistence.Executor) application.TaskGateway {
	return moderationSQLite.NewTaskGatewaySQLite(tx)
}

func (SQLiteAdapters) OutboxStore(tx persistence.Executor) outbox.Store {
	return outboxSQLite.NewOutboxStoreSQLite(tx)
}

// ---------------- Postgres ----------------

type PostgresAdapters struct{}

func (PostgresAdapters) TaskMapper(tx persistence.Executor) persistence.DataMapper {
	return moderationPostgres.NewTaskMapperPostgres(tx)
}

func (PostgresAdapters) TaskRepository(
	tx persistence.Executor,
	events sharedDomain.EventAdder,
	uow sharedDomain.UnitOfWork,
) moderationDomain.TaskRepository {
	return moderationPostgres.NewTaskRepoPostgres(tx, events, uow)
}

func (PostgresAdapters) TaskGateway(tx persistence.Executor) application.TaskGateway {
	return moderationPostgres.NewTaskGatewayPostgres(tx)
}

func (PostgresAdapters) OutboxStore(tx persistence.Executor) outbox.Store {
	return outboxPostgres.NewOutboxStorePostgres(tx)
}

// Verificaciones estáticas
var (
	_ Adapters = SQLiteAdapters{}
	_ Adapters = PostgresAdapters{}
)
