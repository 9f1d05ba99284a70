package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/davicafu/moderlab/internal/moderation/application"
	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	sharedDomain "github.com/davicafu/moderlab/internal/shared/domain"
	"github.com/davicafu/moderlab/internal/shared/infra/persistence"
	"github.com/google/uuid"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ---------------- Data mapper ----------------

// TaskMapperPostgres traduce ModerationTask a SQL sobre Postgres.
type TaskMapperPostgres struct {
	db persistence.Executor
}

func NewTaskMapperPostgres(db persistence.Executor) *TaskMapperPostgres {
	return &TaskMapperPostgres{db: db}
}

func (m *TaskMapperPostgres) Insert(ctx context.Context, entity sharedDomain.Tracked) error {
	task, err := asTask(entity)
	if err != nil {
		return err
	}

	_, err = m.db.ExecContext(ctx,
		`INSERT INTO moderation_tasks (task_id, assigned_admin, created_at, expiration, content_type, content_id, decision)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		task.EntityID(),
		task.AssignedAdmin(),
		task.CreatedAt(),
		task.Expiration(),
		string(task.ContentRef().ContentType),
		task.ContentRef().ContentID,
		string(task.Decision()),
	)
	return err
}

func (m *TaskMapperPostgres) Update(ctx context.Context, entity sharedDomain.Tracked) error {
	task, err := asTask(entity)
	if err != nil {
		return err
	}

	_, err = m.db.ExecContext(ctx,
		`UPDATE moderation_tasks SET assigned_admin = $1, decision = $2 WHERE task_id = $3`,
		task.AssignedAdmin(), string(task.Decision()), task.EntityID(),
	)
	return err
}

func (m *TaskMapperPostgres) Delete(ctx context.Context, entity sharedDomain.Tracked) error {
	_, err := m.db.ExecContext(ctx,
		`DELETE FROM moderation_tasks WHERE task_id = $1`, entity.EntityID())
	return err
}

func asTask(entity sharedDomain.Tracked) (*moderationDomain.ModerationTask, error) {
	task, ok := entity.(*moderationDomain.ModerationTask)
	if !ok {
		return nil, fmt.Errorf("unexpected entity type %T", entity)
	}
	return task, nil
}

// ---------------- Repositorio ----------------

// TaskRepoPostgres: mismo contrato que la variante SQLite, placeholders $n y
// scan nativo de UUID.
type TaskRepoPostgres struct {
	db          persistence.Executor
	events      sharedDomain.EventAdder
	uow         sharedDomain.UnitOfWork
	identityMap map[uuid.UUID]*moderationDomain.ModerationTask
}

func NewTaskRepoPostgres(
	db persistence.Executor,
	events sharedDomain.EventAdder,
	uow sharedDomain.UnitOfWork,
) *TaskRepoPostgres {
	return &TaskRepoPostgres{
		db:          db,
		events:      events,
		uow:         uow,
		identityMap: make(map[uuid.UUID]*moderationDomain.ModerationTask),
	}
}

func (r *TaskRepoPostgres) Add(task *moderationDomain.ModerationTask) {
	task.MarkNew()
	r.identityMap[task.EntityID()] = task
}

func (r *TaskRepoPostgres) Delete(task *moderationDomain.ModerationTask) {
	task.MarkDeleted()
	delete(r.identityMap, task.EntityID())
}

const taskColumns = `task_id, assigned_admin, created_at, expiration, content_type, content_id, decision`

func (r *TaskRepoPostgres) WithTaskID(ctx context.Context, taskID uuid.UUID) (*moderationDomain.ModerationTask, error) {
	if task, ok := r.identityMap[taskID]; ok {
		return task, nil
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM moderation_tasks WHERE task_id = $1`, taskID)

	task, err := r.scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	r.identityMap[task.EntityID()] = task
	return task, nil
}

func (r *TaskRepoPostgres) WithAssignedAdmin(ctx context.Context, adminID uuid.UUID) ([]*moderationDomain.ModerationTask, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM moderation_tasks WHERE assigned_admin = $1 ORDER BY created_at`,
		adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*moderationDomain.ModerationTask
	for rows.Next() {
		task, err := r.scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}

		if cached, ok := r.identityMap[task.EntityID()]; ok {
			task = cached
		} else {
			r.identityMap[task.EntityID()] = task
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

type scanFunc func(dest ...any) error

func (r *TaskRepoPostgres) scanTask(scan scanFunc) (*moderationDomain.ModerationTask, error) {
	var (
		taskID, adminID, contentID uuid.UUID
		createdAt, expiration      time.Time
		contentType, decision      string
	)
	if err := scan(&taskID, &adminID, &createdAt, &expiration, &contentType, &contentID, &decision); err != nil {
		return nil, err
	}

	return moderationDomain.NewModerationTask(
		taskID, r.events, r.uow,
		adminID, createdAt, expiration,
		moderationDomain.ContentRef{
			ContentType: moderationDomain.ContentType(contentType),
			ContentID:   contentID,
		},
		moderationDomain.Decision(decision),
	), nil
}

// ---------------- Gateway de lectura ----------------

type TaskGatewayPostgres struct {
	db persistence.Executor
}

func NewTaskGatewayPostgres(db persistence.Executor) *TaskGatewayPostgres {
	return &TaskGatewayPostgres{db: db}
}

func (g *TaskGatewayPostgres) LoadAdminTasks(
	ctx context.Context,
	adminID uuid.UUID,
	pagination application.Pagination,
) ([]application.TaskReadModel, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM moderation_tasks
		 WHERE assigned_admin = $1
		 ORDER BY created_at
		 LIMIT $2 OFFSET $3`,
		adminID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var models []application.TaskReadModel
	for rows.Next() {
		var (
			model       application.TaskReadModel
			contentType string
			decision    string
		)
		if err := rows.Scan(
			&model.TaskID, &model.AssignedAdmin, &model.CreatedAt,
			&model.Expiration, &contentType, &model.ContentRef.ContentID, &decision,
		); err != nil {
			return nil, err
		}
		model.ContentRef.ContentType = moderationDomain.ContentType(contentType)
		model.Decision = moderationDomain.Decision(decision)
		models = append(models, model)
	}

	return models, rows.Err()
}

// ---------------- Inicialización ----------------

// InitTasksPostgres crea la tabla de tareas si no existe.
func InitTasksPostgres(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS moderation_tasks (
		task_id UUID PRIMARY KEY,
		assigned_admin UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		expiration TIMESTAMPTZ NOT NULL,
		content_type TEXT NOT NULL,
		content_id UUID NOT NULL,
		decision TEXT NOT NULL DEFAULT 'pending'
	)`)
	return err
}

// Verificaciones estáticas
var (
	_ persistence.DataMapper          = (*TaskMapperPostgres)(nil)
	_ moderationDomain.TaskRepository = (*TaskRepoPostgres)(nil)
	_ application.TaskGateway         = (*TaskGatewayPostgres)(nil)
)
