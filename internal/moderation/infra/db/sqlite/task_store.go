package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/davicafu/moderlab/internal/moderation/application"
	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	sharedDomain "github.com/davicafu/moderlab/internal/shared/domain"
	"github.com/davicafu/moderlab/internal/shared/infra/persistence"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// ---------------- Data mapper ----------------

// TaskMapperSQLite traduce ModerationTask a SQL. Lo invoca el unit of work al
// volcar, sobre la transacción de la petición.
type TaskMapperSQLite struct {
	db persistence.Executor
}

func NewTaskMapperSQLite(db persistence.Executor) *TaskMapperSQLite {
	return &TaskMapperSQLite{db: db}
}

func (m *TaskMapperSQLite) Insert(ctx context.Context, entity sharedDomain.Tracked) error {
	task, err := asTask(entity)
	if err != nil {
		return err
	}

	_, err = m.db.ExecContext(ctx,
		`INSERT INTO moderation_tasks (task_id, assigned_admin, created_at, expiration, content_type, content_id, decision)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.EntityID().String(),
		task.AssignedAdmin().String(),
		task.CreatedAt(),
		task.Expiration(),
		string(task.ContentRef().ContentType),
		task.ContentRef().ContentID.String(),
		string(task.Decision()),
	)
	return err
}

func (m *TaskMapperSQLite) Update(ctx context.Context, entity sharedDomain.Tracked) error {
	task, err := asTask(entity)
	if err != nil {
		return err
	}

	_, err = m.db.ExecContext(ctx,
		`UPDATE moderation_tasks SET assigned_admin = ?, decision = ? WHERE task_id = ?`,
		task.AssignedAdmin().String(), string(task.Decision()), task.EntityID().String(),
	)
	return err
}

func (m *TaskMapperSQLite) Delete(ctx context.Context, entity sharedDomain.Tracked) error {
	_, err := m.db.ExecContext(ctx,
		`DELETE FROM moderation_tasks WHERE task_id = ?`, entity.EntityID().String())
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

// TaskRepoSQLite carga tareas con identity map: dentro de un scope, dos
// búsquedas por el mismo id devuelven la misma instancia. Cargar no toca el
// unit of work; solo Add/Delete registran intenciones.
type TaskRepoSQLite struct {
	db          persistence.Executor
	events      sharedDomain.EventAdder
	uow         sharedDomain.UnitOfWork
	identityMap map[uuid.UUID]*moderationDomain.ModerationTask
}

func NewTaskRepoSQLite(
	db persistence.Executor,
	events sharedDomain.EventAdder,
	uow sharedDomain.UnitOfWork,
) *TaskRepoSQLite {
	return &TaskRepoSQLite{
		db:          db,
		events:      events,
		uow:         uow,
		identityMap: make(map[uuid.UUID]*moderationDomain.ModerationTask),
	}
}

func (r *TaskRepoSQLite) Add(task *moderationDomain.ModerationTask) {
	task.MarkNew()
	r.identityMap[task.EntityID()] = task
}

func (r *TaskRepoSQLite) Delete(task *moderationDomain.ModerationTask) {
	task.MarkDeleted()
	delete(r.identityMap, task.EntityID())
}

const taskColumns = `task_id, assigned_admin, created_at, expiration, content_type, content_id, decision`

func (r *TaskRepoSQLite) WithTaskID(ctx context.Context, taskID uuid.UUID) (*moderationDomain.ModerationTask, error) {
	if task, ok := r.identityMap[taskID]; ok {
		return task, nil
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM moderation_tasks WHERE task_id = ?`, taskID.String())

	task, err := r.scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil // miss, no es un error
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	r.identityMap[task.EntityID()] = task
	return task, nil
}

func (r *TaskRepoSQLite) WithAssignedAdmin(ctx context.Context, adminID uuid.UUID) ([]*moderationDomain.ModerationTask, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM moderation_tasks WHERE assigned_admin = ? ORDER BY created_at`,
		adminID.String())
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

		// La instancia viva del identity map gana sobre la fila releída.
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

func (r *TaskRepoSQLite) scanTask(scan scanFunc) (*moderationDomain.ModerationTask, error) {
	var row taskRow
	if err := scan(
		&row.taskID, &row.assignedAdmin, &row.createdAt,
		&row.expiration, &row.contentType, &row.contentID, &row.decision,
	); err != nil {
		return nil, err
	}
	return row.toTask(r.events, r.uow)
}

// ---------------- Gateway de lectura ----------------

// TaskGatewaySQLite sirve los modelos de lectura sin pasar por la entidad.
type TaskGatewaySQLite struct {
	db persistence.Executor
}

func NewTaskGatewaySQLite(db persistence.Executor) *TaskGatewaySQLite {
	return &TaskGatewaySQLite{db: db}
}

func (g *TaskGatewaySQLite) LoadAdminTasks(
	ctx context.Context,
	adminID uuid.UUID,
	pagination application.Pagination,
) ([]application.TaskReadModel, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM moderation_tasks
		 WHERE assigned_admin = ?
		 ORDER BY created_at
		 LIMIT ? OFFSET ?`,
		adminID.String(), pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var models []application.TaskReadModel
	for rows.Next() {
		var row taskRow
		if err := rows.Scan(
			&row.taskID, &row.assignedAdmin, &row.createdAt,
			&row.expiration, &row.contentType, &row.contentID, &row.decision,
		); err != nil {
			return nil, err
		}

		model, err := row.toReadModel()
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}

	return models, rows.Err()
}

// ---------------- Fila intermedia ----------------

type taskRow struct {
	taskID        string
	assignedAdmin string
	createdAt     sql.NullTime
	expiration    sql.NullTime
	contentType   string
	contentID     string
	decision      string
}

func (row taskRow) toTask(
	events sharedDomain.EventAdder,
	uow sharedDomain.UnitOfWork,
) (*moderationDomain.ModerationTask, error) {
	taskID, err := uuid.Parse(row.taskID)
	if err != nil {
		return nil, fmt.Errorf("invalid task_id in row: %w", err)
	}
	adminID, err := uuid.Parse(row.assignedAdmin)
	if err != nil {
		return nil, fmt.Errorf("invalid assigned_admin in row: %w", err)
	}
	contentID, err := uuid.Parse(row.contentID)
	if err != nil {
		return nil, fmt.Errorf("invalid content_id in row: %w", err)
	}

	return moderationDomain.NewModerationTask(
		taskID, events, uow,
		adminID,
		row.createdAt.Time,
		row.expiration.Time,
		moderationDomain.ContentRef{
			ContentType: moderationDomain.ContentType(row.contentType),
			ContentID:   contentID,
		},
		moderationDomain.Decision(row.decision),
	), nil
}

func (row taskRow) toReadModel() (application.TaskReadModel, error) {
	taskID, err := uuid.Parse(row.taskID)
	if err != nil {
		return application.TaskReadModel{}, fmt.Errorf("invalid task_id in row: %w", err)
	}
	adminID, err := uuid.Parse(row.assignedAdmin)
	if err != nil {
		return application.TaskReadModel{}, fmt.Errorf("invalid assigned_admin in row: %w", err)
	}
	contentID, err := uuid.Parse(row.contentID)
	if err != nil {
		return application.TaskReadModel{}, fmt.Errorf("invalid content_id in row: %w", err)
	}

	return application.TaskReadModel{
		TaskID:        taskID,
		AssignedAdmin: adminID,
		CreatedAt:     row.createdAt.Time,
		Expiration:    row.expiration.Time,
		ContentRef: moderationDomain.ContentRef{
			ContentType: moderationDomain.ContentType(row.contentType),
			ContentID:   contentID,
		},
		Decision: moderationDomain.Decision(row.decision),
	}, nil
}

// ---------------- Inicialización ----------------

// InitTasksSQLite crea la tabla de tareas si no existe.
func InitTasksSQLite(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS moderation_tasks (
		task_id TEXT PRIMARY KEY,
		assigned_admin TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		expiration TIMESTAMP NOT NULL,
		content_type TEXT NOT NULL,
		content_id TEXT NOT NULL,
		decision TEXT NOT NULL DEFAULT 'pending'
	)`)
	return err
}

// Verificaciones estáticas
var (
	_ persistence.DataMapper          = (*TaskMapperSQLite)(nil)
	_ moderationDomain.TaskRepository = (*TaskRepoSQLite)(nil)
	_ application.TaskGateway         = (*TaskGatewaySQLite)(nil)
)
