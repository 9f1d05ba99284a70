package persistence

import (
	"context"
	"fmt"
	"reflect"

	sharedDomain "github.com/davicafu/moderlab/internal/shared/domain"
	"github.com/google/uuid"
)

// DataMapper traduce una entidad a SQL sobre la transacción abierta.
// Hay un mapper por tipo de entidad, registrado en el MapperRegistry.
type DataMapper interface {
	Insert(ctx context.Context, entity sharedDomain.Tracked) error
	Update(ctx context.Context, entity sharedDomain.Tracked) error
	Delete(ctx context.Context, entity sharedDomain.Tracked) error
}

// MapperRegistry resuelve el DataMapper de una entidad por su tipo concreto.
type MapperRegistry struct {
	mappers map[reflect.Type]DataMapper
}

func NewMapperRegistry() *MapperRegistry {
	return &MapperRegistry{mappers: make(map[reflect.Type]DataMapper)}
}

// Register asocia el tipo concreto de `prototype` con su mapper.
func (r *MapperRegistry) Register(prototype sharedDomain.Tracked, mapper DataMapper) {
	r.mappers[reflect.TypeOf(prototype)] = mapper
}

func (r *MapperRegistry) mapperFor(entity sharedDomain.Tracked) (DataMapper, error) {
	mapper, ok := r.mappers[reflect.TypeOf(entity)]
	if !ok {
		return nil, fmt.Errorf("persistence: no data mapper registered for %T", entity)
	}
	return mapper, nil
}

type entityState int

const (
	stateNew entityState = iota
	stateDirty
	stateDeleted
)

// ChangeTracker es la implementación del unit of work con scope de petición.
// Mantiene tres conjuntos disjuntos en orden de registro y, al volcar, ejecuta
// nuevos → insert, modificados → update, borrados → delete sobre la
// transacción abierta.
type ChangeTracker struct {
	registry *MapperRegistry

	states      map[uuid.UUID]entityState
	newEntities []sharedDomain.Tracked
	dirty       []sharedDomain.Tracked
	deleted     []sharedDomain.Tracked
}

func NewChangeTracker(registry *MapperRegistry) *ChangeTracker {
	return &ChangeTracker{
		registry: registry,
		states:   make(map[uuid.UUID]entityState),
	}
}

// RegisterNew marca la entidad como pendiente de insertar.
// Registrarla dos veces es un no-op.
func (t *ChangeTracker) RegisterNew(entity sharedDomain.Tracked) {
	if _, tracked := t.states[entity.EntityID()]; tracked {
		return
	}
	t.states[entity.EntityID()] = stateNew
	t.newEntities = append(t.newEntities, entity)
}

// RegisterDirty marca la entidad como pendiente de actualizar. Si ya estaba
// registrada como nueva sigue clasificada como nueva: no tiene estado
// persistido previo contra el que diferenciar.
func (t *ChangeTracker) RegisterDirty(entity sharedDomain.Tracked) {
	if _, tracked := t.states[entity.EntityID()]; tracked {
		return
	}
	t.states[entity.EntityID()] = stateDirty
	t.dirty = append(t.dirty, entity)
}

// RegisterDeleted marca la entidad como pendiente de borrar. Una entidad que
// solo existía como nueva se olvida sin más: nunca llegó a persistirse.
func (t *ChangeTracker) RegisterDeleted(entity sharedDomain.Tracked) {
	id := entity.EntityID()
	state, tracked := t.states[id]
	if tracked {
		switch state {
		case stateDeleted:
			return
		case stateNew:
			t.newEntities = remove(t.newEntities, id)
			delete(t.states, id)
			return
		case stateDirty:
			t.dirty = remove(t.dirty, id)
		}
	}
	t.states[id] = stateDeleted
	t.deleted = append(t.deleted, entity)
}

// Flush ejecuta las operaciones pendientes en orden (insert, update, delete)
// dentro de la transacción y limpia el tracker. No confirma: eso es del
// behavior de commit.
func (t *ChangeTracker) Flush(ctx context.Context) error {
	for _, entity := range t.newEntities {
		mapper, err := t.registry.mapperFor(entity)
		if err != nil {
			return err
		}
		if err := mapper.Insert(ctx, entity); err != nil {
			return fmt.Errorf("insert %T %s: %w", entity, entity.EntityID(), err)
		}
	}
	for _, entity := range t.dirty {
		mapper, err := t.registry.mapperFor(entity)
		if err != nil {
			return err
		}
		if err := mapper.Update(ctx, entity); err != nil {
			return fmt.Errorf("update %T %s: %w", entity, entity.EntityID(), err)
		}
	}
	for _, entity := range t.deleted {
		mapper, err := t.registry.mapperFor(entity)
		if err != nil {
			return err
		}
		if err := mapper.Delete(ctx, entity); err != nil {
			return fmt.Errorf("delete %T %s: %w", entity, entity.EntityID(), err)
		}
	}

	t.states = make(map[uuid.UUID]entityState)
	t.newEntities, t.dirty, t.deleted = nil, nil, nil
	return nil
}

func remove(entities []sharedDomain.Tracked, id uuid.UUID) []sharedDomain.Tracked {
	for i, e := range entities {
		if e.EntityID() == id {
			return append(entities[:i], entities[i+1:]...)
		}
	}
	return entities
}

// Verificación estática
var _ sharedDomain.UnitOfWork = (*ChangeTracker)(nil)
