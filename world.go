// Package koudou attaches behaviors to the entities of a small sparse-set
// Entity Component System.
//
// A behavior is any type that embeds Base. It receives a per-frame Update
// with the elapsed time along with four pointer hooks (move, drag, down, up).
// Behaviors are stored per entity in a BehaviorComponent, in attach order,
// and are dispatched by a System.
//
//	type Seeker struct {
//		koudou.Base
//		Target koudou.Entity
//	}
//
//	func (s *Seeker) Update(dt time.Duration) { ... }
//
//	seeker := koudou.Attach(w, e, &Seeker{Target: t})
//	koudou.RemoveOfType[*Seeker](w, e)
package koudou

import (
	"log/slog"
	"reflect"
)

const defaultInitialCapacity = 1024

// entityMeta holds the liveness state of an entity ID.
type entityMeta struct {
	version uint32 // current version, 0 if the entity is dead
}

// entityRegistry tracks live entity IDs and recycles dead ones.
type entityRegistry struct {
	freeIDs       []uint32     // stack of recycled entity IDs
	metas         []entityMeta // indexed by entity ID
	capacity      int          // current maximum number of entities
	nextEntityVer uint32       // version for the next created entity
	alive         int
}

// World owns entities, their components and the world-wide resources and
// event bus. A World is not safe for concurrent use.
type World struct {
	entities  entityRegistry
	stores    map[reflect.Type]componentStore
	order     []componentStore // registration order, used on entity removal
	resources *Resources
	events    *EventBus
	logger    *slog.Logger
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for registry diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithEventBus makes the world publish on an existing bus instead of creating
// its own.
func WithEventBus(bus *EventBus) Option {
	return func(w *World) {
		if bus != nil {
			w.events = bus
		}
	}
}

// NewWorld creates a World with room for initialCapacity entities before the
// entity table has to grow. A non-positive capacity selects a default.
func NewWorld(initialCapacity int, opts ...Option) *World {
	if initialCapacity <= 0 {
		initialCapacity = defaultInitialCapacity
	}
	w := &World{
		entities: entityRegistry{
			capacity:      initialCapacity,
			freeIDs:       make([]uint32, initialCapacity),
			metas:         make([]entityMeta, initialCapacity),
			nextEntityVer: 1,
		},
		stores:    make(map[reflect.Type]componentStore, 16),
		resources: &Resources{},
		events:    &EventBus{},
		logger:    slog.Default(),
	}
	// IDs are popped from the end, so lower IDs are handed out first.
	for i := range w.entities.freeIDs {
		w.entities.freeIDs[i] = uint32(initialCapacity - 1 - i)
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Resources returns the world's resource store.
func (w *World) Resources() *Resources { return w.resources }

// Events returns the bus the world publishes behavior lifecycle events on.
func (w *World) Events() *EventBus { return w.events }

// Logger returns the world's logger.
func (w *World) Logger() *slog.Logger { return w.logger }

// Len returns the number of live entities.
func (w *World) Len() int { return w.entities.alive }

// IsValid checks if the entity is currently alive in the world. An entity is
// valid if its ID is within bounds and its version matches the current
// version stored for that ID.
func (w *World) IsValid(e Entity) bool {
	if int(e.ID) >= len(w.entities.metas) {
		return false
	}
	v := w.entities.metas[e.ID].version
	return v != 0 && v == e.Version
}

// Handle binds e to this world.
func (w *World) Handle(e Entity) Handle {
	return Handle{world: w, entity: e}
}

// expand increases capacity, at least doubling it.
func (w *World) expand(additional int) {
	oldCap := w.entities.capacity
	newCap := max(oldCap*2, oldCap+additional, 1)
	delta := newCap - oldCap
	w.entities.metas = append(w.entities.metas, make([]entityMeta, delta)...)
	newFree := make([]uint32, delta)
	for i := range delta {
		newFree[i] = uint32(newCap - 1 - i)
	}
	// Keep recycled IDs on top of the stack.
	w.entities.freeIDs = append(newFree, w.entities.freeIDs...)
	w.entities.capacity = newCap
}

// CreateEntity creates a new entity with no components.
func (w *World) CreateEntity() Entity {
	if len(w.entities.freeIDs) == 0 {
		w.expand(1)
	}
	last := len(w.entities.freeIDs) - 1
	id := w.entities.freeIDs[last]
	w.entities.freeIDs = w.entities.freeIDs[:last]

	ver := w.entities.nextEntityVer
	w.entities.nextEntityVer++
	if w.entities.nextEntityVer == 0 {
		w.entities.nextEntityVer = 1
	}
	w.entities.metas[id].version = ver
	w.entities.alive++
	return Entity{ID: id, Version: ver}
}

// CreateEntities creates a batch of entities with no components.
func (w *World) CreateEntities(count int) []Entity {
	if count <= 0 {
		return nil
	}
	if len(w.entities.freeIDs) < count {
		w.expand(count - len(w.entities.freeIDs))
	}
	ents := make([]Entity, count)
	for i := range ents {
		ents[i] = w.CreateEntity()
	}
	return ents
}

// RemoveEntity drops every component of e and recycles its ID. Any Entity or
// Handle still referring to e becomes invalid. Removing an invalid entity is a
// no-op.
func (w *World) RemoveEntity(e Entity) {
	if !w.IsValid(e) {
		return
	}
	for _, s := range w.order {
		s.remove(e.ID)
	}
	w.entities.metas[e.ID].version = 0
	w.entities.freeIDs = append(w.entities.freeIDs, e.ID)
	w.entities.alive--
}

// RemoveEntities removes a batch of entities.
func (w *World) RemoveEntities(ents []Entity) {
	for _, e := range ents {
		w.RemoveEntity(e)
	}
}

// ClearEntities removes all entities, keeping the allocated storage.
func (w *World) ClearEntities() {
	for _, s := range w.order {
		s.clear()
	}
	w.entities.freeIDs = w.entities.freeIDs[:0]
	for i := range w.entities.metas {
		w.entities.metas[i].version = 0
		w.entities.freeIDs = append(w.entities.freeIDs, uint32(len(w.entities.metas)-1-i))
	}
	w.entities.alive = 0
}
