package koudou

import (
	"cmp"
	"reflect"
	"slices"
)

// componentStore is the type-erased view of a store used for entity-wide
// operations.
type componentStore interface {
	remove(id uint32) bool
	clear()
}

// releaser is implemented by components that own bindings to their entity.
// release is called when the component leaves the entity or is overwritten;
// next is the replacing value, or nil on removal.
type releaser[T any] interface {
	release(next *T)
}

func release[T any](cur, next *T) {
	if r, ok := any(cur).(releaser[T]); ok {
		r.release(next)
	}
}

// store is a sparse set holding components of type T. Components are kept
// densely packed; sparse maps an entity ID to its dense index or -1.
type store[T any] struct {
	sparse []int32
	dense  []T
	owners []Entity
}

func (s *store[T]) index(e Entity) int {
	if int(e.ID) >= len(s.sparse) {
		return -1
	}
	i := s.sparse[e.ID]
	if i < 0 || s.owners[i] != e {
		return -1
	}
	return int(i)
}

func (s *store[T]) insert(e Entity, val T) *T {
	if int(e.ID) >= len(s.sparse) {
		s.sparse = extendSparse(s.sparse, int(e.ID)+1-len(s.sparse))
	}
	s.sparse[e.ID] = int32(len(s.dense))
	s.dense = append(s.dense, val)
	s.owners = append(s.owners, e)
	return &s.dense[len(s.dense)-1]
}

func (s *store[T]) remove(id uint32) bool {
	if int(id) >= len(s.sparse) || s.sparse[id] < 0 {
		return false
	}
	idx := int(s.sparse[id])
	release[T](&s.dense[idx], nil)
	last := len(s.dense) - 1
	if idx < last {
		s.dense[idx] = s.dense[last]
		s.owners[idx] = s.owners[last]
		s.sparse[s.owners[idx].ID] = int32(idx)
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.owners = s.owners[:last]
	s.sparse[id] = -1
	return true
}

func (s *store[T]) clear() {
	for i := range s.dense {
		release[T](&s.dense[i], nil)
	}
	for i := range s.sparse {
		s.sparse[i] = -1
	}
	clear(s.dense)
	s.dense = s.dense[:0]
	s.owners = s.owners[:0]
}

// lookupStore returns the store for T if one has been created.
func lookupStore[T any](w *World) (*store[T], bool) {
	s, ok := w.stores[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return s.(*store[T]), true
}

// storeFor returns the store for T, creating it on first use.
func storeFor[T any](w *World) *store[T] {
	t := reflect.TypeFor[T]()
	if s, ok := w.stores[t]; ok {
		return s.(*store[T])
	}
	s := &store[T]{}
	w.stores[t] = s
	w.order = append(w.order, s)
	return s
}

// AddComponent adds a zero component of type T to an entity and returns a
// pointer to it. If the entity already has the component, the existing one is
// returned. It returns false for an invalid entity.
//
// The pointer stays valid until the next addition or removal of a T component
// in this world.
func AddComponent[T any](w *World, e Entity) (*T, bool) {
	if !w.IsValid(e) {
		return nil, false
	}
	s := storeFor[T](w)
	if i := s.index(e); i >= 0 {
		return &s.dense[i], true
	}
	var zero T
	return s.insert(e, zero), true
}

// SetComponent sets the component of type T on the entity, adding it if not
// present.
func SetComponent[T any](w *World, e Entity, val T) bool {
	if !w.IsValid(e) {
		return false
	}
	s := storeFor[T](w)
	if i := s.index(e); i >= 0 {
		release(&s.dense[i], &val)
		s.dense[i] = val
		return true
	}
	s.insert(e, val)
	return true
}

// GetComponent returns a pointer to the entity's component of type T.
func GetComponent[T any](w *World, e Entity) (*T, bool) {
	if !w.IsValid(e) {
		return nil, false
	}
	s, ok := lookupStore[T](w)
	if !ok {
		return nil, false
	}
	i := s.index(e)
	if i < 0 {
		return nil, false
	}
	return &s.dense[i], true
}

// HasComponent reports whether the entity has a component of type T.
func HasComponent[T any](w *World, e Entity) bool {
	_, ok := GetComponent[T](w, e)
	return ok
}

// RemoveComponent removes the component of type T from the entity. It returns
// false if there was nothing to remove.
func RemoveComponent[T any](w *World, e Entity) bool {
	if !w.IsValid(e) {
		return false
	}
	s, ok := lookupStore[T](w)
	if !ok || s.index(e) < 0 {
		return false
	}
	return s.remove(e.ID)
}

// EntitiesWith returns the entities that have a component of type T, ordered
// by ID.
func EntitiesWith[T any](w *World) []Entity {
	return AppendEntitiesWith[T](w, nil)
}

// AppendEntitiesWith is like EntitiesWith but appends to dst.
func AppendEntitiesWith[T any](w *World, dst []Entity) []Entity {
	s, ok := lookupStore[T](w)
	if !ok || len(s.owners) == 0 {
		return dst
	}
	start := len(dst)
	dst = append(dst, s.owners...)
	slices.SortFunc(dst[start:], func(a, b Entity) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return dst
}

// CountComponents returns the number of entities with a component of type T.
func CountComponents[T any](w *World) int {
	s, ok := lookupStore[T](w)
	if !ok {
		return 0
	}
	return len(s.dense)
}
