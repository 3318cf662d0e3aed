package koudou

import "reflect"

// Resources is a type-keyed store of world-wide singletons such as settings,
// asset tables or services. Each type can be present at most once.
type Resources struct {
	items map[reflect.Type]any
}

// AddResource stores res under its type. It panics if a resource of the same
// type is already present.
func AddResource[T any](r *Resources, res *T) {
	if res == nil {
		panic("koudou: cannot add nil resource")
	}
	t := reflect.TypeFor[*T]()
	if r.items == nil {
		r.items = make(map[reflect.Type]any)
	}
	if _, ok := r.items[t]; ok {
		panic("koudou: resource of the same type already exists")
	}
	r.items[t] = res
}

// GetResource retrieves the resource of type T.
func GetResource[T any](r *Resources) (*T, bool) {
	res, ok := r.items[reflect.TypeFor[*T]()]
	if !ok {
		return nil, false
	}
	return res.(*T), true
}

// HasResource reports whether a resource of type T is present.
func HasResource[T any](r *Resources) bool {
	_, ok := r.items[reflect.TypeFor[*T]()]
	return ok
}

// RemoveResource removes the resource of type T if present.
func RemoveResource[T any](r *Resources) {
	delete(r.items, reflect.TypeFor[*T]())
}

// Len returns the number of stored resources.
func (r *Resources) Len() int { return len(r.items) }

// Clear removes all resources.
func (r *Resources) Clear() { clear(r.items) }
