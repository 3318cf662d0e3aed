package koudou

import (
	"fmt"
	"log/slog"
)

// Entity represents a unique identifier for an object in the World. It combines
// a 32-bit ID with a 32-bit version so that recycled IDs are not confused with
// the entities that used them before.
type Entity struct {
	// ID is the unique, recyclable identifier for the entity.
	ID uint32
	// Version is a generation counter to protect against stale entity references.
	Version uint32
}

// String formats the entity as id@version.
func (e Entity) String() string {
	return fmt.Sprintf("%d@%d", e.ID, e.Version)
}

// LogValue implements slog.LogValuer.
func (e Entity) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("id", uint64(e.ID)),
		slog.Uint64("version", uint64(e.Version)),
	)
}

// Handle is an Entity bound to the World that owns it. Unlike an Entity, a
// Handle can be invalidated locally: once Invalidate is called it reports
// false from Valid even if the entity itself is still alive.
type Handle struct {
	world  *World
	entity Entity
}

// World returns the owning world, or nil for an invalidated handle.
func (h Handle) World() *World { return h.world }

// Entity returns the referenced entity. An invalidated handle returns the zero
// Entity.
func (h Handle) Entity() Entity { return h.entity }

// Valid reports whether the handle still refers to a live entity.
func (h Handle) Valid() bool {
	return h.world != nil && h.world.IsValid(h.entity)
}

// Invalidate detaches the handle from its world.
func (h *Handle) Invalidate() {
	h.world = nil
	h.entity = Entity{}
}
