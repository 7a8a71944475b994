package ecs

import "github.com/milk9111/rockfall/ecs/component"

// World owns entities, their component stores and the per-frame collision
// event queue.
type World struct {
	entities   entityStore
	stores     map[component.ComponentID]*SparseSet
	collisions EventQueue[CollisionEvent]
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity drops every component of e and retires the handle. It
// returns false when e was already dead, so repeated destroys are harmless.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// Len is the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// Collisions returns the world collision queue.
func (w *World) Collisions() *EventQueue[CollisionEvent] {
	if w == nil {
		return nil
	}
	return &w.collisions
}

func (w *World) store(id component.ComponentID) *SparseSet {
	return w.stores[id]
}

func (w *World) ensureStore(id component.ComponentID) *SparseSet {
	s := w.stores[id]
	if s == nil {
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}
