package system

import (
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
)

// HitReceiver is the survival session side of a player hit. TakeHit applies
// the session's own rules and reports whether a life was taken.
type HitReceiver interface {
	TakeHit() bool
}

// Outcome is what the resolver did with one collision event.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomePlayerHit
	OutcomeAbsorbed
)

type collisionRule func(r *CollisionResolver, w *ecs.World, hazard ecs.Entity) Outcome

// collisionRules is keyed by the category of the body the hazard touched.
// Anything missing from the table is ignored.
var collisionRules = map[component.BodyCategory]collisionRule{
	component.CategoryPlayer:   (*CollisionResolver).resolvePlayerHit,
	component.CategoryBoundary: (*CollisionResolver).resolveBoundary,
}

// CollisionResolver drains the physics collision queue and applies outcome
// rules to hazard pairs.
type CollisionResolver struct {
	receiver HitReceiver
	outcomes []Outcome
}

func NewCollisionResolver(receiver HitReceiver) *CollisionResolver {
	return &CollisionResolver{receiver: receiver}
}

func (r *CollisionResolver) Update(w *ecs.World) {
	if w == nil {
		return
	}
	r.outcomes = r.outcomes[:0]
	for _, evt := range w.Collisions().Drain() {
		r.outcomes = append(r.outcomes, r.Resolve(w, evt))
	}
}

// Outcomes are the results of the last Update, in event order.
func (r *CollisionResolver) Outcomes() []Outcome {
	return r.outcomes
}

// Resolve classifies one pair. Pairs without a live hazard are no-ops, which
// keeps repeated contacts against an already destroyed hazard harmless.
func (r *CollisionResolver) Resolve(w *ecs.World, evt ecs.CollisionEvent) Outcome {
	hazard, other, ok := splitHazardPair(w, evt)
	if !ok {
		return OutcomeIgnored
	}

	if rule, ok := collisionRules[category(w, other)]; ok {
		return rule(r, w, hazard)
	}
	return OutcomeIgnored
}

// resolvePlayerHit destroys the hazard first so cleanup still happens on the
// blow that loses the game.
func (r *CollisionResolver) resolvePlayerHit(w *ecs.World, hazard ecs.Entity) Outcome {
	w.DestroyEntity(hazard)
	if r.receiver != nil {
		r.receiver.TakeHit()
	}
	return OutcomePlayerHit
}

func (r *CollisionResolver) resolveBoundary(w *ecs.World, hazard ecs.Entity) Outcome {
	w.DestroyEntity(hazard)
	return OutcomeAbsorbed
}

// splitHazardPair orders a pair as (hazard, other). When both sides are
// hazards the first one is used and the other side classifies as a hazard,
// which no rule handles.
func splitHazardPair(w *ecs.World, evt ecs.CollisionEvent) (ecs.Entity, ecs.Entity, bool) {
	switch {
	case isLiveHazard(w, evt.A):
		return evt.A, evt.B, true
	case isLiveHazard(w, evt.B):
		return evt.B, evt.A, true
	default:
		return 0, 0, false
	}
}

func isLiveHazard(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.HazardComponent.Kind())
}

// category checks the player tag before the body category, so a player is
// always classified as a hit even if its body says otherwise.
func category(w *ecs.World, e ecs.Entity) component.BodyCategory {
	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		return component.CategoryPlayer
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		return body.Category
	}
	return component.CategoryOther
}
