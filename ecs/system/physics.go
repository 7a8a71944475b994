package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeBoundary
	collisionTypeHazard
)

// PhysicsSystem mirrors PhysicsBody components into a Chipmunk2D space,
// steps it once per frame and reports every begin-contact that involves a
// hazard as a collision event on the world queue.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	contacts []ecs.CollisionEvent
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:    space,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)

	if frozen(w) {
		return
	}

	ps.applyVelocities(w)
	ps.space.Step(1.0)
	ps.syncTransforms(w)

	queue := w.Collisions()
	for _, c := range ps.contacts {
		queue.Push(c)
	}
	ps.contacts = ps.contacts[:0]
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	begin := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := sys.shapes[shapeA]
		b, okB := sys.shapes[shapeB]
		if okA && okB {
			sys.contacts = append(sys.contacts, ecs.CollisionEvent{A: a, B: b})
		}
		return true
	}

	for _, other := range []cp.CollisionType{collisionTypePlayer, collisionTypeBoundary, collisionTypeSolid, collisionTypeHazard} {
		handler := ps.space.NewCollisionHandler(collisionTypeHazard, other)
		handler.UserData = ps
		handler.BeginFunc = begin
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		if _, exists := ps.entities[e]; exists {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		info := ps.createBodyInfo(transform, bodyComp)
		ps.entities[e] = info
		for _, s := range info.shapes {
			ps.shapes[s] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width = 16
		height = 16
	}

	sizeW, sizeH := width, height
	if radius > 0 {
		sizeW = radius * 2
		sizeH = radius * 2
	}

	centerX, centerY := transform.X, transform.Y
	if bodyComp.AlignTopLeft {
		centerX += sizeW / 2
		centerY += sizeH / 2
	}

	info := &bodyInfo{static: bodyComp.Static}
	var shape *cp.Shape

	if bodyComp.Static {
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: centerX, Y: centerY})
		} else {
			bb := cp.BB{L: centerX - sizeW/2, B: centerY - sizeH/2, R: centerX + sizeW/2, T: centerY + sizeH/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		info.body = ps.space.StaticBody
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		// Infinite moment keeps every dynamic body at a fixed rotation.
		body := cp.NewBody(mass, cp.INFINITY)
		body.SetPosition(cp.Vector{X: centerX, Y: centerY})
		body.SetVelocity(bodyComp.VX, bodyComp.VY)
		if bodyComp.Category == component.CategoryHazard {
			// Hazards fall at a constant speed: no gravity, no damping.
			body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {})
		}
		ps.space.AddBody(body)

		if radius > 0 {
			shape = cp.NewCircle(body, radius, cp.Vector{})
		} else {
			shape = cp.NewBox(body, width, height, 0)
		}
		info.body = body
	}

	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(0)
	shape.SetSensor(bodyComp.Sensor)
	shape.SetCollisionType(collisionTypeFor(bodyComp.Category))
	ps.space.AddShape(shape)
	info.shapes = []*cp.Shape{shape}
	return info
}

func collisionTypeFor(c component.BodyCategory) cp.CollisionType {
	switch c {
	case component.CategoryPlayer:
		return collisionTypePlayer
	case component.CategoryBoundary:
		return collisionTypeBoundary
	case component.CategoryHazard:
		return collisionTypeHazard
	default:
		return collisionTypeSolid
	}
}

func (ps *PhysicsSystem) applyVelocities(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody) {
		if body.Static || body.Body == nil {
			return
		}
		body.Body.SetVelocity(body.VX, body.VY)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, transform *component.Transform) {
		if body.Static || body.Body == nil {
			return
		}
		pos := body.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		if body.AlignTopLeft {
			transform.X -= body.Width / 2
			transform.Y -= body.Height / 2
		}
	})
}

// cleanupEntities removes bodies whose entity died or lost its PhysicsBody.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.shapes, shape)
		}
		if !info.static && info.body != nil {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}

// BodyCount is the number of entities mirrored into the space.
func (ps *PhysicsSystem) BodyCount() int {
	return len(ps.entities)
}
