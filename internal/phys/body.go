package phys

import (
	"math"

	"github.com/san-kum/planar/internal/vect"
)

// VelocityFunc integrates a body's velocity over one step.
type VelocityFunc func(b *Body, gravity vect.Vect, damping, dt float64)

// PositionFunc integrates a body's position over one step. Implementations
// must leave the rotation spinor consistent with the angle on return.
type PositionFunc func(b *Body, dt float64)

// componentNode is the intrusive sleep-island record. A sleeping body points
// at its island root; members are chained through next. An infinite idle
// time marks a static body.
type componentNode struct {
	root     *Body
	next     *Body
	idleTime float64
}

// Body is a rigid body: the basic unit of simulation. It holds mass
// properties, kinematic state, and accumulated forces. Mutating any physical
// quantity wakes the body.
type Body struct {
	// UserData is an opaque caller-supplied slot, typically a game-object
	// handle. The core never dereferences it.
	UserData any

	mass    float64
	massInv float64

	moment    float64
	momentInv float64

	pos   vect.Vect // center of gravity, world frame
	vel   vect.Vect
	force vect.Vect // accumulated, cleared only by ResetForces

	angle  float64
	w      float64
	torque float64

	rot vect.Vect // unit spinor, must agree with angle

	velLimit float64
	wLimit   float64

	velocityFn VelocityFunc
	positionFn PositionFunc

	space *Space // nil while rogue

	shapes      []*Shape
	constraints []*Constraint
	arbiters    []*Arbiter

	node componentNode
}

func validProperty(v float64) bool {
	return v > 0 && !math.IsNaN(v)
}

// NewBody returns an awake rogue body with the given mass and moment of
// inertia. Guessing the moment is usually a bad idea; derive it from the
// attached geometry instead.
func NewBody(mass, moment float64) (*Body, error) {
	if !validProperty(mass) || !validProperty(moment) {
		return nil, ErrInvalidProperty
	}
	b := &Body{
		velLimit: math.Inf(1),
		wLimit:   math.Inf(1),
	}
	b.velocityFn = (*Body).UpdateVelocity
	b.positionFn = (*Body).UpdatePosition
	b.mass = mass
	b.massInv = invert(mass)
	b.moment = moment
	b.momentInv = invert(moment)
	b.setAngle(0)
	return b, nil
}

// NewStaticBody returns a body with infinite mass and moment that is never
// integrated. Use it for immovable geometry or as a rogue body driving a
// controlled platform.
func NewStaticBody() *Body {
	b, _ := NewBody(math.Inf(1), math.Inf(1))
	b.node.idleTime = math.Inf(1)
	return b
}

// invert maps +Inf to exactly 0 so that infinite-mass bodies never feed
// Inf or NaN into the integrator.
func invert(v float64) float64 {
	if math.IsInf(v, 1) {
		return 0
	}
	return 1 / v
}

func (b *Body) Mass() float64 { return b.mass }

// SetMass updates the mass and its cached inverse. Zero, negative, and NaN
// values are rejected; +Inf makes the body immune to forces.
func (b *Body) SetMass(mass float64) error {
	if !validProperty(mass) {
		return ErrInvalidProperty
	}
	b.Activate()
	b.mass = mass
	b.massInv = invert(mass)
	return nil
}

func (b *Body) Moment() float64 { return b.moment }

// SetMoment updates the moment of inertia and its cached inverse, under the
// same validity rules as SetMass.
func (b *Body) SetMoment(moment float64) error {
	if !validProperty(moment) {
		return ErrInvalidProperty
	}
	b.Activate()
	b.moment = moment
	b.momentInv = invert(moment)
	return nil
}

func (b *Body) InverseMass() float64   { return b.massInv }
func (b *Body) InverseMoment() float64 { return b.momentInv }

func (b *Body) Position() vect.Vect { return b.pos }

func (b *Body) SetPosition(pos vect.Vect) {
	b.Activate()
	b.pos = pos
}

func (b *Body) Velocity() vect.Vect { return b.vel }

func (b *Body) SetVelocity(v vect.Vect) {
	b.Activate()
	b.vel = v
}

func (b *Body) Force() vect.Vect { return b.force }

func (b *Body) SetForce(f vect.Vect) {
	b.Activate()
	b.force = f
}

func (b *Body) Angle() float64 { return b.angle }

func (b *Body) SetAngle(angle float64) {
	b.Activate()
	b.setAngle(angle)
}

func (b *Body) setAngle(angle float64) {
	b.angle = angle
	b.rot = vect.FromAngle(angle)
}

// Rotation returns the cached unit spinor (cos θ, sin θ) for the current
// angle.
func (b *Body) Rotation() vect.Vect { return b.rot }

func (b *Body) AngularVelocity() float64 { return b.w }

func (b *Body) SetAngularVelocity(w float64) {
	b.Activate()
	b.w = w
}

func (b *Body) Torque() float64 { return b.torque }

func (b *Body) SetTorque(t float64) {
	b.Activate()
	b.torque = t
}

func (b *Body) VelocityLimit() float64 { return b.velLimit }

// SetVelocityLimit caps the speed the default integrator will allow.
// Defaults to +Inf.
func (b *Body) SetVelocityLimit(limit float64) {
	b.Activate()
	b.velLimit = limit
}

func (b *Body) AngularVelocityLimit() float64 { return b.wLimit }

func (b *Body) SetAngularVelocityLimit(limit float64) {
	b.Activate()
	b.wLimit = limit
}

// SetVelocityFunc overrides the velocity integration hook. Pass nil to
// restore the default Newtonian update.
func (b *Body) SetVelocityFunc(fn VelocityFunc) {
	if fn == nil {
		fn = (*Body).UpdateVelocity
	}
	b.velocityFn = fn
}

// SetPositionFunc overrides the position integration hook. Pass nil to
// restore the default semi-implicit Euler update.
func (b *Body) SetPositionFunc(fn PositionFunc) {
	if fn == nil {
		fn = (*Body).UpdatePosition
	}
	b.positionFn = fn
}

// IsStatic reports whether the body has the static category: infinite
// mass/moment, never integrated, never slept.
func (b *Body) IsStatic() bool {
	return math.IsInf(b.node.idleTime, 1)
}

// IsRogue reports whether the body is not owned by any space.
func (b *Body) IsRogue() bool {
	return b.space == nil
}

// IsSleeping reports whether the body is a member of a sleep island.
func (b *Body) IsSleeping() bool {
	return b.node.root != nil
}

// Space returns the owning container, or nil for a rogue body.
func (b *Body) Space() *Space { return b.space }

// IdleTime returns how long the body has been below the idle speed
// threshold, as accounted by the owning space.
func (b *Body) IdleTime() float64 { return b.node.idleTime }

// LocalToWorld converts a point in body-local coordinates to world
// coordinates using the cached spinor, with no trig calls.
func (b *Body) LocalToWorld(v vect.Vect) vect.Vect {
	return v.Rotate(b.rot).Add(b.pos)
}

// WorldToLocal converts a point in world coordinates to body-local
// coordinates.
func (b *Body) WorldToLocal(v vect.Vect) vect.Vect {
	return v.Sub(b.pos).Unrotate(b.rot)
}

// ApplyForce accumulates a force acting at a world-frame offset from the
// center of gravity. Forces persist across steps until ResetForces.
func (b *Body) ApplyForce(f, offset vect.Vect) {
	b.Activate()
	b.force = b.force.Add(f)
	b.torque += offset.Cross(f)
}

// ApplyImpulse changes the velocity directly by an impulse acting at a
// world-frame offset from the center of gravity.
func (b *Body) ApplyImpulse(j, offset vect.Vect) {
	b.Activate()
	b.vel = b.vel.Add(j.Mult(b.massInv))
	b.w += offset.Cross(j) * b.momentInv
}

// ResetForces zeroes the force and torque accumulators. The owning
// container decides when to call this; integration never does. A sleeping
// body is woken; an awake body keeps its idle time, so a per-step reset
// policy does not starve the sleep machinery.
func (b *Body) ResetForces() {
	if b.IsSleeping() {
		b.Activate()
	}
	b.force = vect.Zero
	b.torque = 0
}

// KineticEnergy returns 0.5·m·|v|² + 0.5·I·w². Terms with an infinite
// source quantity contribute zero.
func (b *Body) KineticEnergy() float64 {
	var ke float64
	if b.massInv != 0 {
		ke += 0.5 * b.mass * b.vel.LengthSq()
	}
	if b.momentInv != 0 {
		ke += 0.5 * b.moment * b.w * b.w
	}
	return ke
}

// UpdateVelocity is the default velocity integration: damped gravity and
// force application followed by limit clamping. Static bodies are a no-op.
func (b *Body) UpdateVelocity(gravity vect.Vect, damping, dt float64) {
	if b.IsStatic() {
		return
	}
	b.vel = b.vel.Mult(damping).Add(gravity.Add(b.force.Mult(b.massInv)).Mult(dt)).Clamp(b.velLimit)
	b.w = clamp(b.w*damping+b.torque*b.momentInv*dt, b.wLimit)
}

// UpdatePosition is the default position integration: semi-implicit Euler,
// then spinor recomputation. Static bodies are a no-op.
func (b *Body) UpdatePosition(dt float64) {
	if b.IsStatic() {
		return
	}
	b.pos = b.pos.Add(b.vel.Mult(dt))
	b.setAngle(b.angle + b.w*dt)
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(v, limit))
}

// Shapes returns the shapes attached to this body that are currently added
// to a space. The slice is a snapshot.
func (b *Body) Shapes() []*Shape {
	var out []*Shape
	for _, s := range b.shapes {
		if s.space != nil {
			out = append(out, s)
		}
	}
	return out
}

// Constraints returns the constraints attached to this body that are
// currently added to a space. The slice is a snapshot.
func (b *Body) Constraints() []*Constraint {
	var out []*Constraint
	for _, c := range b.constraints {
		if c.space != nil {
			out = append(out, c)
		}
	}
	return out
}

// EachArbiter calls fn once for each arbiter currently active on the body.
// Iteration is over a snapshot; fn must not add or remove arbiters.
func (b *Body) EachArbiter(fn func(*Arbiter)) {
	snapshot := append([]*Arbiter(nil), b.arbiters...)
	for _, arb := range snapshot {
		fn(arb)
	}
}

// componentRoot returns the island root, or nil for an awake body.
func (b *Body) componentRoot() *Body {
	if b == nil {
		return nil
	}
	return b.node.root
}

// Activate wakes the body and, through shared island membership, every
// other body in its island. On an awake body it resets the idle timer.
// Static bodies are unaffected.
func (b *Body) Activate() {
	if b == nil || b.IsStatic() {
		return
	}
	b.node.idleTime = 0

	if root := b.componentRoot(); root != nil {
		if space := root.space; space != nil {
			space.removeSleepingRoot(root)
		}
		for m := root; m != nil; {
			next := m.node.next
			m.node.idleTime = 0
			m.node.root = nil
			m.node.next = nil
			if m.space != nil {
				m.space.wake(m)
			}
			m = next
		}
	}

	// Reset the idle timers of touching bodies too, so the rest of a stack
	// doesn't get left hanging in the air.
	for _, arb := range b.arbiters {
		if other := arb.other(b); other != nil && !other.IsStatic() {
			other.node.idleTime = 0
		}
	}
}

// ActivateStatic wakes every dynamic body touching this static body. If
// filter is non-nil only contacts through that shape propagate. Non-static
// bodies should call Activate instead.
func (b *Body) ActivateStatic(filter *Shape) {
	if !b.IsStatic() {
		return
	}
	for _, arb := range b.arbiters {
		if filter == nil || filter == arb.shapeA || filter == arb.shapeB {
			arb.other(b).Activate()
		}
	}
}

// Sleep forces the body to sleep immediately in a fresh singleton island.
func (b *Body) Sleep() error {
	return b.SleepWithGroup(nil)
}

// SleepWithGroup forces the body to sleep immediately, joining group's
// island so that waking any member wakes all of them. A nil group creates a
// new island. The group body must itself be sleeping. Make sure the body is
// fully set up first: attaching it or its shapes or constraints to a space,
// or mutating its physical state, wakes it again.
func (b *Body) SleepWithGroup(group *Body) error {
	if b.IsStatic() {
		return ErrStaticBody
	}
	if group != nil && !group.IsSleeping() {
		return ErrInvalidGroupState
	}
	if b.IsSleeping() {
		if group != nil && b.componentRoot() != group.componentRoot() {
			// island membership is fixed while asleep
			return ErrInvalidGroupState
		}
		return nil
	}

	if group != nil {
		root := group.componentRoot()
		b.node.root = root
		b.node.next = root.node.next
		root.node.next = b
	} else {
		b.node.root = b
		if b.space != nil {
			b.space.addSleepingRoot(b)
		}
	}

	if b.space != nil {
		b.space.deactivate(b)
	}
	return nil
}
