package phys

import (
	"math"

	"github.com/san-kum/planar/internal/vect"
)

// arbiterPersistence is how many steps a contact survives without being
// refreshed by Touch before it is pruned.
const arbiterPersistence = 3

// Space owns dynamic bodies and schedules their integration. It forms sleep
// islands over the contact-and-constraint graph and ingests contact
// membership facts from an external collision system.
type Space struct {
	Gravity vect.Vect
	Damping float64

	// SleepTimeThreshold is how long a whole touching group must stay below
	// the idle speed before it is put to sleep. +Inf (the default) disables
	// automatic sleeping; explicit Body.Sleep still works.
	SleepTimeThreshold float64

	// IdleSpeedThreshold is the speed below which a body accumulates idle
	// time. Zero means derive a threshold from gravity and the step size.
	IdleSpeedThreshold float64

	stamp  uint64
	currDt float64

	staticBody *Body

	bodies   []*Body // dynamic bodies, awake and sleeping
	statics  []*Body
	active   []*Body // the integration set
	sleeping []*Body // island roots

	shapes      []*Shape
	constraints []*Constraint
	arbiters    []*Arbiter
}

// NewSpace returns an empty space with no gravity, no damping loss, and
// sleeping disabled. It owns a built-in static body for ground geometry.
func NewSpace() *Space {
	s := &Space{
		Damping:            1.0,
		SleepTimeThreshold: math.Inf(1),
	}
	s.staticBody = NewStaticBody()
	s.staticBody.space = s
	s.statics = append(s.statics, s.staticBody)
	return s
}

// StaticBody returns the space's built-in static body.
func (s *Space) StaticBody() *Body { return s.staticBody }

// AddBody attaches a body to the space: the body stops being rogue, wakes,
// and joins the active-integration set. Adding an owned body is an error.
func (s *Space) AddBody(b *Body) error {
	if b.space != nil {
		return ErrDetachedEntity
	}
	b.Activate()
	b.space = s
	if b.IsStatic() {
		s.statics = append(s.statics, b)
		return nil
	}
	s.bodies = append(s.bodies, b)
	s.active = append(s.active, b)
	return nil
}

// RemoveBody detaches a body, making it rogue again. Shapes and constraints
// referencing the body must be removed first.
func (s *Space) RemoveBody(b *Body) error {
	if b.space != s || b == s.staticBody {
		return ErrDetachedEntity
	}
	for _, sh := range b.shapes {
		if sh.space != nil {
			return ErrDetachedEntity
		}
	}
	for _, c := range b.constraints {
		if c.space != nil {
			return ErrDetachedEntity
		}
	}
	b.Activate()
	if b.IsStatic() {
		s.statics = removeBody(s.statics, b)
	} else {
		s.bodies = removeBody(s.bodies, b)
		s.active = removeBody(s.active, b)
	}
	b.space = nil
	return nil
}

// AddShape registers a shape with the space. The referenced body is woken
// first so islands stay consistent.
func (s *Space) AddShape(sh *Shape) error {
	if sh.space != nil {
		return ErrDetachedEntity
	}
	sh.body.Activate()
	sh.space = s
	s.shapes = append(s.shapes, sh)
	return nil
}

// RemoveShape unregisters a shape and drops any arbiters through it.
func (s *Space) RemoveShape(sh *Shape) error {
	if sh.space != s {
		return ErrDetachedEntity
	}
	sh.body.Activate()
	for _, arb := range append([]*Arbiter(nil), s.arbiters...) {
		if arb.shapeA == sh || arb.shapeB == sh {
			s.dropArbiter(arb)
		}
	}
	s.shapes = removeShape(s.shapes, sh)
	sh.space = nil
	return nil
}

// AddConstraint registers a constraint, waking both joined bodies.
func (s *Space) AddConstraint(c *Constraint) error {
	if c.space != nil {
		return ErrDetachedEntity
	}
	c.a.Activate()
	c.b.Activate()
	c.space = s
	s.constraints = append(s.constraints, c)
	return nil
}

// RemoveConstraint unregisters a constraint, waking both joined bodies.
func (s *Space) RemoveConstraint(c *Constraint) error {
	if c.space != s {
		return ErrDetachedEntity
	}
	c.a.Activate()
	c.b.Activate()
	s.constraints = removeConstraint(s.constraints, c)
	c.space = nil
	return nil
}

// Touch records or refreshes a contact between two registered shapes. It is
// the entry point for the external collision system; only the membership
// fact is stored. Contacts between shapes of the same body are ignored.
func (s *Space) Touch(sa, sb *Shape) (*Arbiter, error) {
	if sa.space != s || sb.space != s {
		return nil, ErrDetachedEntity
	}
	if sa.body == sb.body {
		return nil, nil
	}
	for _, arb := range sa.body.arbiters {
		if arb.matches(sa, sb) {
			arb.stamp = s.stamp
			return arb, nil
		}
	}
	arb := &Arbiter{shapeA: sa, shapeB: sb, stamp: s.stamp}
	s.arbiters = append(s.arbiters, arb)
	sa.body.arbiters = append(sa.body.arbiters, arb)
	sb.body.arbiters = append(sb.body.arbiters, arb)
	return arb, nil
}

// Step advances the simulation: idle accounting and island formation, then
// velocity integration followed by position integration for every awake
// dynamic body. Forces are not reset; that policy belongs to the caller.
func (s *Space) Step(dt float64) {
	if dt <= 0 {
		return
	}
	s.stamp++
	s.currDt = dt

	s.processSleeping(dt)

	stepping := append([]*Body(nil), s.active...)
	for _, b := range stepping {
		b.velocityFn(b, s.Gravity, s.Damping, dt)
	}
	for _, b := range stepping {
		b.positionFn(b, dt)
	}

	s.pruneArbiters()
}

// CurrentTimeStep returns the dt of the most recent Step.
func (s *Space) CurrentTimeStep() float64 { return s.currDt }

// EachBody calls fn for every dynamic body in the space, sleeping ones
// included. Iteration is over a snapshot.
func (s *Space) EachBody(fn func(*Body)) {
	for _, b := range append([]*Body(nil), s.bodies...) {
		fn(b)
	}
}

// EachActiveBody calls fn for every body in the integration set. Iteration
// is over a snapshot.
func (s *Space) EachActiveBody(fn func(*Body)) {
	for _, b := range append([]*Body(nil), s.active...) {
		fn(b)
	}
}

// Shapes returns a snapshot of the shapes registered with the space.
func (s *Space) Shapes() []*Shape {
	return append([]*Shape(nil), s.shapes...)
}

// ActiveCount returns the number of bodies in the integration set.
func (s *Space) ActiveCount() int { return len(s.active) }

// SleepingCount returns the number of dynamic bodies currently asleep.
func (s *Space) SleepingCount() int { return len(s.bodies) - len(s.active) }

// ArbiterCount returns the number of active contact records.
func (s *Space) ArbiterCount() int { return len(s.arbiters) }

// processSleeping updates idle timers and puts whole touching groups to
// sleep once every member has idled past the threshold. Islands are the
// connected components of awake dynamic bodies over arbiters and
// constraints; static bodies never join a component.
func (s *Space) processSleeping(dt float64) {
	if math.IsInf(s.SleepTimeThreshold, 1) {
		return
	}

	dvsq := s.IdleSpeedThreshold * s.IdleSpeedThreshold
	if dvsq == 0 {
		dvsq = s.Gravity.LengthSq() * dt * dt
	}

	for _, b := range s.active {
		threshold := 0.0
		if dvsq != 0 {
			threshold = 0.5 * b.mass * dvsq
		}
		if b.KineticEnergy() > threshold {
			b.node.idleTime = 0
		} else {
			b.node.idleTime += dt
		}
	}

	visited := make(map[*Body]bool)
	for _, b := range append([]*Body(nil), s.active...) {
		if visited[b] || b.IsSleeping() {
			continue
		}
		comp := s.component(b, visited)
		idle := true
		for _, m := range comp {
			if m.node.idleTime < s.SleepTimeThreshold {
				idle = false
				break
			}
		}
		if idle {
			s.sleepComponent(comp)
		}
	}
}

// component flood-fills the awake dynamic bodies reachable from b through
// arbiters and constraints registered with this space.
func (s *Space) component(b *Body, visited map[*Body]bool) []*Body {
	visited[b] = true
	stack := []*Body{b}
	var comp []*Body
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		comp = append(comp, m)

		visit := func(o *Body) {
			if o == nil || o.IsStatic() || o.IsSleeping() || o.space != s || visited[o] {
				return
			}
			visited[o] = true
			stack = append(stack, o)
		}
		for _, arb := range m.arbiters {
			visit(arb.other(m))
		}
		for _, c := range m.constraints {
			if c.space == s {
				visit(c.Other(m))
			}
		}
	}
	return comp
}

// sleepComponent links the bodies into one island and removes them from the
// integration set.
func (s *Space) sleepComponent(comp []*Body) {
	root := comp[0]
	root.node.root = root
	for _, m := range comp[1:] {
		m.node.root = root
		m.node.next = root.node.next
		root.node.next = m
	}
	for _, m := range comp {
		s.deactivate(m)
	}
	s.sleeping = append(s.sleeping, root)
}

// pruneArbiters drops contacts that have not been refreshed within the
// persistence window. Contacts with a sleeping endpoint are kept so the
// island graph survives until a wake.
func (s *Space) pruneArbiters() {
	for _, arb := range append([]*Arbiter(nil), s.arbiters...) {
		ba, bb := arb.Bodies()
		if ba.IsSleeping() || bb.IsSleeping() {
			continue
		}
		if s.stamp-arb.stamp > arbiterPersistence {
			s.dropArbiter(arb)
		}
	}
}

func (s *Space) dropArbiter(arb *Arbiter) {
	s.arbiters = removeArbiter(s.arbiters, arb)
	ba, bb := arb.Bodies()
	ba.arbiters = removeArbiter(ba.arbiters, arb)
	bb.arbiters = removeArbiter(bb.arbiters, arb)
}

func (s *Space) wake(b *Body) {
	for _, a := range s.active {
		if a == b {
			return
		}
	}
	s.active = append(s.active, b)
}

func (s *Space) deactivate(b *Body) {
	s.active = removeBody(s.active, b)
}

func (s *Space) addSleepingRoot(root *Body) {
	s.sleeping = append(s.sleeping, root)
}

func (s *Space) removeSleepingRoot(root *Body) {
	s.sleeping = removeBody(s.sleeping, root)
}

func removeBody(list []*Body, b *Body) []*Body {
	for i, x := range list {
		if x == b {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func removeShape(list []*Shape, sh *Shape) []*Shape {
	for i, x := range list {
		if x == sh {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func removeConstraint(list []*Constraint, c *Constraint) []*Constraint {
	for i, x := range list {
		if x == c {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func removeArbiter(list []*Arbiter, a *Arbiter) []*Arbiter {
	for i, x := range list {
		if x == a {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
