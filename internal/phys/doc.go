// Package phys implements the rigid-body core of a 2D physics simulation:
// body state, overridable velocity/position integration, and sleep islands.
//
// The package defines two central types:
//
//   - [Body]: mass properties, kinematic state, force accumulators, and the
//     cached rotation spinor, with integration hooks and sleep/wake
//     transitions
//   - [Space]: the owning container that schedules awake dynamic bodies,
//     ingests contact membership facts, and forms sleep islands
//
// Collision detection, contact solving, and shape geometry are external
// collaborators. [Shape], [Constraint], and [Arbiter] here carry only the
// membership facts the island machinery needs.
//
// # Example
//
//	body, _ := phys.NewBody(10, 100)
//	space := phys.NewSpace()
//	space.Gravity = vect.Vect{Y: -9.81}
//	space.AddBody(body)
//	space.Step(1.0 / 60)
//
// # Thread Safety
//
// Space and Body are NOT thread-safe. All mutation, integration, and
// sleep/wake transitions must happen on the thread driving the step.
package phys
