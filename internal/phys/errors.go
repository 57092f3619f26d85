package phys

import "errors"

// Domain errors for body and space operations. All failures are synchronous
// and leave prior state unchanged.
var (
	// ErrInvalidProperty indicates a mass or moment that is zero, negative,
	// or NaN. Only strictly positive finite values or +Inf are accepted.
	ErrInvalidProperty = errors.New("phys: mass and moment must be positive or infinite")

	// ErrInvalidGroupState indicates a sleep group body that is not itself
	// sleeping, or an attempt to move a sleeping body between islands.
	ErrInvalidGroupState = errors.New("phys: sleep group body must be sleeping")

	// ErrStaticBody indicates a sleep request on a static body. Static
	// bodies never sleep; they only propagate activation to neighbors.
	ErrStaticBody = errors.New("phys: static bodies cannot sleep")

	// ErrDetachedEntity indicates an operation through a space the entity is
	// not attached to, a duplicate attach, or removing a body whose shapes
	// or constraints are still registered.
	ErrDetachedEntity = errors.New("phys: entity is not attached where expected")
)
