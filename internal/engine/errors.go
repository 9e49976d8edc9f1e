package engine

import "errors"

// Domain errors. They describe programming mistakes, not transient
// conditions; no operation mutates anything before returning one.
var (
	ErrUnknownObject      = errors.New("unknown scene object")
	ErrCycle              = errors.New("object cannot be parented under itself or its descendant")
	ErrRootObject         = errors.New("operation not allowed on the scene root")
	ErrAlreadyRegistered  = errors.New("object already belongs to a scene")
	ErrInvalidKind        = errors.New("component kind is unset")
	ErrNoOwner            = errors.New("component has no owner")
	ErrComponentBound     = errors.New("component is already attached to an object")
	ErrDuplicateComponent = errors.New("object already holds a component of this kind")
	ErrComponentNotFound  = errors.New("component not attached to object")
)
