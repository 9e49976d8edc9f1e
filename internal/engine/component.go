package engine

import (
	"fmt"
	"reflect"

	"github.com/jinzhu/copier"
)

// ComponentKind is the closed set of facets a SceneObject can carry.
type ComponentKind uint8

const (
	KindUnknown ComponentKind = iota
	KindMesh
	KindLight
	KindCamera
	KindScript
)

func (k ComponentKind) String() string {
	switch k {
	case KindMesh:
		return "Mesh"
	case KindLight:
		return "Light"
	case KindCamera:
		return "Camera"
	case KindScript:
		return "Script"
	}
	return "Unknown"
}

// Valid reports whether k is one of the defined kinds.
func (k ComponentKind) Valid() bool {
	return k > KindUnknown && k <= KindScript
}

// AllowsMultiple reports whether an object may hold several components of
// this kind. Only scripts do.
func (k ComponentKind) AllowsMultiple() bool {
	return k == KindScript
}

// Component is a typed facet attached to a SceneObject. Implementations
// embed BaseComponent, which holds the owner back-reference.
type Component interface {
	Kind() ComponentKind
	Owner() *SceneObject
	Start()
	Update(deltaTime float32)
	bind(owner *SceneObject)
}

// Cloneable components produce an unattached copy of themselves for
// Scene.DuplicateObject. Components without it are copied field by field.
type Cloneable interface {
	Clone() Component
}

// LookProvider is implemented by components that steer a camera's look
// direction.
type LookProvider interface {
	GetLookDirection() (x, y, z float32)
	GetEyeHeight() float32
}

// BaseComponent provides the owner link and no-op lifecycle hooks.
type BaseComponent struct {
	owner *SceneObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

// Owner returns the object the component is attached to, or nil.
func (b *BaseComponent) Owner() *SceneObject {
	return b.owner
}

func (b *BaseComponent) bind(owner *SceneObject) {
	b.owner = owner
}

func allowsMultiple(c Component) bool {
	if m, ok := c.(interface{ AllowMultiple() bool }); ok {
		return m.AllowMultiple()
	}
	return c.Kind().AllowsMultiple()
}

// AddComponent attaches c to o and returns it.
func AddComponent[T Component](o *SceneObject, c T) (T, error) {
	if o == nil {
		return c, ErrNoOwner
	}
	if err := o.attach(c); err != nil {
		return c, err
	}
	return c, nil
}

func (o *SceneObject) attach(c Component) error {
	if c == nil {
		return fmt.Errorf("attach to object %d: %w", o.id, ErrInvalidKind)
	}
	if rv := reflect.ValueOf(c); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("attach %T to object %d: not a non-nil pointer: %w", c, o.id, ErrInvalidKind)
	}
	kind := c.Kind()
	if !kind.Valid() {
		return fmt.Errorf("attach to object %d: %w", o.id, ErrInvalidKind)
	}
	if c.Owner() != nil {
		return fmt.Errorf("attach %s to object %d: %w", kind, o.id, ErrComponentBound)
	}
	if !allowsMultiple(c) && o.HasKind(kind) {
		return fmt.Errorf("attach %s to object %d: %w", kind, o.id, ErrDuplicateComponent)
	}
	c.bind(o)
	o.components = append(o.components, c)
	if o.started {
		c.Start()
	}
	return nil
}

// RemoveComponent detaches c from o. The component keeps its state and can
// be attached again.
func RemoveComponent(o *SceneObject, c Component) error {
	if o == nil {
		return ErrNoOwner
	}
	for i, have := range o.components {
		if have == c {
			o.components = append(o.components[:i], o.components[i+1:]...)
			c.bind(nil)
			return nil
		}
	}
	return fmt.Errorf("remove component from object %d: %w", o.id, ErrComponentNotFound)
}

// HasComponent reports whether o holds a component of type T.
func HasComponent[T Component](o *SceneObject) bool {
	_, ok := GetComponent[T](o)
	return ok
}

// GetComponent returns the first component of type T on o.
func GetComponent[T Component](o *SceneObject) (T, bool) {
	var zero T
	if o == nil {
		return zero, false
	}
	for _, c := range o.components {
		if typed, ok := c.(T); ok {
			return typed, true
		}
	}
	return zero, false
}

// GetComponents returns every component of type T on o, in attach order.
func GetComponents[T Component](o *SceneObject) []T {
	if o == nil {
		return nil
	}
	var out []T
	for _, c := range o.components {
		if typed, ok := c.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

// FindComponent finds the first component implementing interface T.
func FindComponent[T any](o *SceneObject) T {
	var zero T
	if o == nil {
		return zero
	}
	for _, c := range o.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// HasKind reports whether o holds a component of the given kind.
func (o *SceneObject) HasKind(kind ComponentKind) bool {
	return o.ComponentOfKind(kind) != nil
}

// ComponentOfKind returns the first component of the given kind, or nil.
func (o *SceneObject) ComponentOfKind(kind ComponentKind) Component {
	for _, c := range o.components {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// ComponentsOfKind returns every component of the given kind.
func (o *SceneObject) ComponentsOfKind(kind ComponentKind) []Component {
	var out []Component
	for _, c := range o.components {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

// cloneComponent returns an unattached copy of c.
func cloneComponent(c Component) (Component, error) {
	if cl, ok := c.(Cloneable); ok {
		dup := cl.Clone()
		dup.bind(nil)
		return dup, nil
	}
	rv := reflect.ValueOf(c)
	if rv.Kind() != reflect.Pointer {
		return nil, fmt.Errorf("clone %s: component is not a pointer", c.Kind())
	}
	dup, ok := reflect.New(rv.Elem().Type()).Interface().(Component)
	if !ok {
		return nil, fmt.Errorf("clone %s: unexpected type %T", c.Kind(), c)
	}
	if err := copier.CopyWithOption(dup, c, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("clone %s: %w", c.Kind(), err)
	}
	dup.bind(nil)
	return dup, nil
}
