package engine

import (
	"slices"
	"sync/atomic"
)

// ObjectID identifies a SceneObject. IDs are unique within the process and
// never reused.
type ObjectID uint64

var lastObjectID atomic.Uint64

func nextObjectID() ObjectID {
	return ObjectID(lastObjectID.Add(1))
}

// SceneObject is one spatial entity: a local transform plus a list of
// components. It belongs to at most one Scene at a time.
type SceneObject struct {
	Name    string
	Tags    []string
	Enabled bool

	id         ObjectID
	transform  Transform
	components []Component
	scene      *Scene
	started    bool
}

// NewSceneObject creates an enabled, unregistered object with an identity
// transform.
func NewSceneObject(name string) *SceneObject {
	return &SceneObject{
		Name:       name,
		Enabled:    true,
		id:         nextObjectID(),
		transform:  NewTransform(),
		components: make([]Component, 0),
	}
}

// ID returns the object's process-wide identifier.
func (o *SceneObject) ID() ObjectID { return o.id }

// Transform returns the object's local transform for reading and mutation.
func (o *SceneObject) Transform() *Transform { return &o.transform }

// Scene returns the owning scene, or nil when unregistered.
func (o *SceneObject) Scene() *Scene { return o.scene }

// Components returns the attached components in attach order. The returned
// slice MUST NOT be mutated by the caller.
func (o *SceneObject) Components() []Component {
	return o.components
}

// HasTag reports whether the object carries tag.
func (o *SceneObject) HasTag(tag string) bool {
	return slices.Contains(o.Tags, tag)
}

// Start runs every component's Start once.
func (o *SceneObject) Start() {
	if o.started {
		return
	}
	o.started = true
	for _, c := range o.components {
		c.Start()
	}
}

// Update ticks every component of an enabled object.
func (o *SceneObject) Update(deltaTime float32) {
	if !o.Enabled {
		return
	}
	for _, c := range o.components {
		c.Update(deltaTime)
	}
}

// transformModified and resetTransformModified form the staleness handshake
// between an object and its Scene. Nothing else may reset the flag.
func (o *SceneObject) transformModified() bool {
	return o.transform.Modified()
}

func (o *SceneObject) resetTransformModified() {
	o.transform.resetModified()
}

// clone copies the object under a fresh ID. Components are copied and bound
// to the new object; the scene link is not.
func (o *SceneObject) clone() (*SceneObject, error) {
	dup := NewSceneObject(o.Name)
	dup.Tags = slices.Clone(o.Tags)
	dup.Enabled = o.Enabled
	dup.transform = NewTransformWith(o.transform.position, o.transform.rotation, o.transform.scale)
	for _, c := range o.components {
		cc, err := cloneComponent(c)
		if err != nil {
			return nil, err
		}
		if err := dup.attach(cc); err != nil {
			return nil, err
		}
	}
	return dup, nil
}
