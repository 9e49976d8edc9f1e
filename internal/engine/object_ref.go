package engine

// ObjectRef is a serializable reference to a SceneObject by ID. Scripts use
// it to point at other objects without holding pointers across removals.
//
// Example:
//
//	type Follower struct {
//	    engine.Script
//	    Target engine.ObjectRef
//	}
//
//	func (f *Follower) Update(dt float32) {
//	    if target := f.Target.Get(f.Owner().Scene()); target != nil {
//	        // ...
//	    }
//	}
type ObjectRef struct {
	ID ObjectID // 0 = none
}

// Get resolves the reference. It returns nil if the reference is empty or
// the object is not registered in scene.
func (r ObjectRef) Get(scene *Scene) *SceneObject {
	if r.ID == 0 || scene == nil {
		return nil
	}
	o, err := scene.Object(r.ID)
	if err != nil {
		return nil
	}
	return o
}

// IsValid reports whether the reference is set. It does not check that
// the object still exists.
func (r ObjectRef) IsValid() bool {
	return r.ID != 0
}

// Set points the reference at o. Pass nil to clear it.
func (r *ObjectRef) Set(o *SceneObject) {
	if o == nil {
		r.ID = 0
	} else {
		r.ID = o.id
	}
}

// Clear empties the reference.
func (r *ObjectRef) Clear() {
	r.ID = 0
}
