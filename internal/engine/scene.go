package engine

import (
	"errors"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scenegraph/internal/tree"
)

// nodePair links one object to its nodes in the two trees.
type nodePair struct {
	object tree.NodeID
	matrix tree.NodeID
}

// Stats counts transform work. Reads counts world-matrix queries;
// Recomputed counts world matrices written.
type Stats struct {
	Reads      int
	Recomputed int
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger used for structural changes.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scene) {
		s.log = l
	}
}

// Scene owns the object hierarchy and a parallel tree of cached world
// matrices. Both trees change only through Scene methods, which keep them
// isomorphic and keep ids in sync with them.
//
// A Scene is not safe for concurrent use.
type Scene struct {
	Name string

	OnObjectAdded   EventWithArg[*SceneObject]
	OnObjectRemoved EventWithArg[*SceneObject]
	OnObjectMoved   EventWithArg[*SceneObject]

	root     *SceneObject
	objects  *tree.Tree[*SceneObject]
	matrices *tree.Tree[rl.Matrix]
	ids      map[ObjectID]nodePair

	log   *slog.Logger
	stats Stats
}

// NewScene creates a scene holding only its root object.
func NewScene(name string, opts ...Option) *Scene {
	s := &Scene{
		Name: name,
		ids:  make(map[ObjectID]nodePair),
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.root = NewSceneObject(name)
	s.root.scene = s
	s.objects = tree.New(s.root, tree.WithCloner((*SceneObject).clone))
	s.matrices = tree.New(rl.MatrixIdentity())
	s.ids[s.root.id] = nodePair{object: s.objects.RootID(), matrix: s.matrices.RootID()}
	return s
}

// Root returns the scene's root object.
func (s *Scene) Root() *SceneObject { return s.root }

// Len returns the number of registered objects, root included.
func (s *Scene) Len() int { return len(s.ids) }

// Stats returns the transform work counters.
func (s *Scene) Stats() Stats { return s.stats }

func (s *Scene) lookup(id ObjectID) (nodePair, error) {
	p, ok := s.ids[id]
	if !ok {
		return nodePair{}, fmt.Errorf("%w: %d", ErrUnknownObject, id)
	}
	return p, nil
}

func (s *Scene) objectNode(id ObjectID) (*tree.Node[*SceneObject], nodePair, error) {
	p, err := s.lookup(id)
	if err != nil {
		return nil, p, err
	}
	n, err := s.objects.Node(p.object)
	if err != nil {
		return nil, p, err
	}
	return n, p, nil
}

// Object returns the registered object with the given ID.
func (s *Scene) Object(id ObjectID) (*SceneObject, error) {
	n, _, err := s.objectNode(id)
	if err != nil {
		return nil, err
	}
	return n.Value(), nil
}

// Contains reports whether id is registered in the scene.
func (s *Scene) Contains(id ObjectID) bool {
	_, ok := s.ids[id]
	return ok
}

// Parent returns the parent of id, or nil for the root.
func (s *Scene) Parent(id ObjectID) (*SceneObject, error) {
	n, _, err := s.objectNode(id)
	if err != nil {
		return nil, err
	}
	if p := n.Parent(); p != nil {
		return p.Value(), nil
	}
	return nil, nil
}

// Children returns the direct children of id in order.
func (s *Scene) Children(id ObjectID) ([]*SceneObject, error) {
	n, _, err := s.objectNode(id)
	if err != nil {
		return nil, err
	}
	out := make([]*SceneObject, len(n.Children()))
	for i, c := range n.Children() {
		out[i] = c.Value()
	}
	return out, nil
}

// Objects returns every registered object in pre-order, root first.
func (s *Scene) Objects() []*SceneObject {
	out := make([]*SceneObject, 0, len(s.ids))
	s.objects.Walk(func(n *tree.Node[*SceneObject]) bool {
		out = append(out, n.Value())
		return true
	})
	return out
}

// Walk visits objects in pre-order. Returning false skips the children.
func (s *Scene) Walk(fn func(o *SceneObject) bool) {
	s.objects.Walk(func(n *tree.Node[*SceneObject]) bool {
		return fn(n.Value())
	})
}

// FindByName returns the first object with the given name in pre-order.
func (s *Scene) FindByName(name string) *SceneObject {
	var found *SceneObject
	s.Walk(func(o *SceneObject) bool {
		if found == nil && o.Name == name {
			found = o
		}
		return found == nil
	})
	return found
}

// FindByTag returns every object carrying tag, in pre-order.
func (s *Scene) FindByTag(tag string) []*SceneObject {
	var result []*SceneObject
	s.Walk(func(o *SceneObject) bool {
		if o.HasTag(tag) {
			result = append(result, o)
		}
		return true
	})
	return result
}

// NewObject creates an object and registers it under parent.
func (s *Scene) NewObject(name string, parent ObjectID) (*SceneObject, error) {
	if _, err := s.lookup(parent); err != nil {
		return nil, fmt.Errorf("new object: %w", err)
	}
	o := NewSceneObject(name)
	if err := s.RegisterObject(o, parent); err != nil {
		return nil, err
	}
	return o, nil
}

// AddObject registers o directly under the root.
func (s *Scene) AddObject(o *SceneObject) error {
	return s.RegisterObject(o, s.root.id)
}

// RegisterObject adds o as the last child of parent in both trees.
func (s *Scene) RegisterObject(o *SceneObject, parent ObjectID) error {
	if o == nil {
		return fmt.Errorf("register object: %w", ErrUnknownObject)
	}
	pp, err := s.lookup(parent)
	if err != nil {
		return fmt.Errorf("register object %d: %w", o.id, err)
	}
	if o.scene != nil {
		return fmt.Errorf("register object %d: %w", o.id, ErrAlreadyRegistered)
	}
	objID, err := s.objects.AddNode(o, pp.object)
	if err != nil {
		return fmt.Errorf("register object %d: %w", o.id, err)
	}
	matID, err := s.matrices.AddNode(rl.MatrixIdentity(), pp.matrix)
	if err != nil {
		// unreachable while the trees are isomorphic
		_, _ = s.objects.RemoveBranch(objID)
		return fmt.Errorf("register object %d: %w", o.id, err)
	}
	s.ids[o.id] = nodePair{object: objID, matrix: matID}
	o.scene = s
	o.transform.markModified()
	s.log.Debug("object registered", "scene", s.Name, "id", o.id, "name", o.Name, "parent", parent)
	s.OnObjectAdded.Invoke(o)
	return nil
}

// RemoveObject removes id and its whole subtree from the scene.
func (s *Scene) RemoveObject(id ObjectID) error {
	n, p, err := s.objectNode(id)
	if err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	if n.Value() == s.root {
		return fmt.Errorf("remove object %d: %w", id, ErrRootObject)
	}

	var removed []*SceneObject
	if err := s.objects.WalkFrom(p.object, func(n *tree.Node[*SceneObject]) bool {
		removed = append(removed, n.Value())
		return true
	}); err != nil {
		return fmt.Errorf("remove object %d: %w", id, err)
	}

	if _, err := s.objects.RemoveBranch(p.object); err != nil {
		return fmt.Errorf("remove object %d: %w", id, err)
	}
	if _, err := s.matrices.RemoveBranch(p.matrix); err != nil {
		return fmt.Errorf("remove object %d: matrix tree out of sync: %w", id, err)
	}
	for _, o := range removed {
		delete(s.ids, o.id)
		o.scene = nil
	}
	s.log.Debug("object removed", "scene", s.Name, "id", id, "count", len(removed))
	for _, o := range removed {
		s.OnObjectRemoved.Invoke(o)
	}
	return nil
}

// MoveObject reparents id under newParent in both trees, appending it as the
// last child, and refreshes the moved subtree's world matrices.
func (s *Scene) MoveObject(id, newParent ObjectID) error {
	n, p, err := s.objectNode(id)
	if err != nil {
		return fmt.Errorf("move object: %w", err)
	}
	pp, err := s.lookup(newParent)
	if err != nil {
		return fmt.Errorf("move object %d: %w", id, err)
	}
	if n.Value() == s.root {
		return fmt.Errorf("move object %d: %w", id, ErrRootObject)
	}
	if err := s.objects.MoveBranch(p.object, pp.object); err != nil {
		if errors.Is(err, tree.ErrCycle) {
			s.log.Warn("rejected move", "scene", s.Name, "id", id, "parent", newParent)
			return fmt.Errorf("move object %d under %d: %w", id, newParent, ErrCycle)
		}
		return fmt.Errorf("move object %d: %w", id, err)
	}
	if err := s.matrices.MoveBranch(p.matrix, pp.matrix); err != nil {
		return fmt.Errorf("move object %d: matrix tree out of sync: %w", id, err)
	}
	n.Value().transform.markModified()
	s.recalculate(n)
	s.log.Debug("object moved", "scene", s.Name, "id", id, "parent", newParent)
	s.OnObjectMoved.Invoke(n.Value())
	return nil
}

// DuplicateObject deep-copies the subtree rooted at id and registers the copy
// as the last child of parent. Copies get fresh IDs; components are cloned.
func (s *Scene) DuplicateObject(id, parent ObjectID) (*SceneObject, error) {
	n, p, err := s.objectNode(id)
	if err != nil {
		return nil, fmt.Errorf("duplicate object: %w", err)
	}
	if n.Value() == s.root {
		return nil, fmt.Errorf("duplicate object %d: %w", id, ErrRootObject)
	}
	pp, err := s.lookup(parent)
	if err != nil {
		return nil, fmt.Errorf("duplicate object %d: %w", id, err)
	}

	objBranch, err := s.objects.GetBranch(p.object)
	if err != nil {
		return nil, fmt.Errorf("duplicate object %d: %w", id, err)
	}
	matBranch, err := s.matrices.GetBranch(p.matrix)
	if err != nil {
		return nil, fmt.Errorf("duplicate object %d: %w", id, err)
	}

	objIDs, err := s.objects.InsertBranch(objBranch, pp.object)
	if err != nil {
		return nil, fmt.Errorf("duplicate object %d: %w", id, err)
	}
	matIDs, err := s.matrices.InsertBranch(matBranch, pp.matrix)
	if err != nil {
		return nil, fmt.Errorf("duplicate object %d: matrix tree out of sync: %w", id, err)
	}

	var added []*SceneObject
	for i, objID := range objIDs {
		node, err := s.objects.Node(objID)
		if err != nil {
			return nil, err
		}
		o := node.Value()
		s.ids[o.id] = nodePair{object: objID, matrix: matIDs[i]}
		o.scene = s
		added = append(added, o)
	}
	top := added[0]
	top.transform.markModified()
	s.log.Debug("object duplicated", "scene", s.Name, "source", id, "copy", top.id, "count", len(added))
	for _, o := range added {
		s.OnObjectAdded.Invoke(o)
	}
	return top, nil
}

// Start runs Start on every object in pre-order.
func (s *Scene) Start() {
	for _, o := range s.Objects() {
		o.Start()
	}
}

// Update ticks every enabled object's components in pre-order. Objects
// removed by an earlier component during the same tick are skipped.
func (s *Scene) Update(deltaTime float32) {
	for _, o := range s.Objects() {
		if o.scene != s {
			continue
		}
		o.Update(deltaTime)
	}
}

// ComponentsInScene returns every component of type T in the scene, in
// object pre-order.
func ComponentsInScene[T Component](s *Scene) []T {
	var out []T
	s.Walk(func(o *SceneObject) bool {
		out = append(out, GetComponents[T](o)...)
		return true
	})
	return out
}
