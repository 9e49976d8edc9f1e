package engine

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scenegraph/internal/tree"
)

// WorldModelMatrix returns the world matrix of id, recomputing whatever part
// of the hierarchy went stale since the last read.
func (s *Scene) WorldModelMatrix(id ObjectID) (rl.Matrix, error) {
	n, p, err := s.objectNode(id)
	if err != nil {
		return rl.Matrix{}, fmt.Errorf("world matrix: %w", err)
	}
	s.stats.Reads++
	s.recalculate(n)
	return s.matrices.Value(p.matrix)
}

// WorldPosition returns the translation part of id's world matrix.
func (s *Scene) WorldPosition(id ObjectID) (rl.Vector3, error) {
	m, err := s.WorldModelMatrix(id)
	if err != nil {
		return rl.Vector3{}, err
	}
	return rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}, nil
}

// recalculate brings n's world matrix up to date.
//
// The ancestor chain is searched all the way to the root and the highest
// modified ancestor wins, since every world matrix below it depends on it.
// Without a modified ancestor only n's own subtree is refreshed, and only if
// n itself is modified.
func (s *Scene) recalculate(n *tree.Node[*SceneObject]) {
	var uppermost *tree.Node[*SceneObject]
	for _, a := range n.Ancestors() {
		if o := a.Value(); o.transformModified() {
			o.resetTransformModified()
			uppermost = a
		}
	}
	switch {
	case uppermost != nil:
		s.propagate(uppermost)
	case n.Value().transformModified():
		s.propagate(n)
	}
}

// propagate recomputes the world matrix of n and, unconditionally, of every
// descendant. Each visited object's modified flag is consumed.
func (s *Scene) propagate(n *tree.Node[*SceneObject]) {
	parent := rl.MatrixIdentity()
	if p := n.Parent(); p != nil {
		parent = s.worldOf(p.Value())
	}
	s.propagateFrom(n, parent)
}

func (s *Scene) propagateFrom(n *tree.Node[*SceneObject], parentWorld rl.Matrix) {
	o := n.Value()
	o.resetTransformModified()
	// raylib multiplies left to right: local first, then the parent frame
	world := rl.MatrixMultiply(o.transform.ModelMatrix(), parentWorld)
	if m, err := s.matrixNode(o.id); err == nil {
		m.SetValue(world)
	} else {
		s.log.Error("matrix tree out of sync", "scene", s.Name, "id", o.id, "err", err)
	}
	s.stats.Recomputed++
	for _, c := range n.Children() {
		s.propagateFrom(c, world)
	}
}

func (s *Scene) matrixNode(id ObjectID) (*tree.Node[rl.Matrix], error) {
	p, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.matrices.Node(p.matrix)
}

func (s *Scene) worldOf(o *SceneObject) rl.Matrix {
	m, err := s.matrixNode(o.id)
	if err != nil {
		return rl.MatrixIdentity()
	}
	return m.Value()
}
