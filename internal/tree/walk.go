package tree

import "fmt"

// Walk visits every node in pre-order, starting at the root. Returning
// false from fn skips the node's children.
func (t *Tree[T]) Walk(fn func(n *Node[T]) bool) {
	walk(t.root, fn)
}

// WalkFrom is like Walk but starts at id.
func (t *Tree[T]) WalkFrom(id NodeID, fn func(n *Node[T]) bool) error {
	n, err := t.Node(id)
	if err != nil {
		return fmt.Errorf("walk: %w", err)
	}
	walk(n, fn)
	return nil
}

func walk[T any](n *Node[T], fn func(n *Node[T]) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		walk(c, fn)
	}
}

// Branch returns the IDs of id's subtree in pre-order, id first.
func (t *Tree[T]) Branch(id NodeID) ([]NodeID, error) {
	var ids []NodeID
	err := t.WalkFrom(id, func(n *Node[T]) bool {
		ids = append(ids, n.id)
		return true
	})
	return ids, err
}
