package tree

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// GetBranch returns a detached deep copy of the subtree rooted at id.
// The copy has its own ID space and shares no nodes with t.
func (t *Tree[T]) GetBranch(id NodeID) (*Tree[T], error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, fmt.Errorf("get branch: %w", err)
	}
	branch, err := t.copyBranch(n)
	if err != nil {
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return branch, nil
}

// PopBranch removes the subtree rooted at id from t and returns it as a
// detached tree.
func (t *Tree[T]) PopBranch(id NodeID) (*Tree[T], error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, fmt.Errorf("pop branch: %w", err)
	}
	if n == t.root {
		return nil, fmt.Errorf("pop branch: %w", ErrRootNode)
	}
	branch, err := t.copyBranch(n)
	if err != nil {
		return nil, fmt.Errorf("pop branch: %w", err)
	}
	if _, err := t.RemoveBranch(id); err != nil {
		return nil, err
	}
	return branch, nil
}

func (t *Tree[T]) copyBranch(n *Node[T]) (*Tree[T], error) {
	out := &Tree[T]{
		index: make(map[NodeID]*Node[T]),
		clone: t.clone,
	}
	v, err := t.clone(n.value)
	if err != nil {
		return nil, fmt.Errorf("copy node %d: %w", n.id, err)
	}
	out.root = out.newNode(v)
	for _, c := range n.children {
		if err := out.copyInto(out.root, c, t.clone); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (t *Tree[T]) copyInto(parent, src *Node[T], clone Cloner[T]) error {
	v, err := clone(src.value)
	if err != nil {
		return fmt.Errorf("copy node %d: %w", src.id, err)
	}
	n := t.newNode(v)
	attach(parent, n)
	for _, c := range src.children {
		if err := t.copyInto(n, c, clone); err != nil {
			return err
		}
	}
	return nil
}

// InsertBranch grafts every node of branch under parent, keeping the
// branch's shape and order. Values are moved as-is; the branch should not
// be used afterwards. It returns the new IDs in branch pre-order.
func (t *Tree[T]) InsertBranch(branch *Tree[T], parent NodeID) ([]NodeID, error) {
	p, err := t.Node(parent)
	if err != nil {
		return nil, fmt.Errorf("insert branch: %w", err)
	}
	if branch == nil || branch == t {
		return nil, fmt.Errorf("insert branch: %w", ErrCycle)
	}
	ids := make([]NodeID, 0, branch.Len())
	t.graft(p, branch.root, &ids)
	return ids, nil
}

func (t *Tree[T]) graft(parent, src *Node[T], ids *[]NodeID) {
	n := t.newNode(src.value)
	attach(parent, n)
	*ids = append(*ids, n.id)
	for _, c := range src.children {
		t.graft(n, c, ids)
	}
}

func deepCopy[T any](v T) (T, error) {
	var out T
	if err := copier.CopyWithOption(&out, &v, copier.Option{DeepCopy: true}); err != nil {
		return out, err
	}
	return out, nil
}
