// Package tree provides a generic N-ary tree whose nodes live in an index
// keyed by integer IDs. Structural links are plain pointers owned by the
// tree; callers address nodes by NodeID only.
package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNode is returned when an operation names an ID that is not
	// a live node of the tree.
	ErrUnknownNode = errors.New("unknown node")

	// ErrCycle is returned when a node would become its own ancestor.
	ErrCycle = errors.New("node cannot be moved under itself or its descendant")

	// ErrRootNode is returned for operations that would detach the root.
	ErrRootNode = errors.New("operation not allowed on the root node")
)

// NodeID identifies a node within one tree. IDs are never reused.
type NodeID uint64

// Nil is the zero NodeID. No live node ever has it.
const Nil NodeID = 0

// Node is a single tree element.
type Node[T any] struct {
	id       NodeID
	value    T
	parent   *Node[T]
	children []*Node[T]
	// ancestors nearest first, always matching the live parent links
	chain []*Node[T]
}

// ID returns the node's identifier.
func (n *Node[T]) ID() NodeID { return n.id }

// Value returns the stored value.
func (n *Node[T]) Value() T { return n.value }

// SetValue replaces the stored value.
func (n *Node[T]) SetValue(v T) { n.value = v }

// Parent returns the parent node, or nil for the root.
func (n *Node[T]) Parent() *Node[T] { return n.parent }

// Children returns the ordered child list. The returned slice MUST NOT be
// mutated by the caller.
func (n *Node[T]) Children() []*Node[T] { return n.children }

// Ancestors returns the cached parent chain, nearest first. The returned
// slice MUST NOT be mutated by the caller.
func (n *Node[T]) Ancestors() []*Node[T] { return n.chain }

// Depth returns the number of ancestors.
func (n *Node[T]) Depth() int { return len(n.chain) }

// Cloner copies a value for branch copies. A failed copy aborts the
// branch copy.
type Cloner[T any] func(T) (T, error)

// Option configures a Tree.
type Option[T any] func(*Tree[T])

// WithCloner sets the function used to copy values in GetBranch and
// PopBranch. The default performs a deep copy of exported fields.
func WithCloner[T any](c Cloner[T]) Option[T] {
	return func(t *Tree[T]) {
		t.clone = c
	}
}

// Tree is a rooted tree with an ID index covering every live node.
// It is not safe for concurrent use.
type Tree[T any] struct {
	root   *Node[T]
	index  map[NodeID]*Node[T]
	lastID NodeID
	clone  Cloner[T]
}

// New creates a tree whose root holds rootValue.
func New[T any](rootValue T, opts ...Option[T]) *Tree[T] {
	t := &Tree[T]{
		index: make(map[NodeID]*Node[T]),
		clone: deepCopy[T],
	}
	for _, opt := range opts {
		opt(t)
	}
	t.root = t.newNode(rootValue)
	return t
}

func (t *Tree[T]) newNode(v T) *Node[T] {
	t.lastID++
	n := &Node[T]{id: t.lastID, value: v}
	t.index[n.id] = n
	return n
}

// Root returns the root node.
func (t *Tree[T]) Root() *Node[T] { return t.root }

// RootID returns the root node's ID.
func (t *Tree[T]) RootID() NodeID { return t.root.id }

// Len returns the number of live nodes, root included.
func (t *Tree[T]) Len() int { return len(t.index) }

// Contains reports whether id names a live node.
func (t *Tree[T]) Contains(id NodeID) bool {
	_, ok := t.index[id]
	return ok
}

// Node looks up a live node by ID.
func (t *Tree[T]) Node(id NodeID) (*Node[T], error) {
	n, ok := t.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return n, nil
}

// Value returns the value stored at id.
func (t *Tree[T]) Value(id NodeID) (T, error) {
	n, err := t.Node(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return n.value, nil
}

// SetValue replaces the value stored at id.
func (t *Tree[T]) SetValue(id NodeID, v T) error {
	n, err := t.Node(id)
	if err != nil {
		return err
	}
	n.value = v
	return nil
}

// Children returns the IDs of id's children in order.
func (t *Tree[T]) Children(id NodeID) ([]NodeID, error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, err
	}
	ids := make([]NodeID, len(n.children))
	for i, c := range n.children {
		ids[i] = c.id
	}
	return ids, nil
}

// Parent returns the ID of id's parent, or Nil for the root.
func (t *Tree[T]) Parent(id NodeID) (NodeID, error) {
	n, err := t.Node(id)
	if err != nil {
		return Nil, err
	}
	if n.parent == nil {
		return Nil, nil
	}
	return n.parent.id, nil
}

// IsAncestor reports whether ancestor lies on the parent chain of id.
// A node is not its own ancestor.
func (t *Tree[T]) IsAncestor(ancestor, id NodeID) (bool, error) {
	a, err := t.Node(ancestor)
	if err != nil {
		return false, err
	}
	n, err := t.Node(id)
	if err != nil {
		return false, err
	}
	return isAncestor(a, n), nil
}

// Ancestors returns the IDs on id's parent chain, nearest first.
func (t *Tree[T]) Ancestors(id NodeID) ([]NodeID, error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, err
	}
	ids := make([]NodeID, len(n.chain))
	for i, a := range n.chain {
		ids[i] = a.id
	}
	return ids, nil
}

// Depth returns the number of ancestors of id. The root has depth 0.
func (t *Tree[T]) Depth(id NodeID) (int, error) {
	n, err := t.Node(id)
	if err != nil {
		return 0, err
	}
	return len(n.chain), nil
}

func isAncestor[T any](candidate, n *Node[T]) bool {
	for _, p := range n.chain {
		if p == candidate {
			return true
		}
	}
	return false
}

// AddNode appends a new node holding value as the last child of parent.
func (t *Tree[T]) AddNode(value T, parent NodeID) (NodeID, error) {
	p, err := t.Node(parent)
	if err != nil {
		return Nil, fmt.Errorf("add node: %w", err)
	}
	n := t.newNode(value)
	attach(p, n)
	return n.id, nil
}

// RemoveBranch detaches id from its parent and destroys its whole subtree.
// It returns the removed IDs in pre-order.
func (t *Tree[T]) RemoveBranch(id NodeID) ([]NodeID, error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, fmt.Errorf("remove branch: %w", err)
	}
	if n == t.root {
		return nil, fmt.Errorf("remove branch: %w", ErrRootNode)
	}
	detach(n)
	var removed []NodeID
	t.destroy(n, &removed)
	return removed, nil
}

func (t *Tree[T]) destroy(n *Node[T], removed *[]NodeID) {
	*removed = append(*removed, n.id)
	delete(t.index, n.id)
	for _, c := range n.children {
		t.destroy(c, removed)
	}
	n.children = nil
	n.parent = nil
	n.chain = nil
}

// MoveBranch reparents id under newParent, appending it as the last child.
// Moving a node under itself or one of its descendants fails with ErrCycle
// and leaves the tree unchanged.
func (t *Tree[T]) MoveBranch(id, newParent NodeID) error {
	n, err := t.Node(id)
	if err != nil {
		return fmt.Errorf("move branch: %w", err)
	}
	p, err := t.Node(newParent)
	if err != nil {
		return fmt.Errorf("move branch: %w", err)
	}
	if n == t.root {
		return fmt.Errorf("move branch: %w", ErrRootNode)
	}
	if n == p || isAncestor(n, p) {
		return fmt.Errorf("move branch %d under %d: %w", id, newParent, ErrCycle)
	}
	detach(n)
	attach(p, n)
	return nil
}

// SetParent is an alias for MoveBranch.
func (t *Tree[T]) SetParent(id, parent NodeID) error {
	return t.MoveBranch(id, parent)
}

// attach links n as the last child of p and regenerates the parent chains
// of n's whole subtree.
func attach[T any](p, n *Node[T]) {
	n.parent = p
	p.children = append(p.children, n)
	rebuildChains(n)
}

// detach unlinks n from its parent, keeping sibling order.
func detach[T any](n *Node[T]) {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			copy(p.children[i:], p.children[i+1:])
			p.children[len(p.children)-1] = nil
			p.children = p.children[:len(p.children)-1]
			break
		}
	}
	n.parent = nil
	rebuildChains(n)
}

func rebuildChains[T any](n *Node[T]) {
	if n.parent == nil {
		n.chain = nil
	} else {
		chain := make([]*Node[T], 0, len(n.parent.chain)+1)
		chain = append(chain, n.parent)
		n.chain = append(chain, n.parent.chain...)
	}
	for _, c := range n.children {
		rebuildChains(c)
	}
}
