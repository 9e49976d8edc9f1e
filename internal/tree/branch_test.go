package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string
	Items []int
}

func payloadTree(t *testing.T) (*Tree[payload], NodeID, NodeID) {
	t.Helper()
	tr := New(payload{Name: "root"})
	a, err := tr.AddNode(payload{Name: "a", Items: []int{1, 2}}, tr.RootID())
	require.NoError(t, err)
	a1, err := tr.AddNode(payload{Name: "a1", Items: []int{3}}, a)
	require.NoError(t, err)
	_, err = tr.AddNode(payload{Name: "a2"}, a)
	require.NoError(t, err)
	return tr, a, a1
}

func names(tr *Tree[payload]) []string {
	var out []string
	tr.Walk(func(n *Node[payload]) bool {
		out = append(out, n.Value().Name)
		return true
	})
	return out
}

func TestGetBranchDeepCopies(t *testing.T) {
	tr, a, _ := payloadTree(t)
	branch, err := tr.GetBranch(a)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "a1", "a2"}, names(branch))
	assert.Equal(t, 3, branch.Len())
	assert.Equal(t, 4, tr.Len(), "source tree must be untouched")
	checkInvariants(t, branch)

	// mutating the copy must not leak into the source
	branch.Root().value.Items[0] = 100
	src, err := tr.Value(a)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, src.Items)

	srcNode, err := tr.Node(a)
	require.NoError(t, err)
	assert.NotSame(t, srcNode.Children()[0], branch.Root().Children()[0])
}

func TestGetBranchCustomCloner(t *testing.T) {
	calls := 0
	tr := New(1, WithCloner(func(v int) (int, error) {
		calls++
		return v * 10, nil
	}))
	_, err := tr.AddNode(2, tr.RootID())
	require.NoError(t, err)

	branch, err := tr.GetBranch(tr.RootID())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 10, branch.Root().Value())
	assert.Equal(t, 20, branch.Root().Children()[0].Value())
}

func TestBranchCopyFailure(t *testing.T) {
	errCopy := errors.New("copy failed")
	tr := New(1, WithCloner(func(v int) (int, error) {
		if v == 3 {
			return 0, errCopy
		}
		return v, nil
	}))
	a, err := tr.AddNode(2, tr.RootID())
	require.NoError(t, err)
	_, err = tr.AddNode(3, a)
	require.NoError(t, err)

	branch, err := tr.GetBranch(a)
	assert.ErrorIs(t, err, errCopy)
	assert.Nil(t, branch)

	branch, err = tr.PopBranch(a)
	assert.ErrorIs(t, err, errCopy)
	assert.Nil(t, branch)
	assert.Equal(t, 3, tr.Len(), "failed pop leaves the tree intact")
	checkInvariants(t, tr)
}

func TestPopBranch(t *testing.T) {
	tr, a, a1 := payloadTree(t)
	branch, err := tr.PopBranch(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a1", "a2"}, names(branch))
	assert.Equal(t, 1, tr.Len())
	assert.False(t, tr.Contains(a))
	assert.False(t, tr.Contains(a1))
	checkInvariants(t, tr)

	_, err = tr.PopBranch(tr.RootID())
	assert.ErrorIs(t, err, ErrRootNode)
	_, err = tr.PopBranch(a)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestInsertBranchRoundTrip(t *testing.T) {
	tr, a, _ := payloadTree(t)
	b, err := tr.AddNode(payload{Name: "b"}, tr.RootID())
	require.NoError(t, err)

	branch, err := tr.PopBranch(a)
	require.NoError(t, err)
	ids, err := tr.InsertBranch(branch, b)
	require.NoError(t, err)
	require.Len(t, ids, 3)

	assert.Equal(t, []string{"root", "b", "a", "a1", "a2"}, names(tr))
	checkInvariants(t, tr)

	n, err := tr.Node(ids[1])
	require.NoError(t, err)
	assert.Equal(t, "a1", n.Value().Name)
	assert.Equal(t, []string{"a", "b", "root"}, []string{
		n.Ancestors()[0].Value().Name,
		n.Ancestors()[1].Value().Name,
		n.Ancestors()[2].Value().Name,
	})
}

func TestInsertBranchErrors(t *testing.T) {
	tr, a, _ := payloadTree(t)
	branch, err := tr.GetBranch(a)
	require.NoError(t, err)

	_, err = tr.InsertBranch(branch, 4242)
	assert.ErrorIs(t, err, ErrUnknownNode)
	_, err = tr.InsertBranch(tr, a)
	assert.ErrorIs(t, err, ErrCycle)
	assert.Equal(t, 4, tr.Len())
}
