package bvh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alwaysTrue(Bounds) bool { return true }

func TestNewTreeIsEmpty(t *testing.T) {
	tr := New[string](4)
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, Null, tr.root)

	visited := 0
	tr.Traversal(alwaysTrue, func(string) { visited++ })
	assert.Equal(t, 0, visited)
}

func TestInsertSingleElementBecomesRoot(t *testing.T) {
	tr := New[string](4)
	ok := tr.Insert("A", NewBounds(Vec3{0, 0, 0}, Vec3{1, 1, 1}))
	require.True(t, ok)
	assert.Equal(t, 1, tr.Len())

	leaf, found := tr.index.get("A")
	require.True(t, found)
	assert.Equal(t, tr.root, leaf)
	assert.True(t, tr.pool.at(leaf).isLeaf)
}

func TestInsertDuplicateIsRejected(t *testing.T) {
	tr := New[string](4)
	require.True(t, tr.Insert("A", NewBounds(Vec3{0, 0, 0}, Vec3{1, 1, 1})))

	ok := tr.Insert("A", NewBounds(Vec3{9, 9, 9}, Vec3{1, 1, 1}))
	assert.False(t, ok)
	assert.Equal(t, 1, tr.Len())

	leaf, _ := tr.index.get("A")
	assert.Equal(t, Vec3{0, 0, 0}, tr.pool.at(leaf).bounds.Center)
}

// Scenario from spec.md §8.1: two-element insert.
func TestTwoElementInsertRootBounds(t *testing.T) {
	tr := New[string](4)
	require.True(t, tr.Insert("A", NewBounds(Vec3{0, 0, 0}, Vec3{1, 1, 1})))
	require.True(t, tr.Insert("B", NewBounds(Vec3{10, 0, 0}, Vec3{1, 1, 1})))

	root := tr.pool.at(tr.root)
	assert.False(t, root.isLeaf)
	assert.Equal(t, Vec3{5, 0, 0}, root.bounds.Center)
	assert.Equal(t, Vec3{11, 1, 1}, root.bounds.Size)

	visited := map[string]int{}
	tr.Traversal(alwaysTrue, func(item string) { visited[item]++ })
	assert.Equal(t, map[string]int{"A": 1, "B": 1}, visited)
}

// Scenario from spec.md §8.2: SAH descent picks the closer sibling.
func TestSAHDescentChoosesCloserSibling(t *testing.T) {
	tr := New[string](4)
	require.True(t, tr.Insert("A", NewBounds(Vec3{0, 0, 0}, Vec3{1, 1, 1})))
	require.True(t, tr.Insert("B", NewBounds(Vec3{10, 0, 0}, Vec3{1, 1, 1})))
	require.True(t, tr.Insert("C", NewBounds(Vec3{0.1, 0, 0}, Vec3{1, 1, 1})))

	leafA, _ := tr.index.get("A")
	leafC, _ := tr.index.get("C")
	leafB, _ := tr.index.get("B")

	grandparentOfC := tr.pool.at(leafC).parent
	assert.Equal(t, grandparentOfC, tr.pool.at(leafA).parent, "A and C must share a parent")

	newRoot := tr.pool.at(tr.root)
	assert.False(t, newRoot.isLeaf)
	siblingOfGrandparent := newRoot.left
	if siblingOfGrandparent == grandparentOfC {
		siblingOfGrandparent = newRoot.right
	}
	assert.Equal(t, leafB, siblingOfGrandparent)
}

// Scenario from spec.md §8.3: remove restructures around the sibling.
func TestRemoveRestructuresTree(t *testing.T) {
	tr := New[string](4)
	require.True(t, tr.Insert("A", NewBounds(Vec3{0, 0, 0}, Vec3{1, 1, 1})))
	require.True(t, tr.Insert("B", NewBounds(Vec3{10, 0, 0}, Vec3{1, 1, 1})))
	require.True(t, tr.Insert("C", NewBounds(Vec3{0.1, 0, 0}, Vec3{1, 1, 1})))

	oldRoot := tr.root
	leafA, _ := tr.index.get("A")
	grandparentOfC := tr.pool.at(leafA).parent

	ok := tr.Remove("B")
	require.True(t, ok)

	assert.Equal(t, grandparentOfC, tr.root)
	assert.NotEqual(t, oldRoot, tr.root)
	_, stillTracked := tr.index.get("B")
	assert.False(t, stillTracked)
}

func TestBoundsReturnsTrackedItemBounds(t *testing.T) {
	tr := New[string](4)
	want := NewBounds(Vec3{1, 2, 3}, Vec3{4, 5, 6})
	require.True(t, tr.Insert("A", want))

	got, ok := tr.Bounds("A")
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = tr.Bounds("ghost")
	assert.False(t, ok)
}

func TestRemoveMissingReturnsFalse(t *testing.T) {
	tr := New[string](4)
	require.True(t, tr.Insert("A", NewBounds(Vec3{0, 0, 0}, Vec3{1, 1, 1})))

	assert.False(t, tr.Remove("ghost"))
	assert.Equal(t, 1, tr.Len())
}

func TestRemoveLastElementEmptiesTree(t *testing.T) {
	tr := New[string](4)
	require.True(t, tr.Insert("A", NewBounds(Vec3{0, 0, 0}, Vec3{1, 1, 1})))

	ok := tr.Remove("A")
	require.True(t, ok)
	assert.Equal(t, Null, tr.root)
	assert.Equal(t, 0, tr.Len())
}

// Law: insert/remove round-trip empties the tree regardless of order.
func TestInsertRemoveRoundTrip(t *testing.T) {
	tr := New[int](2)
	items := []int{0, 1, 2, 3, 4, 5, 6, 7}
	for _, it := range items {
		bounds := NewBounds(Vec3{float32(it), 0, 0}, Vec3{1, 1, 1})
		require.True(t, tr.Insert(it, bounds))
	}

	removeOrder := []int{3, 0, 7, 1, 5, 2, 6, 4}
	for _, it := range removeOrder {
		require.True(t, tr.Remove(it))
	}

	assert.Equal(t, Null, tr.root)
	assert.Equal(t, 0, tr.Len())
}

func TestTraversalPrunesOnFalsePredicate(t *testing.T) {
	tr := New[string](4)
	require.True(t, tr.Insert("A", NewBounds(Vec3{0, 0, 0}, Vec3{1, 1, 1})))
	require.True(t, tr.Insert("B", NewBounds(Vec3{10, 0, 0}, Vec3{1, 1, 1})))

	query := NewBounds(Vec3{0, 0, 0}, Vec3{1, 1, 1})
	var hits []string
	tr.Traversal(func(b Bounds) bool {
		return Overlaps(b, query)
	}, func(item string) {
		hits = append(hits, item)
	})

	assert.Equal(t, []string{"A"}, hits)
}

func TestPoolGrowthBeyondInitialCapacity(t *testing.T) {
	tr := New[int](4)
	for i := 0; i < 5; i++ {
		require.True(t, tr.Insert(i, NewBounds(Vec3{float32(i) * 3, 0, 0}, Vec3{1, 1, 1})))
	}
	assert.GreaterOrEqual(t, tr.Capacity(), 2*5-1)
	assert.Equal(t, 5, tr.Len())

	for i := 0; i < 5; i++ {
		_, ok := tr.index.get(i)
		assert.True(t, ok)
	}
}

// Scenario from spec.md §8.4: after a bottom-up rebuild every invariant
// holds and interior bounds are exact unions of their children.
func TestBottomUpProducesTightBoundsAndValidInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := New[int](16)
	const n = 256
	for i := 0; i < n; i++ {
		center := Vec3{
			X: rng.Float32() - 0.5,
			Y: rng.Float32() - 0.5,
			Z: rng.Float32() - 0.5,
		}
		require.True(t, tr.Insert(i, NewBounds(center, Vec3{0.01, 0.01, 0.01})))
	}

	tr.BottomUp()

	assertInvariants(t, tr, n)
	assertExactUnions(t, tr)
}

func TestBottomUpOnEmptyTreeIsNoop(t *testing.T) {
	tr := New[string](4)
	tr.BottomUp()
	assert.Equal(t, Null, tr.root)
}

func TestBottomUpOnSingleElement(t *testing.T) {
	tr := New[string](4)
	require.True(t, tr.Insert("A", NewBounds(Vec3{1, 2, 3}, Vec3{1, 1, 1})))
	tr.BottomUp()

	assert.True(t, tr.pool.at(tr.root).isLeaf)
	assert.Equal(t, "A", tr.pool.at(tr.root).item)
}

// Scenario from spec.md §8.6: pool reuse — peak capacity after a second
// insert batch never exceeds the capacity established by the first.
func TestPoolReuseAfterRemoveAll(t *testing.T) {
	tr := New[int](4)
	const n = 20
	for i := 0; i < n; i++ {
		require.True(t, tr.Insert(i, NewBounds(Vec3{float32(i), 0, 0}, Vec3{1, 1, 1})))
	}
	peakAfterFirstBatch := tr.Capacity()

	for i := 0; i < n; i++ {
		require.True(t, tr.Remove(i))
	}
	for i := n; i < 2*n; i++ {
		require.True(t, tr.Insert(i, NewBounds(Vec3{float32(i), 0, 0}, Vec3{1, 1, 1})))
	}

	assert.LessOrEqual(t, tr.Capacity(), peakAfterFirstBatch)
}

func assertInvariants(t *testing.T, tr *Tree[int], wantLeaves int) {
	t.Helper()
	assert.Equal(t, wantLeaves, tr.Len())

	free := map[Index]bool{}
	for _, idx := range tr.pool.free {
		free[idx] = true
	}

	visited := 0
	var walk func(idx Index, parent Index)
	walk = func(idx Index, parent Index) {
		visited++
		assert.False(t, free[idx], "reachable node must not be on the free list")
		n := tr.pool.at(idx)
		assert.Equal(t, parent, n.parent)
		if n.isLeaf {
			return
		}
		walk(n.left, idx)
		walk(n.right, idx)
	}
	if tr.root != Null {
		walk(tr.root, Null)
	}

	wantNodes := 0
	if wantLeaves > 0 {
		wantNodes = 2*wantLeaves - 1
	}
	assert.Equal(t, wantNodes, visited)
}

func assertExactUnions(t *testing.T, tr *Tree[int]) {
	t.Helper()
	var walk func(idx Index)
	walk = func(idx Index) {
		n := tr.pool.at(idx)
		if n.isLeaf {
			return
		}
		u := Union(tr.pool.at(n.left).bounds, tr.pool.at(n.right).bounds)
		assert.Equal(t, u, n.bounds)
		walk(n.left)
		walk(n.right)
	}
	if tr.root != Null {
		walk(tr.root)
	}
}
