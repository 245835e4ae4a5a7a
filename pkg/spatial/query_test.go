package spatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/freyjadb/pkg/bvh"
	"github.com/ssargent/freyjadb/pkg/spatial"
)

func buildScene(t *testing.T) *bvh.Tree[string] {
	t.Helper()
	tr := bvh.New[string](8)
	require.True(t, tr.Insert("near", bvh.NewBounds(bvh.Vec3{X: 5, Y: 0, Z: 0}, bvh.Vec3{X: 1, Y: 1, Z: 1})))
	require.True(t, tr.Insert("far", bvh.NewBounds(bvh.Vec3{X: 50, Y: 0, Z: 0}, bvh.Vec3{X: 1, Y: 1, Z: 1})))
	require.True(t, tr.Insert("offaxis", bvh.NewBounds(bvh.Vec3{X: 5, Y: 20, Z: 0}, bvh.Vec3{X: 1, Y: 1, Z: 1})))
	return tr
}

func TestRayQueryHitsAlignedTargets(t *testing.T) {
	tr := buildScene(t)
	q := spatial.RayQuery{Origin: bvh.Vec3{}, Dir: bvh.Vec3{X: 1, Y: 0, Z: 0}}

	var results spatial.Results[string]
	tr.Traversal(q.Predicate(), results.Collect())

	assert.ElementsMatch(t, []string{"near", "far"}, results.Items())
}

func TestRayQueryRespectsTMax(t *testing.T) {
	tr := buildScene(t)
	q := spatial.RayQuery{Origin: bvh.Vec3{}, Dir: bvh.Vec3{X: 1, Y: 0, Z: 0}, TMax: 10}

	var results spatial.Results[string]
	tr.Traversal(q.Predicate(), results.Collect())

	assert.Equal(t, []string{"near"}, results.Items())
}

func TestRayQueryMissesPerpendicularTargets(t *testing.T) {
	tr := buildScene(t)
	q := spatial.RayQuery{Origin: bvh.Vec3{}, Dir: bvh.Vec3{X: 0, Y: 0, Z: 1}}

	var results spatial.Results[string]
	tr.Traversal(q.Predicate(), results.Collect())

	assert.Empty(t, results.Items())
}

func TestBoxQueryOverlapFiltersByBounds(t *testing.T) {
	tr := buildScene(t)
	q := spatial.BoxQuery{Bounds: bvh.NewBounds(bvh.Vec3{X: 5, Y: 0, Z: 0}, bvh.Vec3{X: 4, Y: 4, Z: 4})}

	var results spatial.Results[string]
	tr.Traversal(q.Predicate(), results.Collect())

	assert.Equal(t, []string{"near"}, results.Items())
}

func TestFrustumQueryCullsBehindNearPlane(t *testing.T) {
	tr := buildScene(t)
	// A single plane whose positive half-space is x >= 10 excludes "near"
	// (centered at x=5) but admits "far" (centered at x=50).
	q := spatial.FrustumQuery{Planes: [6]spatial.Plane{
		{Normal: bvh.Vec3{X: 1, Y: 0, Z: 0}, Offset: -10},
	}}

	var results spatial.Results[string]
	tr.Traversal(q.Predicate(), results.Collect())

	assert.Equal(t, []string{"far"}, results.Items())
}

func TestResultIteratorWalksInOrder(t *testing.T) {
	it := spatial.NewResultIterator([]int{1, 2, 3})

	var walked []int
	for it.Next() {
		walked = append(walked, it.Item())
	}

	assert.Equal(t, []int{1, 2, 3}, walked)
	assert.False(t, it.Next())
}

func TestResultIteratorEmpty(t *testing.T) {
	it := spatial.NewResultIterator[int](nil)
	assert.False(t, it.Next())
}
