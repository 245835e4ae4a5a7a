package spatial

import (
	"math"

	"github.com/ssargent/freyjadb/pkg/bvh"
)

// Plane is a half-space {p : Normal·p + Offset >= 0}. A point outside the
// half-space fails the plane test.
type Plane struct {
	Normal bvh.Vec3
	Offset float32
}

// RayQuery is a predicate factory for ray casts against a bvh.Tree. Dir
// need not be normalized; TMin/TMax bound the parametric range of interest
// along the ray (TMax <= 0 means unbounded).
type RayQuery struct {
	Origin bvh.Vec3
	Dir    bvh.Vec3
	TMin   float32
	TMax   float32
}

// Predicate returns a bvh.Traversal predicate that admits a node's bounds
// when the ray intersects it within [TMin, TMax], using the slab method.
func (q RayQuery) Predicate() func(bvh.Bounds) bool {
	tmax := q.TMax
	if tmax <= 0 {
		tmax = float32(math.MaxFloat32)
	}
	return func(b bvh.Bounds) bool {
		lo, hi := q.TMin, tmax
		bmin, bmax := b.Min(), b.Max()

		for axis := 0; axis < 3; axis++ {
			origin, dir, mn, mx := component(q.Origin, axis), component(q.Dir, axis), component(bmin, axis), component(bmax, axis)
			if dir == 0 {
				if origin < mn || origin > mx {
					return false
				}
				continue
			}
			inv := 1 / dir
			t1 := (mn - origin) * inv
			t2 := (mx - origin) * inv
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > lo {
				lo = t1
			}
			if t2 < hi {
				hi = t2
			}
			if lo > hi {
				return false
			}
		}
		return true
	}
}

func component(v bvh.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// BoxQuery is a predicate factory for axis-aligned range queries: it admits
// any node whose bounds overlap Bounds.
type BoxQuery struct {
	Bounds bvh.Bounds
}

// Predicate returns a bvh.Traversal predicate built on bvh.Overlaps.
func (q BoxQuery) Predicate() func(bvh.Bounds) bool {
	return func(b bvh.Bounds) bool {
		return bvh.Overlaps(b, q.Bounds)
	}
}

// FrustumQuery is a predicate factory for view-frustum culling. A node's
// bounds are admitted only if its positive vertex (the corner farthest
// along each plane's normal) lies inside every plane's half-space; any
// plane that fully excludes the bounds' AABB prunes the node.
type FrustumQuery struct {
	Planes [6]Plane
}

// Predicate returns a bvh.Traversal predicate that conservatively culls
// nodes lying entirely outside the frustum.
func (q FrustumQuery) Predicate() func(bvh.Bounds) bool {
	return func(b bvh.Bounds) bool {
		bmin, bmax := b.Min(), b.Max()
		for _, plane := range q.Planes {
			positive := bvh.Vec3{
				X: pick(plane.Normal.X, bmin.X, bmax.X),
				Y: pick(plane.Normal.Y, bmin.Y, bmax.Y),
				Z: pick(plane.Normal.Z, bmin.Z, bmax.Z),
			}
			if dot(plane.Normal, positive)+plane.Offset < 0 {
				return false
			}
		}
		return true
	}
}

func pick(n, lo, hi float32) float32 {
	if n >= 0 {
		return hi
	}
	return lo
}

func dot(a, b bvh.Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Results accumulates items from a bvh.Tree.Traversal call into a slice in
// visitation order.
type Results[Item any] struct {
	items []Item
}

// Collect returns a callback suitable for bvh.Tree.Traversal that appends
// every visited item to the Results.
func (r *Results[Item]) Collect() func(Item) {
	return func(item Item) {
		r.items = append(r.items, item)
	}
}

// Items returns the accumulated items.
func (r *Results[Item]) Items() []Item {
	return r.items
}

// Len returns the number of accumulated items.
func (r *Results[Item]) Len() int {
	return len(r.items)
}

// ResultIterator exposes an accumulated Results slice one item at a time,
// matching the pull-based iteration shape callers expect from a query
// result set rather than a bulk slice.
type ResultIterator[Item any] struct {
	items []Item
	pos   int
}

// NewResultIterator wraps items for sequential iteration.
func NewResultIterator[Item any](items []Item) *ResultIterator[Item] {
	return &ResultIterator[Item]{items: items, pos: -1}
}

// Next advances the iterator. It returns false once exhausted.
func (it *ResultIterator[Item]) Next() bool {
	if it.pos+1 >= len(it.items) {
		return false
	}
	it.pos++
	return true
}

// Item returns the item at the iterator's current position. It panics if
// called before a successful Next.
func (it *ResultIterator[Item]) Item() Item {
	return it.items[it.pos]
}

// Close releases the iterator's reference to its backing slice.
func (it *ResultIterator[Item]) Close() {
	it.items = nil
	it.pos = 0
}
