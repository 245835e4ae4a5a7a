// Package bvh implements a dynamic bounding volume hierarchy for 3D spatial
// indexing: a mutable set of axis-aligned bounding boxes (AABBs), each
// tagged with an opaque item identifier, supporting incremental insertion
// and removal, a Morton-order bulk rebuild, and predicate-guided traversal.
//
// The tree is single-threaded and not safe for concurrent use. It never
// persists to disk and never interprets geometry beyond the bounds it is
// given; ray casts, frustum culling and overlap queries are expressed by
// the caller as a predicate over Bounds passed to Traversal.
package bvh
