// Package spatial builds ready-made bvh.Tree predicates for the query
// shapes a spatial index is normally asked to answer: ray casts, axis-
// aligned box overlaps, and view-frustum culling. Each query type supplies a
// pruning predicate for bvh.Tree.Traversal, and Results supplies the
// accumulating callback, so callers don't hand-roll the same pattern for
// every call site.
package spatial
