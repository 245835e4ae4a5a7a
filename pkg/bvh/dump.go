package bvh

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable, indented rendering of the tree's
// structure to w: one line per node, interior nodes first followed by
// their children, indented by depth. format renders a leaf's item; pass
// nil to use fmt's default formatting.
func (t *Tree[Item]) Dump(w io.Writer, format func(Item) string) {
	if format == nil {
		format = func(item Item) string { return fmt.Sprintf("%v", item) }
	}
	if t.root == Null {
		fmt.Fprintln(w, "(empty)")
		return
	}
	t.dumpRec(w, t.root, 0, format)
}

func (t *Tree[Item]) dumpRec(w io.Writer, idx Index, depth int, format func(Item) string) {
	indent := strings.Repeat(".", depth)
	n := t.pool.at(idx)

	if n.isLeaf {
		fmt.Fprintf(w, "%s[leaf] %s bounds=%s\n", indent, format(n.item), formatBounds(n.bounds))
		return
	}

	fmt.Fprintf(w, "%s[node] bounds=%s\n", indent, formatBounds(n.bounds))
	t.dumpRec(w, n.left, depth+1, format)
	t.dumpRec(w, n.right, depth+1, format)
}

func formatBounds(b Bounds) string {
	min, max := b.Min(), b.Max()
	return fmt.Sprintf("[%.3g,%.3g,%.3g]-[%.3g,%.3g,%.3g]", min.X, min.Y, min.Z, max.X, max.Y, max.Z)
}
