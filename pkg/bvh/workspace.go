package bvh

import "sort"

// rebuildWorkspace holds the scratch ordered sequence and FIFO that
// BottomUp needs to pair leaves by Morton order. It is owned by the Tree
// and cleared (not reallocated) between calls so a rebuild never pays for
// a fresh allocation on the hot path.
type rebuildWorkspace struct {
	leaves []Index  // scratch ordered sequence, sorted by Morton key before pairing
	keys   []uint32 // keys[i] is the Morton key of leaves[i]
	fifo   []Index  // FIFO of nodes awaiting pairing; consumed from the front
	head   int      // index of the next element to dequeue from fifo
}

func newRebuildWorkspace() *rebuildWorkspace {
	return &rebuildWorkspace{}
}

func (w *rebuildWorkspace) reset(n int) {
	w.leaves = w.leaves[:0]
	w.keys = w.keys[:0]
	w.fifo = w.fifo[:0]
	w.head = 0
	if cap(w.leaves) < n {
		w.leaves = make([]Index, 0, n)
		w.keys = make([]uint32, 0, n)
		w.fifo = make([]Index, 0, n)
	}
}

func (w *rebuildWorkspace) addLeaf(idx Index, key uint32) {
	w.leaves = append(w.leaves, idx)
	w.keys = append(w.keys, key)
}

// sortByKey orders leaves by their Morton key. Ties are broken by original
// position, so the result is deterministic across calls with the same
// input even though it isn't part of the documented contract.
func (w *rebuildWorkspace) sortByKey() {
	order := make([]int, len(w.leaves))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return w.keys[order[i]] < w.keys[order[j]]
	})

	sorted := make([]Index, len(w.leaves))
	for i, pos := range order {
		sorted[i] = w.leaves[pos]
	}
	w.leaves = sorted
}

// enqueue pushes idx onto the back of the FIFO.
func (w *rebuildWorkspace) enqueue(idx Index) {
	w.fifo = append(w.fifo, idx)
}

// dequeue pops the front of the FIFO.
func (w *rebuildWorkspace) dequeue() Index {
	idx := w.fifo[w.head]
	w.head++
	return idx
}

// remaining reports how many elements are still queued.
func (w *rebuildWorkspace) remaining() int {
	return len(w.fifo) - w.head
}
