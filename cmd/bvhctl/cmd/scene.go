package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ssargent/freyjadb/pkg/bvh"
)

// sceneItem is the on-disk representation of one tracked item.
type sceneItem struct {
	ID     string     `json:"id"`
	Center [3]float32 `json:"center"`
	Size   [3]float32 `json:"size"`
}

func (s sceneItem) bounds() bvh.Bounds {
	return bvh.NewBounds(
		bvh.Vec3{X: s.Center[0], Y: s.Center[1], Z: s.Center[2]},
		bvh.Vec3{X: s.Size[0], Y: s.Size[1], Z: s.Size[2]},
	)
}

// loadScene reads a scene file. A missing file is treated as an empty
// scene so insert can be used to create one from scratch.
func loadScene(path string) ([]sceneItem, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	var items []sceneItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	return items, nil
}

// saveScene writes items to path as indented JSON.
func saveScene(path string, items []sceneItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scene file: %w", err)
	}
	return nil
}

// buildTree loads a bvh.Tree[string] from a scene's items. The pool starts
// at whichever is larger: len(items) or capacity.
func buildTree(items []sceneItem, capacity int) *bvh.Tree[string] {
	tree := bvh.New[string](max(len(items), capacity, 1))
	for _, item := range items {
		tree.Insert(item.ID, item.bounds())
	}
	return tree
}

// dumpTree walks tree and returns its items as scene entries, in
// traversal order.
func dumpTree(tree *bvh.Tree[string]) []sceneItem {
	var items []sceneItem
	tree.Traversal(func(bvh.Bounds) bool { return true }, func(id string) {
		bounds, ok := tree.Bounds(id)
		if !ok {
			return
		}
		items = append(items, sceneItem{
			ID:     id,
			Center: [3]float32{bounds.Center.X, bounds.Center.Y, bounds.Center.Z},
			Size:   [3]float32{bounds.Size.X, bounds.Size.Y, bounds.Size.Z},
		})
	})
	return items
}
