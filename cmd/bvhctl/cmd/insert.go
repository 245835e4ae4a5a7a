package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/freyjadb/pkg/bvh"
)

var insertCmd = &cobra.Command{
	Use:   "insert [id]",
	Short: "Insert an item into the scene",
	Long: `Insert adds an item with the given center and size to the scene
file, rejecting it if an item with the same id already exists. If id is
omitted, a ksuid is generated.

Example:
  bvhctl insert --center 1,2,3 --size 1,1,1
  bvhctl insert widget-7 --center 0,0,0 --size 2,2,2`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenePath, _ := cmd.Flags().GetString("scene")
		centerStr, _ := cmd.Flags().GetString("center")
		sizeStr, _ := cmd.Flags().GetString("size")

		center, err := parseVec3(centerStr)
		if err != nil {
			return fmt.Errorf("invalid --center: %w", err)
		}
		size, err := parseVec3(sizeStr)
		if err != nil {
			return fmt.Errorf("invalid --size: %w", err)
		}

		id := ""
		if len(args) == 1 {
			id = args[0]
		} else {
			id = ksuid.New().String()
		}

		items, err := loadScene(scenePath)
		if err != nil {
			return err
		}

		tree := buildTree(items, 0)
		if !tree.Insert(id, bvh.NewBounds(center, size)) {
			return fmt.Errorf("item %q already exists in scene", id)
		}

		if err := saveScene(scenePath, dumpTree(tree)); err != nil {
			return err
		}

		fmt.Printf("inserted %s (%d items in scene)\n", id, tree.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
	insertCmd.Flags().String("center", "0,0,0", "Bounds center as x,y,z")
	insertCmd.Flags().String("size", "1,1,1", "Bounds size as x,y,z")
}

func parseVec3(s string) (bvh.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return bvh.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	vals := make([]float32, 3)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return bvh.Vec3{}, fmt.Errorf("invalid component %q: %w", p, err)
		}
		vals[i] = float32(f)
	}
	return bvh.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}
