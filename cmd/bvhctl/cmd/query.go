package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/freyjadb/pkg/bvh"
	"github.com/ssargent/freyjadb/pkg/spatial"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the scene",
}

var queryRayCmd = &cobra.Command{
	Use:   "ray",
	Short: "Cast a ray against the scene and print the items it hits",
	Long: `Example:
  bvhctl query ray --origin 0,0,0 --dir 1,0,0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenePath, _ := cmd.Flags().GetString("scene")
		originStr, _ := cmd.Flags().GetString("origin")
		dirStr, _ := cmd.Flags().GetString("dir")
		tmax, _ := cmd.Flags().GetFloat32("tmax")

		origin, err := parseVec3(originStr)
		if err != nil {
			return fmt.Errorf("invalid --origin: %w", err)
		}
		dir, err := parseVec3(dirStr)
		if err != nil {
			return fmt.Errorf("invalid --dir: %w", err)
		}

		items, err := loadScene(scenePath)
		if err != nil {
			return err
		}
		tree := buildTree(items, 0)

		q := spatial.RayQuery{Origin: origin, Dir: dir, TMax: tmax}
		var results spatial.Results[string]
		tree.Traversal(q.Predicate(), results.Collect())

		printItems(results.Items())
		return nil
	},
}

var queryBoxCmd = &cobra.Command{
	Use:   "box",
	Short: "Find items whose bounds overlap a query box",
	Long: `Example:
  bvhctl query box --center 0,0,0 --size 10,10,10`,
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

		items, err := loadScene(scenePath)
		if err != nil {
			return err
		}
		tree := buildTree(items, 0)

		q := spatial.BoxQuery{Bounds: bvh.NewBounds(center, size)}
		var results spatial.Results[string]
		tree.Traversal(q.Predicate(), results.Collect())

		printItems(results.Items())
		return nil
	},
}

func printItems(items []string) {
	fmt.Printf("%d item(s)\n", len(items))
	for _, item := range items {
		fmt.Println(item)
	}
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.AddCommand(queryRayCmd)
	queryCmd.AddCommand(queryBoxCmd)

	queryRayCmd.Flags().String("origin", "0,0,0", "Ray origin as x,y,z")
	queryRayCmd.Flags().String("dir", "1,0,0", "Ray direction as x,y,z")
	queryRayCmd.Flags().Float32("tmax", 0, "Maximum ray parameter (0 means unbounded)")

	queryBoxCmd.Flags().String("center", "0,0,0", "Query box center as x,y,z")
	queryBoxCmd.Flags().String("size", "1,1,1", "Query box size as x,y,z")
}
