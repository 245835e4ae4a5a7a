package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the scene's tree bottom-up and rewrite the scene file",
	Long: `rebuild loads the scene, runs a Morton-order bottom-up rebuild,
and writes the resulting traversal order back to the scene file. It does
not change any item's bounds. The scene file stores items only, not the
rebuilt hierarchy, so later commands rebuild their tree by inserting the
items in this new order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenePath, _ := cmd.Flags().GetString("scene")

		items, err := loadScene(scenePath)
		if err != nil {
			return err
		}

		tree := buildTree(items, 0)
		tree.BottomUp()

		if err := saveScene(scenePath, dumpTree(tree)); err != nil {
			return err
		}

		fmt.Printf("rebuilt scene with %d items\n", tree.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}
