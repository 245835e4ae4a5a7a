package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an item from the scene",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenePath, _ := cmd.Flags().GetString("scene")
		id := args[0]

		items, err := loadScene(scenePath)
		if err != nil {
			return err
		}

		tree := buildTree(items, 0)
		if !tree.Remove(id) {
			return fmt.Errorf("item %q not found in scene", id)
		}

		if err := saveScene(scenePath, dumpTree(tree)); err != nil {
			return err
		}

		fmt.Printf("removed %s (%d items remaining)\n", id, tree.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
