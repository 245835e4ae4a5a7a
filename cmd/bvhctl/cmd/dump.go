package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the scene's tree structure",
	Long: `dump renders the tree built from the scene file as an indented
listing, one line per node, useful for eyeballing how SAH insertion shaped
the hierarchy. The tree is built by inserting the scene's items in file
order; the scene file stores no hierarchy, so a previous rebuild shows up
only through the item order it wrote.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenePath, _ := cmd.Flags().GetString("scene")

		items, err := loadScene(scenePath)
		if err != nil {
			return err
		}

		tree := buildTree(items, 0)
		tree.Dump(os.Stdout, nil)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
