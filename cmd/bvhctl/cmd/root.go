/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/freyjadb/pkg/di"
)

var container *di.Container

// SetContainer injects the dependency container built in main. Tests that
// exercise individual commands can call this with a container wired to
// fakes instead.
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bvhctl",
	Short: "bvhctl - inspect and query an in-memory bounding volume hierarchy",
	Long: `bvhctl builds a bvh.Tree from a scene file, lets you insert,
remove, and query items against it, and can serve the tree over HTTP for
live introspection.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("scene", "s", "./scene.json", "Path to the scene file holding item bounds")
}
