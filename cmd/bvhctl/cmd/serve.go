package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/freyjadb/pkg/api"
	"github.com/ssargent/freyjadb/pkg/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scene's tree over HTTP",
	Long: `serve loads the scene file into a tree and exposes it over HTTP
for health checks, stats, item mutation, ray/box queries, rebuilds, and
Prometheus scraping.

Example:
  bvhctl serve --port=8080 --api-key=mysecretkey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenePath, _ := cmd.Flags().GetString("scene")
		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		apiKey, _ := cmd.Flags().GetString("api-key")
		capacity, _ := cmd.Flags().GetInt("capacity")

		items, err := loadScene(scenePath)
		if err != nil {
			return err
		}
		tree := buildTree(items, capacity)

		instanceID, err := config.GenerateInstanceID()
		if err != nil {
			return err
		}

		serverConfig := api.ServerConfig{
			Bind:            bind,
			Port:            port,
			APIKey:          apiKey,
			InitialCapacity: capacity,
			InstanceID:      instanceID,
		}

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(tree, serverConfig)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key for authentication (empty disables auth)")
	serveCmd.Flags().Int("capacity", 1024, "Node pool capacity to pre-warm when the scene is small")
}
