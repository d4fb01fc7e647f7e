package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-grid/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Run a Model Context Protocol server over stdio so an assistant can plan,
preview and split grids. Logs go to stderr; stdout carries only protocol
messages. The platform contract comes from the same config file and
IMAGE_GRID_* variables as the other commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.platform()
			if err != nil {
				return err
			}
			c.Logger.Info("Starting MCP server", "version", c.version.version)
			srv := server.NewWithConfig(server.Config{
				Platform: p,
				Logger:   c.Logger,
				Version:  c.version.version,
			})
			return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
