package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/ironsheep/slime-finder/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP tool server on stdin/stdout",
	Long: `Serves the slime-finder tools over the Model Context Protocol (JSON-RPC 2.0,
one message per line) on stdin and stdout. Configure it as a stdio server in an
MCP client. Logs go to stderr or --log-file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		srv := server.New(Version, logger)
		if err := srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}
