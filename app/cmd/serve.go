package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexcodex/codeforge/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the text utilities over JSON-RPC on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(cmd.ErrOrStderr(), "[rpc] ", log.LstdFlags)
			return server.Serve(cmd.Context(), server.Stdio(os.Stdin, os.Stdout), logger)
		},
	}
}
