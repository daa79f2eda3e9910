package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lexcodex/codeforge/agents"
)

var (
	cfgFile   string
	workspace string

	globalCfg *agents.GlobalConfig
)

// Execute is the entry point for the CLI. It cancels the command
// context on SIGINT or SIGTERM so in-flight API calls stop cleanly.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd wires the cobra tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "codeforge",
		Short:         "AI-powered coding assistant driving a fixed agent pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if workspace == "" {
				if wd, err := os.Getwd(); err == nil {
					workspace = wd
				} else {
					return err
				}
			}
			if cfgFile == "" {
				cfgFile = agents.DefaultConfigPath(workspace)
			}
			cfg, err := agents.LoadGlobalConfig(cfgFile)
			if err != nil {
				return err
			}
			if cfg.API.KeyEnv != "" {
				cfg.API.Key = os.Getenv(cfg.API.KeyEnv)
			}
			globalCfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&workspace, "workspace", "", "Workspace directory")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to codeforge config file")

	root.AddCommand(
		newGenerateCmd(),
		newDebugCmd(),
		newTestCmd(),
		newOptimizeCmd(),
		newAnalyzeCmd(),
		newReviewCmd(),
		newConfigCmd(),
		newSessionCmd(),
		newServeCmd(),
		newUICmd(),
	)
	return root
}
