package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexcodex/codeforge/agents"
	"github.com/lexcodex/codeforge/codetext"
	"github.com/lexcodex/codeforge/project"
)

// invokeRole runs a single agent call and returns the trimmed response.
func invokeRole(ctx context.Context, role, message string) (string, error) {
	model, closeSink, err := buildModel()
	if err != nil {
		return "", err
	}
	defer closeSink()

	callCtx, cancel := context.WithTimeout(ctx, globalCfg.Timeouts.API)
	defer cancel()
	return agents.Invoke(callCtx, model, globalCfg.AgentFor(role), message)
}

func newDebugCmd() *cobra.Command {
	var input string
	var output string

	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Fix issues in an existing source file",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := project.LoadCode(input)
			if err != nil {
				return err
			}
			response, err := invokeRole(cmd.Context(), agents.RoleDebugger,
				fmt.Sprintf("Fix all issues in this code:\n\n%s", code))
			if err != nil {
				return err
			}
			fixed := codetext.Extract(response, "")
			printSection(cmd.OutOrStdout(), "DEBUGGED CODE", fixed)

			if output != "" {
				if err := project.SaveCode(fixed, output, true); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Fixed code saved to %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file path")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
