package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexcodex/codeforge/agents"
	"github.com/lexcodex/codeforge/codetext"
	"github.com/lexcodex/codeforge/project"
)

func newOptimizeCmd() *cobra.Command {
	var input string
	var output string

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Optimize an existing source file for time and space complexity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !globalCfg.Features.Optimization {
				return fmt.Errorf("optimization is disabled in config")
			}
			code, err := project.LoadCode(input)
			if err != nil {
				return err
			}
			response, err := invokeRole(cmd.Context(), agents.RoleOptimizer,
				fmt.Sprintf("Optimize this code:\n\n%s", code))
			if err != nil {
				return err
			}
			optimized := codetext.Extract(response, "")
			printSection(cmd.OutOrStdout(), "OPTIMIZED CODE", optimized)

			if output != "" {
				if err := project.SaveCode(optimized, output, true); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Optimized code saved to %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file path")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
