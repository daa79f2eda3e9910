package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexcodex/codeforge/agents"
	"github.com/lexcodex/codeforge/codetext"
	"github.com/lexcodex/codeforge/project"
)

func newTestCmd() *cobra.Command {
	var input string
	var language string
	var output string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Generate unit tests for an existing source file",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := project.LoadCode(input)
			if err != nil {
				return err
			}
			response, err := invokeRole(cmd.Context(), agents.RoleTester,
				fmt.Sprintf("Generate comprehensive %s tests for:\n\n%s", language, code))
			if err != nil {
				return err
			}
			tests := codetext.Extract(response, language)
			printSection(cmd.OutOrStdout(), "GENERATED TESTS", tests)

			if output != "" {
				if err := project.SaveCode(tests, output, true); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tests saved to %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file path")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Programming language")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("language")
	return cmd
}
