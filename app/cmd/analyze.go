package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexcodex/codeforge/agents"
	"github.com/lexcodex/codeforge/codetext"
	"github.com/lexcodex/codeforge/project"
)

func newAnalyzeCmd() *cobra.Command {
	var input string
	var language string
	var local bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze complexity of an existing source file",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := project.LoadCode(input)
			if err != nil {
				return err
			}

			metrics := codetext.EstimateComplexity(code)
			lines := codetext.CountLines(code)
			var sb strings.Builder
			fmt.Fprintf(&sb, "Lines Of Code: %d\n", metrics.LinesOfCode)
			fmt.Fprintf(&sb, "Loops: %d\n", metrics.Loops)
			fmt.Fprintf(&sb, "Conditionals: %d\n", metrics.Conditionals)
			fmt.Fprintf(&sb, "Functions: %d\n", metrics.Functions)
			fmt.Fprintf(&sb, "Cyclomatic Complexity: %d\n", metrics.CyclomaticComplexity)
			fmt.Fprintf(&sb, "Lines: %d total, %d code, %d comments, %d empty", lines.Total, lines.Code, lines.Comments, lines.Empty)
			if language != "" {
				names := codetext.FindFunctions(code, language)
				fmt.Fprintf(&sb, "\nFunctions found: %s", strings.Join(names, ", "))
			}
			printSection(cmd.OutOrStdout(), "BASIC METRICS", sb.String())

			if local || !globalCfg.Features.ComplexityAnalysis {
				return nil
			}
			analysis, err := invokeRole(cmd.Context(), agents.RoleComplexityAnalyzer,
				fmt.Sprintf("Analyze the complexity of this code:\n\n%s", code))
			if err != nil {
				return err
			}
			printSection(cmd.OutOrStdout(), "AI ANALYSIS", analysis)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file path")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Programming language for function detection")
	cmd.Flags().BoolVar(&local, "local", false, "Skip the AI analysis and print only local metrics")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
