package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexcodex/codeforge/agents"
	"github.com/lexcodex/codeforge/project"
)

func newReviewCmd() *cobra.Command {
	var input string
	var bugs bool

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review an existing source file (or scan it for bugs)",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := project.LoadCode(input)
			if err != nil {
				return err
			}
			role := agents.RoleCodeReviewer
			title := "CODE REVIEW"
			message := fmt.Sprintf("Review this code:\n\n%s", code)
			if bugs {
				if !globalCfg.Features.BugDetection {
					return fmt.Errorf("bug detection is disabled in config")
				}
				role = agents.RoleBugDetector
				title = "BUG REPORT"
				message = fmt.Sprintf("Analyze this code for bugs:\n\n%s", code)
			} else if !globalCfg.Features.CodeReview {
				return fmt.Errorf("code review is disabled in config")
			}

			report, err := invokeRole(cmd.Context(), role, message)
			if err != nil {
				return err
			}
			printSection(cmd.OutOrStdout(), title, report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file path")
	cmd.Flags().BoolVar(&bugs, "bugs", false, "Run the bug detector instead of the reviewer")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
