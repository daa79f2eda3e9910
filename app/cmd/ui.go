package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexcodex/codeforge/agents"
	"github.com/lexcodex/codeforge/app/studio/tui"
	"github.com/lexcodex/codeforge/project"
)

func newUICmd() *cobra.Command {
	var problem string
	var language string
	var output string
	var optimize bool

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Run the pipeline in the interactive terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, closeSink, err := buildModel()
			if err != nil {
				return err
			}
			defer closeSink()

			sink, closeTel, err := buildTelemetry()
			if err != nil {
				return err
			}
			defer closeTel()

			pipeline := &agents.Pipeline{
				Model:     model,
				Config:    globalCfg,
				Telemetry: sink,
				Optimize:  optimize,
			}
			result, err := tui.Run(cmd.Context(), pipeline, problem, language)
			if err != nil {
				return err
			}
			if result == nil {
				return nil
			}
			if output != "" {
				if err := project.SaveCode(result.FinalCode, output, true); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Code saved to %s\n", output)
			}
			if err := saveSession(cmd.Context(), result); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: session not saved: %v\n", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&problem, "problem", "p", "", "Problem statement")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Programming language")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "Run the optimization stage")
	_ = cmd.MarkFlagRequired("problem")
	_ = cmd.MarkFlagRequired("language")
	return cmd
}
