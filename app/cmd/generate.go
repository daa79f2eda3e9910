package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexcodex/codeforge/agents"
	"github.com/lexcodex/codeforge/persistence"
	"github.com/lexcodex/codeforge/project"
)

func newGenerateCmd() *cobra.Command {
	var problem string
	var language string
	var output string
	var optimize bool
	var noSave bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate code from a problem statement via the full agent pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := globalCfg.Language(language); !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: no tooling conventions for language %q\n", language)
			}
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
				Observer: func(stage agents.StageResult) {
					fmt.Fprintf(cmd.OutOrStdout(), "* %s complete\n", stage.Name)
				},
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), pipelineTimeout())
			defer cancel()

			result, err := pipeline.Run(ctx, problem, language)
			if err != nil {
				return err
			}

			for _, stage := range result.Stages {
				body := stage.Output
				if stage.Code != "" {
					body = stage.Code
				}
				printSection(cmd.OutOrStdout(), stage.Name, body)
			}
			printSection(cmd.OutOrStdout(), "FINAL CODE", result.FinalCode)

			if output != "" {
				if err := project.SaveCode(result.FinalCode, output, true); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Code saved to %s\n", output)
			}

			if !noSave {
				if err := saveSession(cmd.Context(), result); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: session not saved: %v\n", err)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Session %s saved\n", result.ID)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&problem, "problem", "p", "", "Problem statement")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Programming language")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "Run the optimization stage")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Skip recording the session")
	_ = cmd.MarkFlagRequired("problem")
	_ = cmd.MarkFlagRequired("language")
	return cmd
}

// pipelineTimeout scales the per-call timeout across the stage count.
func pipelineTimeout() time.Duration {
	timeout := globalCfg.Timeouts.API
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return 8 * timeout
}

func saveSession(ctx context.Context, result *agents.PipelineResult) error {
	store, err := openSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stages := make([]persistence.Stage, 0, len(result.Stages))
	for i, stage := range result.Stages {
		stages = append(stages, persistence.Stage{
			Seq:    i,
			Name:   stage.Name,
			Role:   stage.Role,
			Output: stage.Output,
		})
	}
	return store.Save(ctx, persistence.Session{
		ID:        result.ID,
		Problem:   result.Problem,
		Language:  result.Language,
		FinalCode: result.FinalCode,
		CreatedAt: result.StartedAt,
	}, stages)
}
