package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newSessionCmd registers subcommands over the recorded pipeline sessions.
func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "List, inspect, or delete recorded pipeline sessions",
	}
	cmd.AddCommand(newSessionListCmd(), newSessionShowCmd(), newSessionDeleteCmd())
	return cmd
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openSessionStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sessions, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded.")
				return nil
			}
			for _, session := range sessions {
				problem := session.Problem
				if len(problem) > 60 {
					problem = problem[:60] + "..."
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-12s %s\n",
					session.ID, session.CreatedAt.Format("2006-01-02 15:04"), session.Language, problem)
			}
			return nil
		},
	}
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print a session's stage outputs and final code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openSessionStore()
			if err != nil {
				return err
			}
			defer store.Close()

			session, stages, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %s (%s, %s)\nProblem: %s\n\n",
				session.ID, session.Language, session.CreatedAt.Format("2006-01-02 15:04"), session.Problem)
			for _, stage := range stages {
				printSection(cmd.OutOrStdout(), fmt.Sprintf("%d. %s (%s)", stage.Seq+1, stage.Name, stage.Role), stage.Output)
			}
			printSection(cmd.OutOrStdout(), "FINAL CODE", session.FinalCode)
			return nil
		},
	}
}

func newSessionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openSessionStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %s deleted\n", args[0])
			return nil
		},
	}
}
