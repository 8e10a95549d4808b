package main

import (
	"pr-review-status/config"
	"pr-review-status/internal/transport/terminal"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print review statuses to the terminal",
		Long: `Print the grouped report of all open pull requests, or the classification
of a single pull request when --pull-number is set. Nothing is labeled or posted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context(), config.ModeStatus, cmd.Flags())
			if err != nil {
				return err
			}
			defer a.close()

			repo, err := a.cfg.GitHub.Repo()
			if err != nil {
				return err
			}
			printer := terminal.NewPrinter(cmd.OutOrStdout())

			if n := a.cfg.Inputs.PullNumber; n > 0 {
				res, err := a.uc.ClassifyPullRequest(cmd.Context(), repo, n)
				if err != nil {
					return err
				}
				return printer.PrintClassification(repo, res)
			}

			report, err := a.uc.BuildReport(cmd.Context(), repo)
			if err != nil {
				return err
			}
			return printer.PrintReport(report)
		},
	}
}
