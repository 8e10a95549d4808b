package main

import (
	"context"
	"fmt"

	"pr-review-status/config"
	"pr-review-status/internal/transport/notifier"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const statusOutput = "review-status"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pr-review-status",
		Short: "Classify pull requests by review state",
		Long: `Classify pull requests as draft, pending review, changes requested or approved.

In label mode the target pull request gets the label of its status and the
status is exposed as the review-status output. In report mode every open pull
request is classified and a summary is posted to Slack.

Every flag can also be given as an action input (INPUT_<NAME>).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context(), config.ModeFromInput, cmd.Flags())
			if err != nil {
				return err
			}
			defer a.close()

			switch a.cfg.Mode {
			case config.ModeLabel:
				return runLabel(cmd.Context(), a)
			case config.ModeReport:
				return runReport(cmd.Context(), a)
			default:
				return fmt.Errorf("unsupported run mode %q", a.cfg.Mode)
			}
		},
	}

	cmd.Flags().String("run-mode", "", "label or report")
	addInputFlags(cmd.PersistentFlags())

	cmd.AddCommand(newServeCmd(), newStatusCmd())
	return cmd
}

// addInputFlags declares action inputs as string flags so that an unset flag
// never masks the INPUT_ environment or config defaults.
func addInputFlags(fs *pflag.FlagSet) {
	fs.String("github-token", "", "GitHub token")
	fs.String("repository", "", "owner/name of the repository")
	fs.String("required-approvals", "", "approvals needed for the approved status")
	fs.String("pull-number", "", "pull request to label or inspect")
	fs.String("pending-review-label", "", "label for PRs awaiting review")
	fs.String("changes-requested-label", "", "label for PRs with requested changes")
	fs.String("approved-label", "", "label for approved PRs")
	fs.String("slack-token", "", "Slack bot token")
	fs.String("slack-channel", "", "Slack channel for the report")
	fs.String("stale-days", "", "age in days after which a PR is stale")
	fs.String("concurrency", "", "PRs processed at once")
	fs.String("storage", "", "status history backend: memory or postgres")
	fs.String("log-level", "", "debug, info, warn or error")
}

func runLabel(ctx context.Context, a *app) error {
	repo, err := a.cfg.GitHub.Repo()
	if err != nil {
		return err
	}

	res, err := a.uc.LabelPullRequest(ctx, repo, a.cfg.Inputs.PullNumber)
	if err != nil {
		return err
	}

	githubactions.SetOutput(statusOutput, string(res.Status))
	a.log.Infow("pull request labeled",
		"repository", repo.String(),
		"pull_number", a.cfg.Inputs.PullNumber,
		"status", res.Status,
	)
	return nil
}

func runReport(ctx context.Context, a *app) error {
	repo, err := a.cfg.GitHub.Repo()
	if err != nil {
		return err
	}

	report, err := a.uc.BuildReport(ctx, repo)
	if err != nil {
		return err
	}

	n := notifier.New(a.log, a.cfg.Inputs.SlackToken, a.cfg.Inputs.SlackChannel)
	return n.Send(ctx, report)
}
