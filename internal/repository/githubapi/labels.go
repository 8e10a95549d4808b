package githubapi

import (
	"context"

	"pr-review-status/internal/entities"

	"github.com/google/go-github/v71/github"
)

// ListLabels returns the names of labels currently on the PR.
func (g *GitHub) ListLabels(ctx context.Context, repo entities.Repository, number int) ([]string, error) {
	opts := &github.ListOptions{PerPage: perPage}

	var names []string
	for {
		page, resp, err := g.client.Issues.ListLabelsByIssue(ctx, repo.Owner, repo.Name, number, opts)
		if err != nil {
			return nil, wrap("list labels", err)
		}
		for _, l := range page {
			names = append(names, l.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}

// AddLabels attaches labels to the PR.
func (g *GitHub) AddLabels(ctx context.Context, repo entities.Repository, number int, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	if _, _, err := g.client.Issues.AddLabelsToIssue(ctx, repo.Owner, repo.Name, number, labels); err != nil {
		return wrap("add labels", err)
	}
	g.log.Infow("labels added", "repository", repo.String(), "pull_number", number, "labels", labels)
	return nil
}

// RemoveLabel detaches one label from the PR.
func (g *GitHub) RemoveLabel(ctx context.Context, repo entities.Repository, number int, label string) error {
	if _, err := g.client.Issues.RemoveLabelForIssue(ctx, repo.Owner, repo.Name, number, label); err != nil {
		return wrap("remove label", err)
	}
	g.log.Infow("label removed", "repository", repo.String(), "pull_number", number, "label", label)
	return nil
}
