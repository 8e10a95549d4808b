// Package githubapi implements the platform interfaces against the GitHub REST and GraphQL APIs.
package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pr-review-status/internal/entities"

	"github.com/google/go-github/v71/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const perPage = 100

// GitHub talks to one GitHub installation (github.com or GHES).
type GitHub struct {
	log        *zap.SugaredLogger
	client     *github.Client
	graphqlURL string
}

// NewHTTPClient returns an authenticated HTTP client.
func NewHTTPClient(ctx context.Context, token string, timeout time.Duration) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = timeout
	return hc
}

// New builds the adapter. apiURL is the REST root, e.g. https://api.github.com/ or
// https://ghe.example.com/api/v3/.
func New(log *zap.SugaredLogger, hc *http.Client, apiURL string) (*GitHub, error) {
	base, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("%w: api url %q: %v", entities.ErrInvalidConfig, apiURL, err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	client := github.NewClient(hc)
	client.BaseURL = base

	return &GitHub{
		log:        log.Named("repo.github"),
		client:     client,
		graphqlURL: graphqlEndpoint(base),
	}, nil
}

// Client exposes the underlying go-github client.
func (g *GitHub) Client() *github.Client {
	return g.client
}

// graphqlEndpoint maps https://host/api/v3/ to https://host/api/graphql and anything else to <base>graphql.
func graphqlEndpoint(base *url.URL) string {
	u := *base
	if strings.HasSuffix(u.Path, "/api/v3/") {
		u.Path = strings.TrimSuffix(u.Path, "v3/") + "graphql"
	} else {
		u.Path += "graphql"
	}
	return u.String()
}

// wrap converts well known HTTP failures into domain errors.
func wrap(op string, err error) error {
	if statusCode(err) == http.StatusUnauthorized {
		return fmt.Errorf("%s: %w: %v", op, entities.ErrUnauthorized, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func statusCode(err error) int {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}
	return 0
}
