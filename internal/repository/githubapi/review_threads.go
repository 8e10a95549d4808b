package githubapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"pr-review-status/internal/entities"
)

const reviewThreadsQuery = `query($owner: String!, $repo: String!, $pull_number: Int!, $cursor: String) {
  repository(owner: $owner, name: $repo) {
    pullRequest(number: $pull_number) {
      reviewThreads(first: 100, after: $cursor) {
        nodes {
          id
          isResolved
          comments(first: 1) {
            nodes {
              author {
                login
              }
            }
          }
        }
        pageInfo {
          hasNextPage
          endCursor
        }
      }
    }
  }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type reviewThreadsResponse struct {
	Data *struct {
		Repository *struct {
			PullRequest *struct {
				ReviewThreads *reviewThreadConnection `json:"reviewThreads"`
			} `json:"pullRequest"`
		} `json:"repository"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type reviewThreadConnection struct {
	Nodes    []*reviewThreadNode `json:"nodes"`
	PageInfo struct {
		HasNextPage bool    `json:"hasNextPage"`
		EndCursor   *string `json:"endCursor"`
	} `json:"pageInfo"`
}

type reviewThreadNode struct {
	ID         string `json:"id"`
	IsResolved bool   `json:"isResolved"`
	Comments   *struct {
		Nodes []*struct {
			Author *struct {
				Login string `json:"login"`
			} `json:"author"`
		} `json:"nodes"`
	} `json:"comments"`
}

// ReviewThreads fetches one page of review threads after cursor ("" for the first page).
func (g *GitHub) ReviewThreads(ctx context.Context, repo entities.Repository, number int, cursor string) (*entities.ReviewThreadPage, error) {
	vars := map[string]any{
		"owner":       repo.Owner,
		"repo":        repo.Name,
		"pull_number": number,
		"cursor":      nil,
	}
	if cursor != "" {
		vars["cursor"] = cursor
	}

	req, err := g.client.NewRequest(http.MethodPost, g.graphqlURL, graphqlRequest{Query: reviewThreadsQuery, Variables: vars})
	if err != nil {
		return nil, fmt.Errorf("review threads request: %w", err)
	}

	var out reviewThreadsResponse
	if _, err := g.client.Do(ctx, req, &out); err != nil {
		return nil, wrap("review threads", err)
	}
	if len(out.Errors) > 0 {
		msgs := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("review threads: graphql: %s", strings.Join(msgs, "; "))
	}

	conn := threadConnection(&out)
	if conn == nil || conn.Nodes == nil {
		return nil, fmt.Errorf("review threads of #%d: %w", number, entities.ErrMalformedResponse)
	}

	page := &entities.ReviewThreadPage{
		Threads:     make([]entities.ReviewThread, 0, len(conn.Nodes)),
		HasNextPage: conn.PageInfo.HasNextPage,
	}
	if conn.PageInfo.EndCursor != nil {
		page.EndCursor = *conn.PageInfo.EndCursor
	}
	for _, n := range conn.Nodes {
		if n == nil {
			continue
		}
		page.Threads = append(page.Threads, entities.ReviewThread{
			IsResolved:         n.IsResolved,
			FirstCommentAuthor: firstCommentAuthor(n),
		})
	}
	return page, nil
}

func threadConnection(out *reviewThreadsResponse) *reviewThreadConnection {
	if out.Data == nil || out.Data.Repository == nil || out.Data.Repository.PullRequest == nil {
		return nil
	}
	return out.Data.Repository.PullRequest.ReviewThreads
}

func firstCommentAuthor(n *reviewThreadNode) *entities.User {
	if n.Comments == nil || len(n.Comments.Nodes) == 0 {
		return nil
	}
	first := n.Comments.Nodes[0]
	if first == nil || first.Author == nil {
		return nil
	}
	return &entities.User{Login: first.Author.Login}
}
