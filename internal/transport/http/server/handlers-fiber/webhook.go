package handlers_fiber

import (
	"fmt"
	"net/http"

	"pr-review-status/internal/entities"
	"pr-review-status/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-github/v71/github"
)

// actions that can change a PR's review status, per event.
var relabelActions = map[string]map[string]bool{
	"pull_request": {
		"opened":             true,
		"reopened":           true,
		"ready_for_review":   true,
		"converted_to_draft": true,
		"synchronize":        true,
	},
	"pull_request_review": {
		"submitted": true,
		"edited":    true,
		"dismissed": true,
	},
	"pull_request_review_thread": {
		"resolved":   true,
		"unresolved": true,
	},
}

type hookTarget struct {
	action string
	repo   *github.Repository
	number int
}

// PostGitHubHook re-labels the PR an event refers to.
func (h *Handler) PostGitHubHook(c *fiber.Ctx) error {
	eventType := c.Get(github.EventTypeHeader)
	body := c.Body()

	if len(h.secret) > 0 {
		if err := github.ValidateSignature(c.Get(github.SHA256SignatureHeader), body, h.secret); err != nil {
			h.log.Warnw("webhook signature rejected", "event", eventType, "delivery", c.Get(github.DeliveryIDHeader))
			return writeError(c, fmt.Errorf("%w: %v", entities.ErrUnauthorized, err))
		}
	}

	event, err := github.ParseWebHook(eventType, body)
	if err != nil {
		return writeError(c, fmt.Errorf("%w: %v", entities.ErrInvalidArgument, err))
	}

	target, ok := hookTargetOf(event)
	if !ok || !relabelActions[eventType][target.action] {
		return c.Status(http.StatusOK).JSON(dto.WebhookResult{Event: eventType, Action: target.action, Ignored: true})
	}

	repo, err := entities.ParseRepository(target.repo.GetFullName())
	if err != nil {
		repo = entities.Repository{Owner: target.repo.GetOwner().GetLogin(), Name: target.repo.GetName()}
	}

	res, err := h.uc.LabelPullRequest(c.UserContext(), repo, target.number)
	if err != nil {
		h.log.Errorw("webhook relabel failed", "event", eventType, "repository", repo.String(), "pull_number", target.number, "error", err)
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(dto.WebhookResult{
		Event:      eventType,
		Action:     target.action,
		PullNumber: target.number,
		Status:     string(res.Status),
	})
}

func hookTargetOf(event any) (hookTarget, bool) {
	switch e := event.(type) {
	case *github.PullRequestEvent:
		return hookTarget{action: e.GetAction(), repo: e.GetRepo(), number: e.GetPullRequest().GetNumber()}, true
	case *github.PullRequestReviewEvent:
		return hookTarget{action: e.GetAction(), repo: e.GetRepo(), number: e.GetPullRequest().GetNumber()}, true
	case *github.PullRequestReviewThreadEvent:
		return hookTarget{action: e.GetAction(), repo: e.GetRepo(), number: e.GetPullRequest().GetNumber()}, true
	default:
		return hookTarget{}, false
	}
}
