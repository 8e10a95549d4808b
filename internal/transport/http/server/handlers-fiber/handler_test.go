package handlers_fiber

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pr-review-status/internal/entities"
	"pr-review-status/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type ucMock struct {
	mock.Mock
}

func (m *ucMock) ClassifyPullRequest(ctx context.Context, repo entities.Repository, number int) (*entities.Classification, error) {
	args := m.Called(ctx, repo, number)
	c, _ := args.Get(0).(*entities.Classification)
	return c, args.Error(1)
}

func (m *ucMock) LabelPullRequest(ctx context.Context, repo entities.Repository, number int) (*entities.Classification, error) {
	args := m.Called(ctx, repo, number)
	c, _ := args.Get(0).(*entities.Classification)
	return c, args.Error(1)
}

func (m *ucMock) BuildReport(ctx context.Context, repo entities.Repository) (*entities.Report, error) {
	args := m.Called(ctx, repo)
	r, _ := args.Get(0).(*entities.Report)
	return r, args.Error(1)
}

func (m *ucMock) LatestStatus(ctx context.Context, repo entities.Repository, number int) (*entities.StatusRecord, error) {
	args := m.Called(ctx, repo, number)
	r, _ := args.Get(0).(*entities.StatusRecord)
	return r, args.Error(1)
}

const testSecret = "s3cr3t"

var widgets = entities.Repository{Owner: "octo", Name: "widgets"}

func newTestApp(uc *ucMock, secret string) *fiber.App {
	app := fiber.New()
	NewHandler(zap.NewNop().Sugar(), uc, secret, "memory").Register(app)
	return app
}

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func hookRequest(event string, body []byte, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/github-hook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", event)
	req.Header.Set("X-GitHub-Delivery", "72d3162e-cc78-11e3-81ab-4c9367dc0958")
	if signature != "" {
		req.Header.Set("X-Hub-Signature-256", signature)
	}
	return req
}

func pullRequestPayload(action string) []byte {
	return []byte(`{
		"action": "` + action + `",
		"number": 42,
		"pull_request": {"number": 42, "title": "Add cache", "draft": false},
		"repository": {"name": "widgets", "full_name": "octo/widgets", "owner": {"login": "octo"}}
	}`)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestPostGitHubHookRelabels(t *testing.T) {
	uc := &ucMock{}
	uc.On("LabelPullRequest", mock.Anything, widgets, 42).Return(&entities.Classification{
		PullRequest: entities.PullRequest{Number: 42},
		Status:      entities.StatusApproved,
	}, nil).Once()

	body := pullRequestPayload("synchronize")
	resp, err := newTestApp(uc, testSecret).Test(hookRequest("pull_request", body, sign(body)))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[dto.WebhookResult](t, resp)
	require.Equal(t, dto.WebhookResult{Event: "pull_request", Action: "synchronize", PullNumber: 42, Status: "approved"}, res)
	uc.AssertExpectations(t)
}

func TestPostGitHubHookReviewThread(t *testing.T) {
	uc := &ucMock{}
	uc.On("LabelPullRequest", mock.Anything, widgets, 7).Return(&entities.Classification{
		Status: entities.StatusChangesRequested,
	}, nil).Once()

	body := []byte(`{
		"action": "unresolved",
		"pull_request": {"number": 7},
		"thread": {"node_id": "PRRT_1"},
		"repository": {"name": "widgets", "full_name": "octo/widgets", "owner": {"login": "octo"}}
	}`)
	resp, err := newTestApp(uc, testSecret).Test(hookRequest("pull_request_review_thread", body, sign(body)))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "changes_requested", decode[dto.WebhookResult](t, resp).Status)
	uc.AssertExpectations(t)
}

func TestPostGitHubHookIgnored(t *testing.T) {
	tests := []struct {
		name  string
		event string
		body  []byte
	}{
		{name: "closed", event: "pull_request", body: pullRequestPayload("closed")},
		{name: "ping", event: "ping", body: []byte(`{"zen": "Keep it logically awesome.", "hook_id": 1}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &ucMock{}
			resp, err := newTestApp(uc, testSecret).Test(hookRequest(tt.event, tt.body, sign(tt.body)))
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, http.StatusOK, resp.StatusCode)
			res := decode[dto.WebhookResult](t, resp)
			require.True(t, res.Ignored)
			require.Equal(t, tt.event, res.Event)
			uc.AssertNotCalled(t, "LabelPullRequest", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPostGitHubHookBadSignature(t *testing.T) {
	uc := &ucMock{}
	body := pullRequestPayload("opened")

	for _, sig := range []string{"", "sha256=deadbeef"} {
		resp, err := newTestApp(uc, testSecret).Test(hookRequest("pull_request", body, sig))
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, dto.UNAUTHORIZED, decode[dto.ErrorResponse](t, resp).Error.Code)
		resp.Body.Close()
	}
	uc.AssertNotCalled(t, "LabelPullRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostGitHubHookWithoutSecret(t *testing.T) {
	uc := &ucMock{}
	uc.On("LabelPullRequest", mock.Anything, widgets, 42).Return(&entities.Classification{Status: entities.StatusDraft}, nil).Once()

	resp, err := newTestApp(uc, "").Test(hookRequest("pull_request", pullRequestPayload("converted_to_draft"), ""))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "draft", decode[dto.WebhookResult](t, resp).Status)
}

func TestPostGitHubHookMalformedPayload(t *testing.T) {
	uc := &ucMock{}
	body := []byte(`{"action": `)
	resp, err := newTestApp(uc, testSecret).Test(hookRequest("pull_request", body, sign(body)))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, dto.BADREQUEST, decode[dto.ErrorResponse](t, resp).Error.Code)
}

func TestPostGitHubHookLabelFailure(t *testing.T) {
	uc := &ucMock{}
	uc.On("LabelPullRequest", mock.Anything, widgets, 42).Return(nil, entities.ErrDelivery).Once()

	body := pullRequestPayload("opened")
	resp, err := newTestApp(uc, testSecret).Test(hookRequest("pull_request", body, sign(body)))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	require.Equal(t, dto.UPSTREAM, decode[dto.ErrorResponse](t, resp).Error.Code)
}

func TestGetStatus(t *testing.T) {
	runID := uuid.New()
	recordedAt := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	uc := &ucMock{}
	uc.On("LatestStatus", mock.Anything, widgets, 42).Return(&entities.StatusRecord{
		RunID:      runID,
		Repository: "octo/widgets",
		PullNumber: 42,
		Status:     entities.StatusPendingReview,
		Decision:   entities.ReviewDecision{Approvals: 1, UnresolvedThreads: 2, ThreadsComplete: true},
		RecordedAt: recordedAt,
	}, nil).Once()

	resp, err := newTestApp(uc, "").Test(httptest.NewRequest(http.MethodGet, "/status/octo/widgets/42", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decode[dto.Status](t, resp)
	require.Equal(t, runID.String(), st.RunID)
	require.Equal(t, "pending_review", st.Status)
	require.Equal(t, 1, st.Approvals)
	require.Equal(t, 2, st.UnresolvedThreads)
	require.True(t, st.ThreadsComplete)
	require.True(t, recordedAt.Equal(st.RecordedAt))
}

func TestGetStatusErrors(t *testing.T) {
	uc := &ucMock{}
	uc.On("LatestStatus", mock.Anything, widgets, 5).Return(nil, entities.ErrStatusNotFound).Once()
	app := newTestApp(uc, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/status/octo/widgets/abc", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/status/octo/widgets/5", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestGetHealth(t *testing.T) {
	resp, err := newTestApp(&ucMock{}, "").Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, dto.Health{Status: "ok", Storage: "memory"}, decode[dto.Health](t, resp))
}
