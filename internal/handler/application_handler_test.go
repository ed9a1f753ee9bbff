package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/dto"
	"github.com/noah-isme/scholarship-portal-api/internal/middleware"
	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/internal/service"
)

type applicationRepoStub struct {
	app          *models.Application
	findErr      error
	draftApplied bool
	submitOK     bool
}

func (s *applicationRepoStub) FindByUserID(ctx context.Context, userID string) (*models.Application, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.app, nil
}

func (s *applicationRepoStub) UpsertDraft(ctx context.Context, userID string, essayOne, essayTwo string, experience []byte) (bool, error) {
	return s.draftApplied, nil
}

func (s *applicationRepoStub) Submit(ctx context.Context, userID string, essayOne, essayTwo string, experience []byte, needsFinancialAid bool) (bool, error) {
	return s.submitOK, nil
}

func (s *applicationRepoStub) DeleteDraft(ctx context.Context, userID string) error {
	return nil
}

type profileRepoStub struct{}

func (profileRepoStub) UpdateProfile(ctx context.Context, id string, firstName, lastName, preferredEmail, location string) error {
	return nil
}

type gateStub struct {
	open bool
}

func (g gateStub) IsOpen(ctx context.Context) (bool, error) {
	return g.open, nil
}

const testDashboardURL = "https://portal.example.com/dashboard"

func newApplicationTestHandler(repo *applicationRepoStub, open bool) *ApplicationHandler {
	svc := service.NewApplicationService(repo, profileRepoStub{}, gateStub{open: open}, nil, zap.NewNop())
	return NewApplicationHandler(svc, nil, testDashboardURL)
}

func submitBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	aid := true
	payload := dto.SubmitApplicationRequest{
		EssayOne:              "essay one",
		EssayTwo:              "essay two",
		ProgrammingExperience: "two years",
		Languages:             []string{"Go"},
		ResearchExperience:    "none",
		GradeLevel:            "11",
		NeedsFinancialAid:     &aid,
		ClubsActivities:       "robotics",
		FinalThoughts:         "thanks",
		FirstName:             "Ada",
		LastName:              "Lovelace",
		PreferredEmail:        "ada@example.com",
		Location:              "London",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func sessionContext(t *testing.T, w *httptest.ResponseRecorder, method, target string, body *bytes.Buffer) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, target, body)
	} else {
		req, err = http.NewRequest(method, target, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.SessionClaims{UserID: "user-1", Email: "applicant@example.com"})
	return c
}

func TestSubmitRedirectsOnSuccess(t *testing.T) {
	handler := newApplicationTestHandler(&applicationRepoStub{submitOK: true}, true)

	w := httptest.NewRecorder()
	c := sessionContext(t, w, http.MethodPost, "/applications/submit", submitBody(t))

	handler.Submit(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, testDashboardURL+"?success=submitted", w.Header().Get("Location"))
}

func TestSubmitCountsAcceptedSubmissions(t *testing.T) {
	metrics := service.NewMetricsService()
	svc := service.NewApplicationService(&applicationRepoStub{submitOK: true}, profileRepoStub{}, gateStub{open: true}, nil, zap.NewNop())
	handler := NewApplicationHandler(svc, metrics, testDashboardURL)

	w := httptest.NewRecorder()
	c := sessionContext(t, w, http.MethodPost, "/applications/submit", submitBody(t))
	handler.Submit(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusSeeOther, w.Code)

	scrape := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(), "application_submissions_total 1")
}

func TestSubmitRedirectsWhenClosed(t *testing.T) {
	handler := newApplicationTestHandler(&applicationRepoStub{submitOK: true}, false)

	w := httptest.NewRecorder()
	c := sessionContext(t, w, http.MethodPost, "/applications/submit", submitBody(t))

	handler.Submit(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, testDashboardURL+"?error=applications_closed", w.Header().Get("Location"))
}

func TestSubmitRedirectsWhenAlreadySubmitted(t *testing.T) {
	handler := newApplicationTestHandler(&applicationRepoStub{submitOK: false}, true)

	w := httptest.NewRecorder()
	c := sessionContext(t, w, http.MethodPost, "/applications/submit", submitBody(t))

	handler.Submit(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, testDashboardURL+"?error=already_submitted", w.Header().Get("Location"))
}

func TestSubmitIncompletePayloadIsJSONError(t *testing.T) {
	handler := newApplicationTestHandler(&applicationRepoStub{submitOK: true}, true)

	w := httptest.NewRecorder()
	c := sessionContext(t, w, http.MethodPost, "/applications/submit", bytes.NewBufferString(`{"essay_one":"only"}`))

	handler.Submit(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestMeWithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newApplicationTestHandler(&applicationRepoStub{}, true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/applications/me", nil)
	c.Request = req

	handler.Me(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSaveDraftConflictAfterSubmission(t *testing.T) {
	handler := newApplicationTestHandler(&applicationRepoStub{draftApplied: false}, true)

	w := httptest.NewRecorder()
	c := sessionContext(t, w, http.MethodPut, "/applications/draft", bytes.NewBufferString(`{"essay_one":"draft"}`))

	handler.SaveDraft(c)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ALREADY_SUBMITTED")
}

func TestDeleteDraftNoContent(t *testing.T) {
	handler := newApplicationTestHandler(&applicationRepoStub{}, true)

	w := httptest.NewRecorder()
	c := sessionContext(t, w, http.MethodDelete, "/applications/draft", nil)

	handler.DeleteDraft(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
}
