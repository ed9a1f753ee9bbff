package service

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

type mockAuthUserRepo struct {
	user      *models.User
	upserted  []string
	auditLogs []*models.AuditLog
}

func (m *mockAuthUserRepo) UpsertByEmail(ctx context.Context, email, name string) (*models.User, error) {
	m.upserted = append(m.upserted, email)
	if m.user != nil {
		return m.user, nil
	}
	return &models.User{ID: "user-1", Email: email, Name: name}, nil
}

func (m *mockAuthUserRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

type mockStateStore struct {
	saved      map[string]time.Duration
	consumeErr error
	consumed   []string
}

func (m *mockStateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	if m.saved == nil {
		m.saved = make(map[string]time.Duration)
	}
	m.saved[state] = ttl
	return nil
}

func (m *mockStateStore) Consume(ctx context.Context, state string) error {
	if m.consumeErr != nil {
		return m.consumeErr
	}
	m.consumed = append(m.consumed, state)
	return nil
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func providerClient(t *testing.T, tokenBody, userInfoBody string) *http.Client {
	t.Helper()
	return &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		var body string
		switch {
		case strings.Contains(req.URL.Host, "oauth2.googleapis.com"):
			body = tokenBody
		case strings.Contains(req.URL.Host, "www.googleapis.com"):
			body = userInfoBody
		default:
			t.Fatalf("unexpected request to %s", req.URL)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	})}
}

func testAuthConfig() AuthConfig {
	return AuthConfig{
		ClientID:      "client-id",
		ClientSecret:  "client-secret",
		RedirectURL:   "https://portal.example.com/api/v1/auth/callback",
		StateTTL:      10 * time.Minute,
		SessionSecret: "session-secret",
		SessionTTL:    time.Hour,
	}
}

func TestLoginURLPersistsState(t *testing.T) {
	states := &mockStateStore{}
	svc := NewAuthService(&mockAuthUserRepo{}, states, nil, zap.NewNop(), testAuthConfig())

	loginURL, err := svc.LoginURL(context.Background())
	require.NoError(t, err)

	parsed, err := url.Parse(loginURL)
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", parsed.Host)
	assert.Equal(t, "client-id", parsed.Query().Get("client_id"))
	assert.Equal(t, "code", parsed.Query().Get("response_type"))

	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)
	assert.Equal(t, 10*time.Minute, states.saved[state])
}

func TestHandleCallbackHappyPath(t *testing.T) {
	repo := &mockAuthUserRepo{}
	states := &mockStateStore{}
	client := providerClient(t,
		`{"access_token":"provider-token"}`,
		`{"id":"g-1","email":"Ada@Example.com","name":"Ada Lovelace"}`)
	svc := NewAuthService(repo, states, client, zap.NewNop(), testAuthConfig())

	user, token, err := svc.HandleCallback(context.Background(), "auth-code", "state-1", "127.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.Equal(t, []string{"state-1"}, states.consumed)
	assert.Equal(t, []string{"ada@example.com"}, repo.upserted)
	assert.Equal(t, "ada@example.com", user.Email)

	claims, err := svc.ValidateSession(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)

	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionLogin, repo.auditLogs[0].Action)
}

func TestHandleCallbackRejectsUnknownState(t *testing.T) {
	states := &mockStateStore{consumeErr: appErrors.ErrStateMismatch}
	svc := NewAuthService(&mockAuthUserRepo{}, states, providerClient(t, `{}`, `{}`), zap.NewNop(), testAuthConfig())

	_, _, err := svc.HandleCallback(context.Background(), "auth-code", "forged", "", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStateMismatch.Code, appErrors.FromError(err).Code)
}

func TestHandleCallbackMissingCode(t *testing.T) {
	svc := NewAuthService(&mockAuthUserRepo{}, &mockStateStore{}, providerClient(t, `{}`, `{}`), zap.NewNop(), testAuthConfig())

	_, _, err := svc.HandleCallback(context.Background(), "", "state", "", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestHandleCallbackEmptyProviderEmail(t *testing.T) {
	client := providerClient(t, `{"access_token":"tok"}`, `{"id":"g-1","name":"No Email"}`)
	svc := NewAuthService(&mockAuthUserRepo{}, &mockStateStore{}, client, zap.NewNop(), testAuthConfig())

	_, _, err := svc.HandleCallback(context.Background(), "code", "state", "", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestValidateSessionRejectsTampering(t *testing.T) {
	svc := NewAuthService(&mockAuthUserRepo{}, &mockStateStore{}, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.ValidateSession("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
