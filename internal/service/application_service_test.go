package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/dto"
	"github.com/noah-isme/scholarship-portal-api/internal/models"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

type mockApplicationRepo struct {
	app          *models.Application
	findErr      error
	draftApplied bool
	draftSaved   []byte
	submitOK     bool
	submitted    bool
	deleted      bool
}

func (m *mockApplicationRepo) FindByUserID(ctx context.Context, userID string) (*models.Application, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.app, nil
}

func (m *mockApplicationRepo) UpsertDraft(ctx context.Context, userID string, essayOne, essayTwo string, experience []byte) (bool, error) {
	m.draftSaved = experience
	return m.draftApplied, nil
}

func (m *mockApplicationRepo) Submit(ctx context.Context, userID string, essayOne, essayTwo string, experience []byte, needsFinancialAid bool) (bool, error) {
	m.submitted = true
	return m.submitOK, nil
}

func (m *mockApplicationRepo) DeleteDraft(ctx context.Context, userID string) error {
	m.deleted = true
	return nil
}

type mockProfileRepo struct {
	updated        bool
	preferredEmail string
}

func (m *mockProfileRepo) UpdateProfile(ctx context.Context, id string, firstName, lastName, preferredEmail, location string) error {
	m.updated = true
	m.preferredEmail = preferredEmail
	return nil
}

type mockGate struct {
	open bool
	err  error
}

func (m *mockGate) IsOpen(ctx context.Context) (bool, error) {
	return m.open, m.err
}

func validSubmitRequest() dto.SubmitApplicationRequest {
	aid := true
	return dto.SubmitApplicationRequest{
		EssayOne:              "essay one",
		EssayTwo:              "essay two",
		ProgrammingExperience: "two years",
		Languages:             []string{"Go"},
		ResearchExperience:    "none yet",
		GradeLevel:            "11",
		NeedsFinancialAid:     &aid,
		ClubsActivities:       "robotics",
		FinalThoughts:         "thanks",
		FirstName:             "Ada",
		LastName:              "Lovelace",
		PreferredEmail:        "Ada@Example.com",
		Location:              "London",
	}
}

func newApplicationService(repo *mockApplicationRepo, profiles *mockProfileRepo, gate *mockGate) *ApplicationService {
	return NewApplicationService(repo, profiles, gate, validator.New(), zap.NewNop())
}

func TestGetMissingRecord(t *testing.T) {
	repo := &mockApplicationRepo{findErr: sql.ErrNoRows}
	svc := newApplicationService(repo, &mockProfileRepo{}, &mockGate{open: true})

	_, err := svc.Get(context.Background(), "user-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGetDecodesExperience(t *testing.T) {
	experience, _ := json.Marshal(models.ExperienceData{GradeLevel: "12", Languages: []string{"Go", "Python"}})
	repo := &mockApplicationRepo{app: &models.Application{ID: "app-1", IsDraft: true, ExperienceData: experience}}
	svc := newApplicationService(repo, &mockProfileRepo{}, &mockGate{open: true})

	resp, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, resp.Experience)
	assert.Equal(t, "12", resp.Experience.GradeLevel)
	assert.Equal(t, []string{"Go", "Python"}, resp.Experience.Languages)
}

func TestSaveDraftAcceptsPartialContent(t *testing.T) {
	repo := &mockApplicationRepo{draftApplied: true}
	svc := newApplicationService(repo, &mockProfileRepo{}, &mockGate{open: false})

	err := svc.SaveDraft(context.Background(), "user-1", dto.SaveDraftRequest{EssayOne: "only this"})
	require.NoError(t, err)
	assert.NotEmpty(t, repo.draftSaved)
}

func TestSaveDraftAfterSubmissionConflicts(t *testing.T) {
	repo := &mockApplicationRepo{draftApplied: false}
	svc := newApplicationService(repo, &mockProfileRepo{}, &mockGate{open: true})

	err := svc.SaveDraft(context.Background(), "user-1", dto.SaveDraftRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadySubmitted.Code, appErrors.FromError(err).Code)
}

func TestSubmitIncompletePayload(t *testing.T) {
	repo := &mockApplicationRepo{submitOK: true}
	svc := newApplicationService(repo, &mockProfileRepo{}, &mockGate{open: true})

	req := validSubmitRequest()
	req.EssayOne = ""
	err := svc.Submit(context.Background(), "user-1", req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.False(t, repo.submitted)
}

func TestSubmitWhileClosed(t *testing.T) {
	repo := &mockApplicationRepo{submitOK: true}
	svc := newApplicationService(repo, &mockProfileRepo{}, &mockGate{open: false})

	err := svc.Submit(context.Background(), "user-1", validSubmitRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSubmissionClosed.Code, appErrors.FromError(err).Code)
	assert.False(t, repo.submitted)
}

func TestSubmitUpdatesProfileAndFlipsDraft(t *testing.T) {
	repo := &mockApplicationRepo{submitOK: true}
	profiles := &mockProfileRepo{}
	svc := newApplicationService(repo, profiles, &mockGate{open: true})

	err := svc.Submit(context.Background(), "user-1", validSubmitRequest())
	require.NoError(t, err)
	assert.True(t, repo.submitted)
	assert.True(t, profiles.updated)
	assert.Equal(t, "ada@example.com", profiles.preferredEmail)
}

func TestSubmitTwiceConflicts(t *testing.T) {
	repo := &mockApplicationRepo{submitOK: false}
	svc := newApplicationService(repo, &mockProfileRepo{}, &mockGate{open: true})

	err := svc.Submit(context.Background(), "user-1", validSubmitRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadySubmitted.Code, appErrors.FromError(err).Code)
}

func TestDeleteDraft(t *testing.T) {
	repo := &mockApplicationRepo{}
	svc := newApplicationService(repo, &mockProfileRepo{}, &mockGate{open: true})

	err := svc.DeleteDraft(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, repo.deleted)
}
