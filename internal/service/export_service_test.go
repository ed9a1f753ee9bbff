package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

type mockExportAppRepo struct {
	submitted []models.SubmittedApplication
	app       *models.Application
	findErr   error
}

func (m *mockExportAppRepo) ListSubmitted(ctx context.Context) ([]models.SubmittedApplication, error) {
	return m.submitted, nil
}

func (m *mockExportAppRepo) FindByID(ctx context.Context, id string) (*models.Application, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.app, nil
}

type mockExportUserRepo struct {
	user *models.User
}

func (m *mockExportUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.user == nil {
		return nil, sql.ErrNoRows
	}
	return m.user, nil
}

func TestSubmissionsCSVEmpty(t *testing.T) {
	svc := NewExportService(&mockExportAppRepo{}, &mockExportUserRepo{}, zap.NewNop())

	_, err := svc.SubmissionsCSV(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSubmissionsCSVRendersRows(t *testing.T) {
	experience, _ := json.Marshal(models.ExperienceData{
		GradeLevel: "12",
		Languages:  []string{"Go", "Python"},
	})
	submittedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assignedTo := "reviewer@example.com"
	repo := &mockExportAppRepo{submitted: []models.SubmittedApplication{
		{
			Application: models.Application{
				ID:             "app-1",
				EssayOne:       "first essay",
				EssayTwo:       "second essay",
				ExperienceData: experience,
				SubmittedAt:    &submittedAt,
				AssignedTo:     &assignedTo,
				ReviewStatus:   models.ReviewStatusAssigned,
			},
			ApplicantName:  "Ada Lovelace",
			ApplicantEmail: "ada@example.com",
		},
	}}
	svc := NewExportService(repo, &mockExportUserRepo{}, zap.NewNop())

	data, err := svc.SubmissionsCSV(context.Background())
	require.NoError(t, err)

	csv := string(data)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[0], "Review Status")
	assert.Contains(t, lines[1], "Ada Lovelace")
	assert.Contains(t, lines[1], "ada@example.com")
	assert.Contains(t, lines[1], "reviewer@example.com")
	assert.Contains(t, lines[1], "assigned")
}

func TestApplicationPDFMissing(t *testing.T) {
	repo := &mockExportAppRepo{findErr: sql.ErrNoRows}
	svc := NewExportService(repo, &mockExportUserRepo{}, zap.NewNop())

	_, err := svc.ApplicationPDF(context.Background(), "admin@example.com", models.RoleAdmin, "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestApplicationPDFRejectsDraft(t *testing.T) {
	repo := &mockExportAppRepo{app: &models.Application{ID: "app-1", IsDraft: true}}
	svc := NewExportService(repo, &mockExportUserRepo{}, zap.NewNop())

	_, err := svc.ApplicationPDF(context.Background(), "admin@example.com", models.RoleAdmin, "app-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestApplicationPDFReviewerCrossAssignmentForbidden(t *testing.T) {
	assignedTo := "other@example.com"
	repo := &mockExportAppRepo{app: &models.Application{ID: "app-1", UserID: "user-1", AssignedTo: &assignedTo}}
	svc := NewExportService(repo, &mockExportUserRepo{}, zap.NewNop())

	_, err := svc.ApplicationPDF(context.Background(), "reviewer@example.com", models.RoleReviewer, "app-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestApplicationPDFAssignedReviewerAllowed(t *testing.T) {
	assignedTo := "Reviewer@Example.com"
	submittedAt := time.Now().UTC()
	repo := &mockExportAppRepo{app: &models.Application{
		ID:          "app-1",
		UserID:      "user-1",
		AssignedTo:  &assignedTo,
		SubmittedAt: &submittedAt,
	}}
	svc := NewExportService(repo, &mockExportUserRepo{}, zap.NewNop())

	data, err := svc.ApplicationPDF(context.Background(), "reviewer@example.com", models.RoleReviewer, "app-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestApplicationPDFRenders(t *testing.T) {
	submittedAt := time.Now().UTC()
	repo := &mockExportAppRepo{app: &models.Application{
		ID:          "app-1",
		UserID:      "user-1",
		EssayOne:    "essay",
		SubmittedAt: &submittedAt,
	}}
	users := &mockExportUserRepo{user: &models.User{ID: "user-1", Name: "Ada Lovelace", Email: "ada@example.com"}}
	svc := NewExportService(repo, users, zap.NewNop())

	data, err := svc.ApplicationPDF(context.Background(), "admin@example.com", models.RoleAdmin, "app-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
