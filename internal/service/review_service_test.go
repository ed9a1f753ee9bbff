package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/dto"
	"github.com/noah-isme/scholarship-portal-api/internal/models"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

type mockReviewRepo struct {
	app          *models.Application
	findErr      error
	status       models.ReviewStatus
	reviewedAt   *time.Time
	statusCalled bool
	grade        *int
	notes        *string
	reviewSaved  bool
}

func (m *mockReviewRepo) FindByID(ctx context.Context, id string) (*models.Application, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.app, nil
}

func (m *mockReviewRepo) UpdateStatus(ctx context.Context, id string, status models.ReviewStatus, reviewedAt *time.Time) error {
	m.statusCalled = true
	m.status = status
	m.reviewedAt = reviewedAt
	return nil
}

func (m *mockReviewRepo) SaveReview(ctx context.Context, id string, grade *int, notes *string) error {
	m.reviewSaved = true
	m.grade = grade
	m.notes = notes
	return nil
}

func submittedApp(assignedTo string) *models.Application {
	app := &models.Application{ID: "app-1", IsDraft: false, ReviewStatus: models.ReviewStatusAssigned}
	if assignedTo != "" {
		app.AssignedTo = &assignedTo
	}
	return app
}

func newReviewService(repo *mockReviewRepo) *ReviewService {
	return NewReviewService(repo, validator.New(), zap.NewNop())
}

func TestUpdateStatusUnknownTarget(t *testing.T) {
	repo := &mockReviewRepo{app: submittedApp("reviewer@example.com")}
	svc := newReviewService(repo)

	_, err := svc.UpdateStatus(context.Background(), "admin@example.com", models.RoleAdmin, "app-1", dto.UpdateReviewStatusRequest{Status: "archived"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.False(t, repo.statusCalled)
}

func TestUpdateStatusUnassignedNotRequestable(t *testing.T) {
	repo := &mockReviewRepo{app: submittedApp("reviewer@example.com")}
	svc := newReviewService(repo)

	_, err := svc.UpdateStatus(context.Background(), "admin@example.com", models.RoleAdmin, "app-1", dto.UpdateReviewStatusRequest{Status: "unassigned"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUpdateStatusMissingApplication(t *testing.T) {
	repo := &mockReviewRepo{findErr: sql.ErrNoRows}
	svc := newReviewService(repo)

	_, err := svc.UpdateStatus(context.Background(), "admin@example.com", models.RoleAdmin, "missing", dto.UpdateReviewStatusRequest{Status: "in_review"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUpdateStatusReviewerCrossAssignmentForbidden(t *testing.T) {
	repo := &mockReviewRepo{app: submittedApp("other@example.com")}
	svc := newReviewService(repo)

	_, err := svc.UpdateStatus(context.Background(), "reviewer@example.com", models.RoleReviewer, "app-1", dto.UpdateReviewStatusRequest{Status: "in_review"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestUpdateStatusAdminActsOnAnyApplication(t *testing.T) {
	repo := &mockReviewRepo{app: submittedApp("other@example.com")}
	svc := newReviewService(repo)

	result, err := svc.UpdateStatus(context.Background(), "admin@example.com", models.RoleAdmin, "app-1", dto.UpdateReviewStatusRequest{Status: "in_review"})
	require.NoError(t, err)
	assert.Equal(t, "in_review", result.Status)
	assert.Nil(t, repo.reviewedAt)
}

func TestUpdateStatusRequiresAssignee(t *testing.T) {
	repo := &mockReviewRepo{app: &models.Application{ID: "app-1", IsDraft: false, ReviewStatus: models.ReviewStatusUnassigned}}
	svc := newReviewService(repo)

	_, err := svc.UpdateStatus(context.Background(), "admin@example.com", models.RoleAdmin, "app-1", dto.UpdateReviewStatusRequest{Status: "in_review"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.False(t, repo.statusCalled)
}

func TestUpdateStatusCompletedStampsReviewedAt(t *testing.T) {
	repo := &mockReviewRepo{app: submittedApp("reviewer@example.com")}
	svc := newReviewService(repo)

	_, err := svc.UpdateStatus(context.Background(), "Reviewer@Example.com", models.RoleReviewer, "app-1", dto.UpdateReviewStatusRequest{Status: "completed"})
	require.NoError(t, err)
	require.NotNil(t, repo.reviewedAt)
	assert.WithinDuration(t, time.Now().UTC(), *repo.reviewedAt, time.Minute)
}

func TestUpdateStatusReopeningClearsReviewedAt(t *testing.T) {
	repo := &mockReviewRepo{app: submittedApp("reviewer@example.com")}
	svc := newReviewService(repo)

	_, err := svc.UpdateStatus(context.Background(), "reviewer@example.com", models.RoleReviewer, "app-1", dto.UpdateReviewStatusRequest{Status: "in_review"})
	require.NoError(t, err)
	assert.Nil(t, repo.reviewedAt)
}

func TestSaveReviewGradeBounds(t *testing.T) {
	repo := &mockReviewRepo{app: submittedApp("reviewer@example.com")}
	svc := newReviewService(repo)

	for _, grade := range []int{0, 6, -1} {
		g := grade
		err := svc.SaveReview(context.Background(), "reviewer@example.com", models.RoleReviewer, "app-1", dto.SaveReviewRequest{Grade: &g})
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
	assert.False(t, repo.reviewSaved)
}

func TestSaveReviewNilGradeClears(t *testing.T) {
	repo := &mockReviewRepo{app: submittedApp("reviewer@example.com")}
	svc := newReviewService(repo)

	notes := "solid essays"
	err := svc.SaveReview(context.Background(), "reviewer@example.com", models.RoleReviewer, "app-1", dto.SaveReviewRequest{Grade: nil, Notes: &notes})
	require.NoError(t, err)
	assert.True(t, repo.reviewSaved)
	assert.Nil(t, repo.grade)
	require.NotNil(t, repo.notes)
	assert.Equal(t, "solid essays", *repo.notes)
}

func TestSaveReviewValidGrade(t *testing.T) {
	repo := &mockReviewRepo{app: submittedApp("reviewer@example.com")}
	svc := newReviewService(repo)

	grade := 5
	err := svc.SaveReview(context.Background(), "reviewer@example.com", models.RoleReviewer, "app-1", dto.SaveReviewRequest{Grade: &grade})
	require.NoError(t, err)
	require.NotNil(t, repo.grade)
	assert.Equal(t, 5, *repo.grade)
}

func TestReviewOnDraftRejected(t *testing.T) {
	repo := &mockReviewRepo{app: &models.Application{ID: "app-1", IsDraft: true}}
	svc := newReviewService(repo)

	_, err := svc.UpdateStatus(context.Background(), "admin@example.com", models.RoleAdmin, "app-1", dto.UpdateReviewStatusRequest{Status: "assigned"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
