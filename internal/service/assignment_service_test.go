package service

import (
	"context"
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

func adminEntries(emails ...string) []models.AdminEntry {
	entries := make([]models.AdminEntry, len(emails))
	for i, email := range emails {
		entries[i] = models.AdminEntry{Email: email}
	}
	return entries
}

func reviewerEntries(emails ...string) []models.ReviewerEntry {
	entries := make([]models.ReviewerEntry, len(emails))
	for i, email := range emails {
		entries[i] = models.ReviewerEntry{Email: email}
	}
	return entries
}

type mockAssignmentRepo struct {
	unassignedIDs []string
	assignments   map[string]string
	unassignCount int64
}

func (m *mockAssignmentRepo) ListUnassignedIDs(ctx context.Context) ([]string, error) {
	return m.unassignedIDs, nil
}

func (m *mockAssignmentRepo) Assign(ctx context.Context, id, assigneeEmail string, at time.Time) (bool, error) {
	if m.assignments == nil {
		m.assignments = make(map[string]string)
	}
	m.assignments[id] = assigneeEmail
	return true, nil
}

func (m *mockAssignmentRepo) UnassignAll(ctx context.Context) (int64, error) {
	return m.unassignCount, nil
}

func newAssignmentService(repo *mockAssignmentRepo, roster *mockRosterRepo) *AssignmentService {
	return NewAssignmentService(repo, roster, &mockAuditor{}, validator.New(), zap.NewNop())
}

func TestAutoAssignRoundRobin(t *testing.T) {
	repo := &mockAssignmentRepo{
		unassignedIDs: []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"},
	}
	roster := &mockRosterRepo{
		adminList:    adminEntries("admin@example.com"),
		reviewerList: reviewerEntries("r1@example.com", "r2@example.com"),
	}
	svc := newAssignmentService(repo, roster)

	result, err := svc.AutoAssign(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, result.Assigned)

	assert.Equal(t, "admin@example.com", repo.assignments["a1"])
	assert.Equal(t, "r1@example.com", repo.assignments["a2"])
	assert.Equal(t, "r2@example.com", repo.assignments["a3"])
	assert.Equal(t, "admin@example.com", repo.assignments["a4"])
	assert.Equal(t, "r1@example.com", repo.assignments["a5"])
	assert.Equal(t, "r2@example.com", repo.assignments["a6"])
	assert.Equal(t, "admin@example.com", repo.assignments["a7"])
}

func TestAutoAssignEmptyPoolIsZeroCountSuccess(t *testing.T) {
	repo := &mockAssignmentRepo{unassignedIDs: []string{"a1"}}
	roster := &mockRosterRepo{}
	svc := newAssignmentService(repo, roster)

	result, err := svc.AutoAssign(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Assigned)
	assert.Empty(t, repo.assignments)
}

func TestAutoAssignEmptyBacklog(t *testing.T) {
	repo := &mockAssignmentRepo{}
	roster := &mockRosterRepo{adminList: adminEntries("admin@example.com")}
	svc := newAssignmentService(repo, roster)

	result, err := svc.AutoAssign(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Assigned)
}

func TestManualAssignRejectsNonMember(t *testing.T) {
	repo := &mockAssignmentRepo{}
	roster := &mockRosterRepo{admins: map[string]bool{}, reviewers: map[string]bool{}}
	svc := newAssignmentService(repo, roster)

	_, err := svc.ManualAssign(context.Background(), dto.AssignApplicationsRequest{
		ApplicationIDs: []string{"a1"},
		AssignToEmail:  "stranger@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.assignments)
}

func TestManualAssignToReviewer(t *testing.T) {
	repo := &mockAssignmentRepo{}
	roster := &mockRosterRepo{
		admins:    map[string]bool{},
		reviewers: map[string]bool{"reviewer@example.com": true},
	}
	svc := newAssignmentService(repo, roster)

	result, err := svc.ManualAssign(context.Background(), dto.AssignApplicationsRequest{
		ApplicationIDs: []string{"a1", "a2"},
		AssignToEmail:  "Reviewer@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Assigned)
	assert.Equal(t, "reviewer@example.com", repo.assignments["a1"])
	assert.Equal(t, "reviewer@example.com", repo.assignments["a2"])
}

func TestUnassignAllReportsReverted(t *testing.T) {
	repo := &mockAssignmentRepo{unassignCount: 5}
	svc := newAssignmentService(repo, &mockRosterRepo{})

	result, err := svc.UnassignAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, result.Unassigned)
}
