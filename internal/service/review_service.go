package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/dto"
	"github.com/noah-isme/scholarship-portal-api/internal/models"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

type reviewRepository interface {
	FindByID(ctx context.Context, id string) (*models.Application, error)
	UpdateStatus(ctx context.Context, id string, status models.ReviewStatus, reviewedAt *time.Time) error
	SaveReview(ctx context.Context, id string, grade *int, notes *string) error
}

// ReviewService applies workflow transitions and stores review outcomes.
// Admins act on any application; reviewers only on the ones assigned to
// their own email.
type ReviewService struct {
	repo      reviewRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReviewService constructs a ReviewService instance.
func NewReviewService(repo reviewRepository, validate *validator.Validate, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ReviewService{repo: repo, validator: validate, logger: logger}
}

// UpdateStatus moves an application to the requested workflow state. Only
// completed stamps reviewed_at; any other target clears it, so moving a
// completed review back to in_review drops the completion timestamp.
func (s *ReviewService) UpdateStatus(ctx context.Context, actorEmail string, actorRole models.Role, applicationID string, req dto.UpdateReviewStatusRequest) (*dto.ReviewStatusResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	target := models.ReviewStatus(req.Status)
	if !models.ValidTransitionTarget(target) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown review status")
	}

	app, err := s.loadGuarded(ctx, actorEmail, actorRole, applicationID)
	if err != nil {
		return nil, err
	}
	// Every non-unassigned status implies an assignee; assignment is the
	// only way in, so an unassigned record has no status to move.
	if app.AssignedTo == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "application has not been assigned")
	}

	var reviewedAt *time.Time
	if target == models.ReviewStatusCompleted {
		now := time.Now().UTC()
		reviewedAt = &now
	}
	if err := s.repo.UpdateStatus(ctx, app.ID, target, reviewedAt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update review status")
	}

	return &dto.ReviewStatusResponse{ApplicationID: app.ID, Status: string(target)}, nil
}

// SaveReview stores grade and notes under the same ownership guard. Grades
// run 1 through 5; a null grade clears any previous grading.
func (s *ReviewService) SaveReview(ctx context.Context, actorEmail string, actorRole models.Role, applicationID string, req dto.SaveReviewRequest) error {
	if req.Grade != nil && (*req.Grade < 1 || *req.Grade > 5) {
		return appErrors.Clone(appErrors.ErrValidation, "grade must be between 1 and 5")
	}

	app, err := s.loadGuarded(ctx, actorEmail, actorRole, applicationID)
	if err != nil {
		return err
	}

	if err := s.repo.SaveReview(ctx, app.ID, req.Grade, req.Notes); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save review")
	}
	return nil
}

func (s *ReviewService) loadGuarded(ctx context.Context, actorEmail string, actorRole models.Role, applicationID string) (*models.Application, error) {
	app, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	if app.IsDraft {
		return nil, appErrors.Clone(appErrors.ErrValidation, "application has not been submitted")
	}
	if actorRole != models.RoleAdmin {
		if app.AssignedTo == nil || normalizeEmail(*app.AssignedTo) != normalizeEmail(actorEmail) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "application is not assigned to you")
		}
	}
	return app, nil
}
