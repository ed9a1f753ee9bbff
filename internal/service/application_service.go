package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/dto"
	"github.com/noah-isme/scholarship-portal-api/internal/models"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

type applicationRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.Application, error)
	UpsertDraft(ctx context.Context, userID string, essayOne, essayTwo string, experience []byte) (bool, error)
	Submit(ctx context.Context, userID string, essayOne, essayTwo string, experience []byte, needsFinancialAid bool) (bool, error)
	DeleteDraft(ctx context.Context, userID string) error
}

type applicantProfileRepository interface {
	UpdateProfile(ctx context.Context, id string, firstName, lastName, preferredEmail, location string) error
}

type submissionGate interface {
	IsOpen(ctx context.Context) (bool, error)
}

// ApplicationService handles the applicant-facing record lifecycle. A user
// holds at most one record which moves from draft to submitted exactly once;
// the conditional writes in the repository enforce that under concurrency.
type ApplicationService struct {
	repo      applicationRepository
	profiles  applicantProfileRepository
	gate      submissionGate
	validator *validator.Validate
	logger    *zap.Logger
}

// NewApplicationService constructs an ApplicationService instance.
func NewApplicationService(repo applicationRepository, profiles applicantProfileRepository, gate submissionGate, validate *validator.Validate, logger *zap.Logger) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ApplicationService{repo: repo, profiles: profiles, gate: gate, validator: validate, logger: logger}
}

// Get returns the caller's own record.
func (s *ApplicationService) Get(ctx context.Context, userID string) (*dto.ApplicationResponse, error) {
	app, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no application on file")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	return toApplicationResponse(app), nil
}

// SaveDraft upserts the caller's draft. Drafts are intentionally lax: no
// field is required and no gate check applies, so applicants can stash
// partial work at any time. A record that has already been submitted is
// immutable and yields a conflict.
func (s *ApplicationService) SaveDraft(ctx context.Context, userID string, req dto.SaveDraftRequest) error {
	experience, err := json.Marshal(models.ExperienceData{
		ProgrammingExperience: req.ProgrammingExperience,
		Languages:             req.Languages,
		ResearchExperience:    req.ResearchExperience,
		GradeLevel:            req.GradeLevel,
		ClubsActivities:       req.ClubsActivities,
		FinalThoughts:         req.FinalThoughts,
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode experience data")
	}

	applied, err := s.repo.UpsertDraft(ctx, userID, req.EssayOne, req.EssayTwo, experience)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save draft")
	}
	if !applied {
		return appErrors.Clone(appErrors.ErrAlreadySubmitted, "")
	}
	return nil
}

// Submit validates the full payload, checks the gate, stores the profile
// fields on the account and flips the record to submitted. The flip happens
// at most once; a second attempt reports the existing submission.
func (s *ApplicationService) Submit(ctx context.Context, userID string, req dto.SubmitApplicationRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "application is incomplete")
	}

	open, err := s.gate.IsOpen(ctx)
	if err != nil {
		return appErrors.FromError(err)
	}
	if !open {
		return appErrors.Clone(appErrors.ErrSubmissionClosed, "")
	}

	experience, err := json.Marshal(models.ExperienceData{
		ProgrammingExperience: req.ProgrammingExperience,
		Languages:             req.Languages,
		ResearchExperience:    req.ResearchExperience,
		GradeLevel:            req.GradeLevel,
		ClubsActivities:       req.ClubsActivities,
		FinalThoughts:         req.FinalThoughts,
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode experience data")
	}

	if err := s.profiles.UpdateProfile(ctx, userID, req.FirstName, req.LastName, normalizeEmail(req.PreferredEmail), req.Location); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}

	applied, err := s.repo.Submit(ctx, userID, req.EssayOne, req.EssayTwo, experience, *req.NeedsFinancialAid)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit application")
	}
	if !applied {
		return appErrors.Clone(appErrors.ErrAlreadySubmitted, "")
	}
	return nil
}

// DeleteDraft discards the caller's draft. Deleting a nonexistent draft is a
// no-op; submitted records never match the delete.
func (s *ApplicationService) DeleteDraft(ctx context.Context, userID string) error {
	if err := s.repo.DeleteDraft(ctx, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete draft")
	}
	return nil
}

func toApplicationResponse(app *models.Application) *dto.ApplicationResponse {
	resp := &dto.ApplicationResponse{
		ID:                app.ID,
		EssayOne:          app.EssayOne,
		EssayTwo:          app.EssayTwo,
		NeedsFinancialAid: app.NeedsFinancialAid,
		IsDraft:           app.IsDraft,
		SubmittedAt:       app.SubmittedAt,
		LastUpdated:       app.LastUpdated,
		ReviewStatus:      app.ReviewStatus,
	}
	if len(app.ExperienceData) > 0 {
		var experience models.ExperienceData
		if err := json.Unmarshal(app.ExperienceData, &experience); err == nil {
			resp.Experience = &experience
		}
	}
	return resp
}
