package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/dto"
	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/internal/repository"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

type rosterRepository interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
	IsReviewer(ctx context.Context, email string) (bool, error)
	ListAdmins(ctx context.Context) ([]models.AdminEntry, error)
	ListReviewers(ctx context.Context) ([]models.ReviewerEntry, error)
	AddReviewer(ctx context.Context, email string, addedBy *string) error
	RemoveAdmin(ctx context.Context, email string) (int64, error)
}

type rosterAuditor interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// RosterService resolves roles from the membership tables and manages the
// rosters themselves. Resolution is read fresh on every call; a revoked role
// takes effect on the next request regardless of session age.
type RosterService struct {
	repo      rosterRepository
	auditor   rosterAuditor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRosterService constructs a RosterService instance.
func NewRosterService(repo rosterRepository, auditor rosterAuditor, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &RosterService{repo: repo, auditor: auditor, validator: validate, logger: logger}
}

// Resolve returns the current role for an email. Admin membership wins when
// both tables somehow contain the email.
func (s *RosterService) Resolve(ctx context.Context, email string) (models.Role, error) {
	email = normalizeEmail(email)
	isAdmin, err := s.repo.IsAdmin(ctx, email)
	if err != nil {
		return models.RoleNone, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve admin role")
	}
	if isAdmin {
		return models.RoleAdmin, nil
	}
	isReviewer, err := s.repo.IsReviewer(ctx, email)
	if err != nil {
		return models.RoleNone, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve reviewer role")
	}
	if isReviewer {
		return models.RoleReviewer, nil
	}
	return models.RoleNone, nil
}

// List returns both membership sets in insertion order.
func (s *RosterService) List(ctx context.Context) (*models.Roster, error) {
	admins, err := s.repo.ListAdmins(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list admins")
	}
	reviewers, err := s.repo.ListReviewers(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reviewers")
	}
	return &models.Roster{Admins: admins, Reviewers: reviewers}, nil
}

// AddReviewer grants the reviewer role to an email. An email already holding
// either role is rejected so nobody ever carries two roles at once.
func (s *RosterService) AddReviewer(ctx context.Context, actorEmail string, req dto.AddReviewerRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reviewer payload")
	}
	email := normalizeEmail(req.Email)

	existing, err := s.Resolve(ctx, email)
	if err != nil {
		return err
	}
	if existing != models.RoleNone {
		return appErrors.Clone(appErrors.ErrConflict, "email already holds a role")
	}

	actor := normalizeEmail(actorEmail)
	if err := s.repo.AddReviewer(ctx, email, &actor); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add reviewer")
	}

	if err := s.auditor.CreateAuditLog(ctx, &models.AuditLog{
		Action:     models.AuditActionReviewerAdd,
		Resource:   "roster",
		ResourceID: &email,
		NewValues:  []byte(`{"role":"REVIEWER"}`),
	}); err != nil {
		s.logger.Warn("failed to record reviewer add audit log", zap.Error(err))
	}
	return nil
}

// RemoveAdmin revokes an admin and reverts every application assigned to that
// email in the same transaction. Admins cannot remove themselves, which keeps
// the roster from ever emptying through the API.
func (s *RosterService) RemoveAdmin(ctx context.Context, actorEmail, email string) (*dto.RemoveAdminResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email is required")
	}
	if email == normalizeEmail(actorEmail) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "admins cannot remove themselves")
	}

	unassigned, err := s.repo.RemoveAdmin(ctx, email)
	if err != nil {
		if repository.IsNoSuchAdmin(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove admin")
	}

	if err := s.auditor.CreateAuditLog(ctx, &models.AuditLog{
		Action:     models.AuditActionAdminRemove,
		Resource:   "roster",
		ResourceID: &email,
		NewValues:  []byte(`{"role":"NONE"}`),
	}); err != nil {
		s.logger.Warn("failed to record admin remove audit log", zap.Error(err))
	}

	return &dto.RemoveAdminResult{Email: email, Unassigned: int(unassigned)}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
