package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/dto"
	"github.com/noah-isme/scholarship-portal-api/internal/models"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

type settingsRepository interface {
	Get(ctx context.Context) (*models.ApplicationSettings, error)
	Upsert(ctx context.Context, open bool, updatedBy string) (*models.ApplicationSettings, error)
}

// SettingsService reads and toggles the submission gate. The gate defaults
// open: a portal that silently refuses applicants is worse than one that
// briefly accepts a few late ones, so a missing row reads as open and a
// storage failure reads as open when FailOpen is set.
type SettingsService struct {
	repo      settingsRepository
	auditor   rosterAuditor
	validator *validator.Validate
	logger    *zap.Logger
	failOpen  bool
}

// NewSettingsService constructs a SettingsService instance.
func NewSettingsService(repo settingsRepository, auditor rosterAuditor, validate *validator.Validate, logger *zap.Logger, failOpen bool) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SettingsService{repo: repo, auditor: auditor, validator: validate, logger: logger, failOpen: failOpen}
}

// Status returns the public view of the gate.
func (s *SettingsService) Status(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &dto.SettingsResponse{ApplicationsOpen: true}, nil
		}
		if s.failOpen {
			s.logger.Warn("settings read failed, treating gate as open", zap.Error(err))
			return &dto.SettingsResponse{ApplicationsOpen: true}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read settings")
	}
	updatedAt := settings.UpdatedAt
	return &dto.SettingsResponse{
		ApplicationsOpen: settings.ApplicationsOpen,
		UpdatedBy:        settings.UpdatedByEmail,
		UpdatedAt:        &updatedAt,
	}, nil
}

// IsOpen reports whether submissions are currently accepted.
func (s *SettingsService) IsOpen(ctx context.Context) (bool, error) {
	status, err := s.Status(ctx)
	if err != nil {
		return false, err
	}
	return status.ApplicationsOpen, nil
}

// Toggle flips the gate, recording which admin did it.
func (s *SettingsService) Toggle(ctx context.Context, actorEmail string, req dto.ToggleSettingsRequest) (*dto.SettingsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}

	settings, err := s.repo.Upsert(ctx, *req.Open, normalizeEmail(actorEmail))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update settings")
	}

	if err := s.auditor.CreateAuditLog(ctx, &models.AuditLog{
		Action:    models.AuditActionSettingsToggle,
		Resource:  "settings",
		NewValues: boolJSON("applications_open", settings.ApplicationsOpen),
	}); err != nil {
		s.logger.Warn("failed to record settings toggle audit log", zap.Error(err))
	}

	updatedAt := settings.UpdatedAt
	return &dto.SettingsResponse{
		ApplicationsOpen: settings.ApplicationsOpen,
		UpdatedBy:        settings.UpdatedByEmail,
		UpdatedAt:        &updatedAt,
	}, nil
}

func boolJSON(key string, value bool) []byte {
	if value {
		return []byte(`{"` + key + `":true}`)
	}
	return []byte(`{"` + key + `":false}`)
}
