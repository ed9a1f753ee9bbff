package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/dto"
	"github.com/noah-isme/scholarship-portal-api/internal/models"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

// WipeConfirmationCode is the literal an admin must type to run the wipe.
const WipeConfirmationCode = "WIPE_ALL_DATA"

type wipeApplicationRepository interface {
	DeleteAll(ctx context.Context) (int64, error)
}

type wipeUserRepository interface {
	DeleteAllExcept(ctx context.Context, keepEmails []string) (int64, error)
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type wipeRoster interface {
	AdminEmails(ctx context.Context) ([]string, error)
}

// MaintenanceService runs the end-of-cycle bulk wipe. The wipe deletes every
// application and every non-admin account; admin accounts survive so the
// console stays reachable afterwards.
type MaintenanceService struct {
	apps      wipeApplicationRepository
	users     wipeUserRepository
	roster    wipeRoster
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMaintenanceService constructs a MaintenanceService instance.
func NewMaintenanceService(apps wipeApplicationRepository, users wipeUserRepository, roster wipeRoster, validate *validator.Validate, logger *zap.Logger) *MaintenanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MaintenanceService{apps: apps, users: users, roster: roster, validator: validate, logger: logger}
}

// Wipe deletes every application and every non-admin user. It requires the
// literal confirmation code and refuses to run while the admin roster is
// empty, because an empty keep list would delete every account including the
// caller's.
func (s *MaintenanceService) Wipe(ctx context.Context, actorEmail string, req dto.WipeRequest) (*dto.WipeResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid wipe payload")
	}
	if req.ConfirmationCode != WipeConfirmationCode {
		return nil, appErrors.Clone(appErrors.ErrValidation, "confirmation code does not match")
	}

	adminEmails, err := s.roster.AdminEmails(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list admins")
	}
	if len(adminEmails) == 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict, "refusing to wipe with an empty admin roster")
	}

	appsDeleted, err := s.apps.DeleteAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete applications")
	}

	usersDeleted, err := s.users.DeleteAllExcept(ctx, adminEmails)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete users")
	}

	actor := normalizeEmail(actorEmail)
	if err := s.users.CreateAuditLog(ctx, &models.AuditLog{
		Action:     models.AuditActionWipe,
		Resource:   "portal",
		ResourceID: &actor,
		NewValues:  intJSON("applications_deleted", int(appsDeleted)),
	}); err != nil {
		s.logger.Warn("failed to record wipe audit log", zap.Error(err))
	}

	s.logger.Info("bulk wipe completed",
		zap.String("actor", actor),
		zap.Int64("applications_deleted", appsDeleted),
		zap.Int64("users_deleted", usersDeleted))

	return &dto.WipeResult{ApplicationsDeleted: appsDeleted, UsersDeleted: usersDeleted}, nil
}
