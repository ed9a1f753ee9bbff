package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/dto"
	"github.com/noah-isme/scholarship-portal-api/internal/models"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

type assignmentRepository interface {
	ListUnassignedIDs(ctx context.Context) ([]string, error)
	Assign(ctx context.Context, id, assigneeEmail string, at time.Time) (bool, error)
	UnassignAll(ctx context.Context) (int64, error)
}

type assignmentPool interface {
	ListAdmins(ctx context.Context) ([]models.AdminEntry, error)
	ListReviewers(ctx context.Context) ([]models.ReviewerEntry, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	IsReviewer(ctx context.Context, email string) (bool, error)
}

// AssignmentService distributes submitted applications across the roster.
// The automatic pass is a plain round-robin with no load awareness: pool
// position i mod |pool| gets application i, oldest submissions first.
type AssignmentService struct {
	repo      assignmentRepository
	roster    assignmentPool
	auditor   rosterAuditor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(repo assignmentRepository, roster assignmentPool, auditor rosterAuditor, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AssignmentService{repo: repo, roster: roster, auditor: auditor, validator: validate, logger: logger}
}

// AutoAssign spreads every unassigned submitted application over the pool of
// admins followed by reviewers, both in insertion order. An empty pool or an
// empty backlog is a successful zero-count run, not an error. Rows update
// one at a time; a mid-run failure leaves the earlier assignments in place
// and a later run picks up the remainder.
func (s *AssignmentService) AutoAssign(ctx context.Context) (*dto.AssignmentResult, error) {
	pool, err := s.pool(ctx)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return &dto.AssignmentResult{Assigned: 0}, nil
	}

	ids, err := s.repo.ListUnassignedIDs(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list unassigned applications")
	}

	now := time.Now().UTC()
	assigned := 0
	for i, id := range ids {
		applied, err := s.repo.Assign(ctx, id, pool[i%len(pool)], now)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "assignment run failed partway")
		}
		if applied {
			assigned++
		}
	}

	s.audit(ctx, models.AuditActionAssign, intJSON("assigned", assigned))
	return &dto.AssignmentResult{Assigned: assigned}, nil
}

// ManualAssign assigns the selected applications to one roster member. The
// assignee must currently hold a role; assignments to arbitrary emails would
// orphan the applications behind the reviewer guard.
func (s *AssignmentService) ManualAssign(ctx context.Context, req dto.AssignApplicationsRequest) (*dto.AssignmentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	assignee := normalizeEmail(req.AssignToEmail)

	member, err := s.isRosterMember(ctx, assignee)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, appErrors.Clone(appErrors.ErrValidation, "assignee holds no role")
	}

	now := time.Now().UTC()
	assigned := 0
	for _, id := range req.ApplicationIDs {
		applied, err := s.repo.Assign(ctx, id, assignee, now)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign application")
		}
		if applied {
			assigned++
		}
	}

	s.audit(ctx, models.AuditActionAssign, intJSON("assigned", assigned))
	return &dto.AssignmentResult{Assigned: assigned}, nil
}

// UnassignAll reverts every assigned application to unassigned.
func (s *AssignmentService) UnassignAll(ctx context.Context) (*dto.UnassignResult, error) {
	count, err := s.repo.UnassignAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unassign applications")
	}

	s.audit(ctx, models.AuditActionUnassignAll, intJSON("unassigned", int(count)))
	return &dto.UnassignResult{Unassigned: int(count)}, nil
}

func (s *AssignmentService) pool(ctx context.Context) ([]string, error) {
	admins, err := s.roster.ListAdmins(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list admins")
	}
	reviewers, err := s.roster.ListReviewers(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reviewers")
	}
	pool := make([]string, 0, len(admins)+len(reviewers))
	for _, admin := range admins {
		pool = append(pool, admin.Email)
	}
	for _, reviewer := range reviewers {
		pool = append(pool, reviewer.Email)
	}
	return pool, nil
}

func (s *AssignmentService) isRosterMember(ctx context.Context, email string) (bool, error) {
	isAdmin, err := s.roster.IsAdmin(ctx, email)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check assignee role")
	}
	if isAdmin {
		return true, nil
	}
	isReviewer, err := s.roster.IsReviewer(ctx, email)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check assignee role")
	}
	return isReviewer, nil
}

func (s *AssignmentService) audit(ctx context.Context, action string, payload []byte) {
	if err := s.auditor.CreateAuditLog(ctx, &models.AuditLog{
		Action:    action,
		Resource:  "assignments",
		NewValues: payload,
	}); err != nil {
		s.logger.Warn("failed to record assignment audit log", zap.Error(err))
	}
}

func intJSON(key string, value int) []byte {
	data, _ := json.Marshal(map[string]int{key: value})
	return data
}
