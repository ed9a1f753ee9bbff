package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

// ApplicationRepository provides database access for application records.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository creates a new instance of ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, user_id, essay_one, essay_two, experience_data, needs_financial_aid, is_draft, submitted_at, last_updated, assigned_to, review_status, assigned_at, reviewed_at, reviewer_grade, reviewer_notes`

// FindByUserID returns the single application owned by a user.
func (r *ApplicationRepository) FindByUserID(ctx context.Context, userID string) (*models.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE user_id = $1 LIMIT 1`, applicationColumns)
	var app models.Application
	if err := r.db.GetContext(ctx, &app, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find application by user: %w", err)
	}
	return &app, nil
}

// FindByID returns an application by identifier.
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*models.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE id = $1 LIMIT 1`, applicationColumns)
	var app models.Application
	if err := r.db.GetContext(ctx, &app, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find application by id: %w", err)
	}
	return &app, nil
}

// UpsertDraft inserts or updates a draft in one conditional statement. The
// guard on applications.is_draft makes the submitted state terminal: once a
// row has been submitted the update matches nothing and zero rows come back.
func (r *ApplicationRepository) UpsertDraft(ctx context.Context, userID string, essayOne, essayTwo string, experience []byte) (bool, error) {
	const query = `INSERT INTO applications (id, user_id, essay_one, essay_two, experience_data, is_draft, review_status, last_updated)
VALUES ($1, $2, $3, $4, $5, TRUE, 'unassigned', $6)
ON CONFLICT (user_id) DO UPDATE
SET essay_one = EXCLUDED.essay_one,
    essay_two = EXCLUDED.essay_two,
    experience_data = EXCLUDED.experience_data,
    last_updated = EXCLUDED.last_updated
WHERE applications.is_draft`
	res, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, essayOne, essayTwo, experience, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("upsert draft: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("upsert draft rows affected: %w", err)
	}
	return affected > 0, nil
}

// Submit flips a draft to submitted (or inserts a fresh submitted row) in one
// conditional statement. Zero affected rows means the user already submitted.
func (r *ApplicationRepository) Submit(ctx context.Context, userID string, essayOne, essayTwo string, experience []byte, needsFinancialAid bool) (bool, error) {
	const query = `INSERT INTO applications (id, user_id, essay_one, essay_two, experience_data, needs_financial_aid, is_draft, review_status, submitted_at, last_updated)
VALUES ($1, $2, $3, $4, $5, $6, FALSE, 'unassigned', $7, $7)
ON CONFLICT (user_id) DO UPDATE
SET essay_one = EXCLUDED.essay_one,
    essay_two = EXCLUDED.essay_two,
    experience_data = EXCLUDED.experience_data,
    needs_financial_aid = EXCLUDED.needs_financial_aid,
    is_draft = FALSE,
    submitted_at = EXCLUDED.submitted_at,
    last_updated = EXCLUDED.last_updated
WHERE applications.is_draft`
	res, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, essayOne, essayTwo, experience, needsFinancialAid, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("submit application: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("submit rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteDraft removes the user's draft. Submitted records are untouched.
func (r *ApplicationRepository) DeleteDraft(ctx context.Context, userID string) error {
	const query = `DELETE FROM applications WHERE user_id = $1 AND is_draft`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// ListUnassignedIDs returns submitted, unassigned application ids ordered by
// submission time ascending so the earliest applicants are served first.
func (r *ApplicationRepository) ListUnassignedIDs(ctx context.Context) ([]string, error) {
	const query = `SELECT id FROM applications
WHERE NOT is_draft AND (assigned_to IS NULL OR assigned_to = '')
ORDER BY submitted_at ASC`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("list unassigned applications: %w", err)
	}
	return ids, nil
}

// ListSubmitted returns all submitted applications joined with applicant data,
// newest first.
func (r *ApplicationRepository) ListSubmitted(ctx context.Context) ([]models.SubmittedApplication, error) {
	query := fmt.Sprintf(`SELECT %s, u.name AS applicant_name, u.email AS applicant_email
FROM applications a JOIN users u ON a.user_id = u.id
WHERE NOT a.is_draft
ORDER BY a.submitted_at DESC`, prefixColumns("a"))
	var apps []models.SubmittedApplication
	if err := r.db.SelectContext(ctx, &apps, query); err != nil {
		return nil, fmt.Errorf("list submitted applications: %w", err)
	}
	return apps, nil
}

// Assign marks one submitted application as assigned to the given email.
func (r *ApplicationRepository) Assign(ctx context.Context, id, assigneeEmail string, at time.Time) (bool, error) {
	const query = `UPDATE applications
SET assigned_to = $2, review_status = 'assigned', assigned_at = $3, reviewed_at = NULL
WHERE id = $1 AND NOT is_draft`
	res, err := r.db.ExecContext(ctx, query, id, assigneeEmail, at)
	if err != nil {
		return false, fmt.Errorf("assign application: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("assign rows affected: %w", err)
	}
	return affected > 0, nil
}

// UpdateStatus applies a workflow transition. reviewedAt is stamped for
// completed transitions and nil for everything else.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ReviewStatus, reviewedAt *time.Time) error {
	const query = `UPDATE applications SET review_status = $2, reviewed_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, reviewedAt); err != nil {
		return fmt.Errorf("update review status: %w", err)
	}
	return nil
}

// SaveReview stores grade and notes. Passing a nil grade clears grading.
func (r *ApplicationRepository) SaveReview(ctx context.Context, id string, grade *int, notes *string) error {
	const query = `UPDATE applications SET reviewer_grade = $2, reviewer_notes = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, grade, notes); err != nil {
		return fmt.Errorf("save review: %w", err)
	}
	return nil
}

// UnassignAll reverts every assigned submitted application to unassigned and
// reports how many rows changed.
func (r *ApplicationRepository) UnassignAll(ctx context.Context) (int64, error) {
	const query = `UPDATE applications
SET assigned_to = NULL, review_status = 'unassigned', assigned_at = NULL, reviewed_at = NULL
WHERE NOT is_draft AND assigned_to IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("unassign all applications: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("unassign all rows affected: %w", err)
	}
	return affected, nil
}

// DeleteAll removes every application row. Only the maintenance wipe calls
// this.
func (r *ApplicationRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications`)
	if err != nil {
		return 0, fmt.Errorf("delete all applications: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all rows affected: %w", err)
	}
	return affected, nil
}

func prefixColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.user_id, %[1]s.essay_one, %[1]s.essay_two, %[1]s.experience_data, %[1]s.needs_financial_aid, %[1]s.is_draft, %[1]s.submitted_at, %[1]s.last_updated, %[1]s.assigned_to, %[1]s.review_status, %[1]s.assigned_at, %[1]s.reviewed_at, %[1]s.reviewer_grade, %[1]s.reviewer_notes`, alias)
}
