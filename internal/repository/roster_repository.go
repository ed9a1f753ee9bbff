package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

// RosterRepository persists the flat admin and reviewer membership sets.
type RosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository constructs the repository.
func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// IsAdmin reports admin membership for an email.
func (r *RosterRepository) IsAdmin(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM admins WHERE email = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check admin membership: %w", err)
	}
	return exists, nil
}

// IsReviewer reports reviewer membership for an email.
func (r *RosterRepository) IsReviewer(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM reviewers WHERE email = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check reviewer membership: %w", err)
	}
	return exists, nil
}

// ListAdmins returns admin entries in insertion order.
func (r *RosterRepository) ListAdmins(ctx context.Context) ([]models.AdminEntry, error) {
	const query = `SELECT email, added_at FROM admins ORDER BY added_at ASC`
	var admins []models.AdminEntry
	if err := r.db.SelectContext(ctx, &admins, query); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// ListReviewers returns reviewer entries in insertion order.
func (r *RosterRepository) ListReviewers(ctx context.Context) ([]models.ReviewerEntry, error) {
	const query = `SELECT email, added_by, added_at FROM reviewers ORDER BY added_at ASC`
	var reviewers []models.ReviewerEntry
	if err := r.db.SelectContext(ctx, &reviewers, query); err != nil {
		return nil, fmt.Errorf("list reviewers: %w", err)
	}
	return reviewers, nil
}

// AdminEmails returns just the admin email column, insertion order.
func (r *RosterRepository) AdminEmails(ctx context.Context) ([]string, error) {
	const query = `SELECT email FROM admins ORDER BY added_at ASC`
	var emails []string
	if err := r.db.SelectContext(ctx, &emails, query); err != nil {
		return nil, fmt.Errorf("list admin emails: %w", err)
	}
	return emails, nil
}

// AddReviewer inserts a reviewer entry.
func (r *RosterRepository) AddReviewer(ctx context.Context, email string, addedBy *string) error {
	const query = `INSERT INTO reviewers (email, added_by, added_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, email, addedBy, time.Now().UTC()); err != nil {
		return fmt.Errorf("add reviewer: %w", err)
	}
	return nil
}

// RemoveAdmin deletes the admin row and reverts every application assigned to
// that email, inside one transaction so a crash cannot leave applications
// assigned to an identity that no longer holds a role.
func (r *RosterRepository) RemoveAdmin(ctx context.Context, email string) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin remove admin tx: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM admins WHERE email = $1`, email)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("delete admin: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("delete admin rows affected: %w", err)
	}
	if deleted == 0 {
		_ = tx.Rollback()
		return 0, errNoSuchAdmin
	}

	res, err = tx.ExecContext(ctx, `UPDATE applications
SET assigned_to = NULL, review_status = 'unassigned', assigned_at = NULL, reviewed_at = NULL
WHERE assigned_to = $1`, email)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("unassign applications for removed admin: %w", err)
	}
	unassigned, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("unassign rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit remove admin tx: %w", err)
	}
	return unassigned, nil
}

var errNoSuchAdmin = fmt.Errorf("admin not found")

// IsNoSuchAdmin reports whether RemoveAdmin failed because the email held no
// admin role.
func IsNoSuchAdmin(err error) bool {
	return err == errNoSuchAdmin
}
