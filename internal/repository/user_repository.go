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

// UserRepository provides database access for applicant accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, first_name, last_name, preferred_email, location, created_at, updated_at`

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 LIMIT 1`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 LIMIT 1`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// UpsertByEmail creates the account on first login and refreshes the display
// name on every subsequent login, returning the stored row.
func (r *UserRepository) UpsertByEmail(ctx context.Context, email, name string) (*models.User, error) {
	query := fmt.Sprintf(`INSERT INTO users (id, email, name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, updated_at = EXCLUDED.updated_at
RETURNING %s`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, uuid.NewString(), email, name, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &user, nil
}

// UpdateProfile stores the structured profile fields collected at submission.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, firstName, lastName, preferredEmail, location string) error {
	const query = `UPDATE users
SET first_name = $2, last_name = $3, preferred_email = $4, location = $5, updated_at = $6
WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, firstName, lastName, preferredEmail, location, time.Now().UTC()); err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	return nil
}

// DeleteAllExcept removes every user whose email is not in the keep list and
// reports how many rows were deleted. Only the maintenance wipe calls this.
func (r *UserRepository) DeleteAllExcept(ctx context.Context, keepEmails []string) (int64, error) {
	if len(keepEmails) == 0 {
		return 0, fmt.Errorf("refusing to delete users without a keep list")
	}
	query := fmt.Sprintf(`DELETE FROM users WHERE email NOT IN (%s)`, placeholders(len(keepEmails)))
	args := make([]interface{}, len(keepEmails))
	for i, email := range keepEmails {
		args[i] = email
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete users: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete users rows affected: %w", err)
	}
	return affected, nil
}

// CreateAuditLog stores an audit log entry.
func (r *UserRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, user_id, action, resource, resource_id, old_values, new_values, ip_address, user_agent, created_at) VALUES (:id, :user_id, :action, :resource, :resource_id, :old_values, :new_values, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
