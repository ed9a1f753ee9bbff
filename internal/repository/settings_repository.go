package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

// SettingsRepository persists the singleton application_settings row.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository constructs the repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get fetches the singleton settings row. sql.ErrNoRows passes through so the
// caller can apply the open default.
func (r *SettingsRepository) Get(ctx context.Context) (*models.ApplicationSettings, error) {
	const query = `SELECT id, applications_open, updated_by_email, updated_at FROM application_settings WHERE id = $1`
	var settings models.ApplicationSettings
	if err := r.db.GetContext(ctx, &settings, query, models.SettingsRowID); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert writes the singleton row, recording who toggled it.
func (r *SettingsRepository) Upsert(ctx context.Context, open bool, updatedBy string) (*models.ApplicationSettings, error) {
	const query = `INSERT INTO application_settings (id, applications_open, updated_by_email, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET applications_open = EXCLUDED.applications_open,
    updated_by_email = EXCLUDED.updated_by_email,
    updated_at = EXCLUDED.updated_at
RETURNING id, applications_open, updated_by_email, updated_at`
	var settings models.ApplicationSettings
	if err := r.db.GetContext(ctx, &settings, query, models.SettingsRowID, open, updatedBy, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("upsert application settings: %w", err)
	}
	return &settings, nil
}

func placeholders(n int) string {
	values := make([]string, n)
	for i := 1; i <= n; i++ {
		values[i-1] = fmt.Sprintf("$%d", i)
	}
	return strings.Join(values, ",")
}
