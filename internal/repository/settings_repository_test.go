package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

func TestSettingsGetMissingRowPassesThrough(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	mock.ExpectQuery(`SELECT id, applications_open`).
		WithArgs(models.SettingsRowID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background())
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsUpsertReturnsRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	updatedBy := "admin@example.com"
	rows := sqlmock.NewRows([]string{"id", "applications_open", "updated_by_email", "updated_at"}).
		AddRow(models.SettingsRowID, false, &updatedBy, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO application_settings`)).
		WithArgs(models.SettingsRowID, false, updatedBy, sqlmock.AnyArg()).
		WillReturnRows(rows)

	settings, err := repo.Upsert(context.Background(), false, updatedBy)
	require.NoError(t, err)
	assert.False(t, settings.ApplicationsOpen)
	require.NotNil(t, settings.UpdatedByEmail)
	assert.Equal(t, updatedBy, *settings.UpdatedByEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}
