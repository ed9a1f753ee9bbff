package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/export"
)

type exportApplicationRepository interface {
	ListSubmitted(ctx context.Context) ([]models.SubmittedApplication, error)
	FindByID(ctx context.Context, id string) (*models.Application, error)
}

type exportUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

var exportHeaders = []string{
	"Name", "Email", "Grade Level",
	"Programming Experience", "Languages", "Research Experience",
	"Clubs / Activities", "Essay One", "Essay Two", "Final Thoughts",
	"Needs Financial Aid", "Submitted At", "Assigned To", "Review Status",
	"Grade", "Notes",
}

// ExportService renders submitted applications into CSV and per-application
// PDF documents.
type ExportService struct {
	apps        exportApplicationRepository
	users       exportUserRepository
	csvExporter *export.CSVExporter
	pdfExporter *export.PDFExporter
	logger      *zap.Logger
}

// NewExportService constructs an ExportService instance.
func NewExportService(apps exportApplicationRepository, users exportUserRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		apps:        apps,
		users:       users,
		csvExporter: export.NewCSVExporter(),
		pdfExporter: export.NewPDFExporter(),
		logger:      logger,
	}
}

// SubmissionsCSV renders every submitted application as one CSV document.
// An empty result set is reported as not found so the console can show a
// clear message instead of offering an empty download.
func (s *ExportService) SubmissionsCSV(ctx context.Context) ([]byte, error) {
	apps, err := s.apps.ListSubmitted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list submitted applications")
	}
	if len(apps) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no submitted applications to export")
	}

	rows := make([]map[string]string, 0, len(apps))
	for i := range apps {
		rows = append(rows, exportRow(&apps[i]))
	}

	data, err := s.csvExporter.Render(export.Dataset{Headers: exportHeaders, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return data, nil
}

// ApplicationPDF renders one submitted application as a review sheet.
// Admins can pull any sheet; reviewers only the ones assigned to them.
func (s *ExportService) ApplicationPDF(ctx context.Context, actorEmail string, actorRole models.Role, applicationID string) ([]byte, error) {
	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	if app.IsDraft {
		return nil, appErrors.Clone(appErrors.ErrValidation, "application has not been submitted")
	}
	if actorRole != models.RoleAdmin {
		if app.AssignedTo == nil || normalizeEmail(*app.AssignedTo) != normalizeEmail(actorEmail) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "application is not assigned to you")
		}
	}

	applicantName := ""
	applicantEmail := ""
	if user, err := s.users.FindByID(ctx, app.UserID); err == nil {
		applicantName = user.Name
		applicantEmail = user.Email
	} else if !errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("failed to load applicant for pdf export", zap.Error(err))
	}

	experience := decodeExperience(app.ExperienceData)
	rows := []map[string]string{
		{"Field": "Name", "Value": applicantName},
		{"Field": "Email", "Value": applicantEmail},
		{"Field": "Grade Level", "Value": experience.GradeLevel},
		{"Field": "Programming Experience", "Value": experience.ProgrammingExperience},
		{"Field": "Languages", "Value": strings.Join(experience.Languages, ", ")},
		{"Field": "Research Experience", "Value": experience.ResearchExperience},
		{"Field": "Clubs / Activities", "Value": experience.ClubsActivities},
		{"Field": "Essay One", "Value": app.EssayOne},
		{"Field": "Essay Two", "Value": app.EssayTwo},
		{"Field": "Final Thoughts", "Value": experience.FinalThoughts},
		{"Field": "Needs Financial Aid", "Value": strconv.FormatBool(app.NeedsFinancialAid)},
		{"Field": "Submitted At", "Value": formatTime(app.SubmittedAt)},
		{"Field": "Review Status", "Value": string(app.ReviewStatus)},
		{"Field": "Grade", "Value": formatGrade(app.ReviewerGrade)},
	}

	data, err := s.pdfExporter.Render(export.Dataset{Headers: []string{"Field", "Value"}, Rows: rows}, "Application Review Sheet")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return data, nil
}

func exportRow(app *models.SubmittedApplication) map[string]string {
	experience := decodeExperience(app.ExperienceData)
	row := map[string]string{
		"Name":                   app.ApplicantName,
		"Email":                  app.ApplicantEmail,
		"Grade Level":            experience.GradeLevel,
		"Programming Experience": experience.ProgrammingExperience,
		"Languages":              strings.Join(experience.Languages, ", "),
		"Research Experience":    experience.ResearchExperience,
		"Clubs / Activities":     experience.ClubsActivities,
		"Essay One":              app.EssayOne,
		"Essay Two":              app.EssayTwo,
		"Final Thoughts":         experience.FinalThoughts,
		"Needs Financial Aid":    strconv.FormatBool(app.NeedsFinancialAid),
		"Submitted At":           formatTime(app.SubmittedAt),
		"Review Status":          string(app.ReviewStatus),
		"Grade":                  formatGrade(app.ReviewerGrade),
	}
	if app.AssignedTo != nil {
		row["Assigned To"] = *app.AssignedTo
	}
	if app.ReviewerNotes != nil {
		row["Notes"] = *app.ReviewerNotes
	}
	return row
}

func decodeExperience(raw []byte) models.ExperienceData {
	var experience models.ExperienceData
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &experience)
	}
	return experience
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatGrade(grade *int) string {
	if grade == nil {
		return ""
	}
	return strconv.Itoa(*grade)
}
