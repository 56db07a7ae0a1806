package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/pkg/apperrors"
	"github.com/okaradag/unipath/internal/pkg/dberrors"
	"github.com/okaradag/unipath/internal/pkg/logger"
)

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new application and returns its ID. A student can
// hold at most one application per program.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("applications").
		Columns("student_id", "program_id", "status", "notes", "created_at", "updated_at").
		Values(app.StudentID, app.ProgramID, app.Status, app.Notes, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "applications_student_id_program_id_key") {
			return 0, apperrors.ErrAlreadyApplied
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrProgramNotFound
		}
		logger.Error().Err(err).Int64("studentID", app.StudentID).Int64("programID", app.ProgramID).Msg("Error executing create application query")
		return 0, fmt.Errorf("error creating application: %w", err)
	}
	return id, nil
}

// GetByID retrieves an application with its program and university
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	sql, args, err := r.sb.Select(applicationJoinColumns()...).
		From("applications a").
		Join("programs p ON p.id = a.program_id").
		Join("universities u ON u.id = p.university_id").
		Where(squirrel.Eq{"a.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	app, err := scanApplicationWithProgram(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error scanning application row")
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}
	return app, nil
}

// ListByStudentID returns a student's applications, newest first
func (r *ApplicationRepository) ListByStudentID(ctx context.Context, studentID int64) ([]*models.Application, error) {
	sql, args, err := r.sb.Select(applicationJoinColumns()...).
		From("applications a").
		Join("programs p ON p.id = a.program_id").
		Join("universities u ON u.id = p.university_id").
		Where(squirrel.Eq{"a.student_id": studentID}).
		OrderBy("a.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list applications query")
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		app, err := scanApplicationWithProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// UpdateStatus moves an application through its review lifecycle
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	sql, args, err := r.sb.Update("applications").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update application status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Str("status", string(status)).Msg("Error updating application status")
		return fmt.Errorf("error updating application status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

func applicationJoinColumns() []string {
	return []string{
		"a.id", "a.student_id", "a.program_id", "a.status", "a.notes", "a.created_at", "a.updated_at",
		"p.id", "p.university_id", "p.name", "p.degree", "p.language", "p.duration_years",
		"p.tuition_fee", "p.currency", "p.description", "p.created_at",
		"u.id", "u.name", "u.country", "u.city", "u.website", "u.logo_url", "u.description", "u.created_at",
	}
}

func scanApplicationWithProgram(row pgx.Row) (*models.Application, error) {
	var a models.Application
	var p models.Program
	var u models.University
	err := row.Scan(
		&a.ID, &a.StudentID, &a.ProgramID, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
		&p.ID, &p.UniversityID, &p.Name, &p.Degree, &p.Language, &p.DurationYrs,
		&p.TuitionFee, &p.Currency, &p.Description, &p.CreatedAt,
		&u.ID, &u.Name, &u.Country, &u.City, &u.Website, &u.LogoURL, &u.Description, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.University = &u
	a.Program = &p
	return &a, nil
}
