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

// PersonalInfoUpdate carries the student columns written by the personal
// wizard submit.
type PersonalInfoUpdate struct {
	DateOfBirth        time.Time
	PassportNumber     string
	CountryOfOrigin    string
	HasDualCitizenship bool
	SecondNationality  *string
}

// AcademicInfoUpdate carries the student columns written by the academic
// wizard submit.
type AcademicInfoUpdate struct {
	CurrentStudyLevel   string
	CurrentCountry      *string
	GraduatedSchoolName string
	GraduationDate      time.Time
	GraduationGrade     string
	AverageGrade        *float64
}

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var studentColumns = []string{
	"id", "user_id", "date_of_birth", "passport_number", "country_of_origin",
	"second_nationality", "has_dual_citizenship", "current_study_level", "current_country",
	"average_grade", "graduated_school_name", "graduation_date", "graduation_grade",
	"profile_completion_status", "created_at",
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.UserID, &s.DateOfBirth, &s.PassportNumber, &s.CountryOfOrigin,
		&s.SecondNationality, &s.HasDualCitizenship, &s.CurrentStudyLevel, &s.CurrentCountry,
		&s.AverageGrade, &s.GraduatedSchoolName, &s.GraduationDate, &s.GraduationGrade,
		&s.CompletionStatus, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateForUser inserts an empty student profile for a new user
func (r *StudentRepository) CreateForUser(ctx context.Context, userID int64) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("user_id", "profile_completion_status", "created_at").
		Values(userID, models.CompletionIncomplete, time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_user_id_key") {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}
	return id, nil
}

// GetByUserID retrieves the student profile owned by a user
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetByID retrieves a student profile by its ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// UpdatePersonalInfo writes the identity columns captured by the personal
// wizard
func (r *StudentRepository) UpdatePersonalInfo(ctx context.Context, studentID int64, info PersonalInfoUpdate) error {
	sql, args, err := r.sb.Update("students").
		Set("date_of_birth", info.DateOfBirth).
		Set("passport_number", info.PassportNumber).
		Set("country_of_origin", info.CountryOfOrigin).
		Set("has_dual_citizenship", info.HasDualCitizenship).
		Set("second_nationality", info.SecondNationality).
		Where(squirrel.Eq{"id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update personal info query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error updating personal info")
		return fmt.Errorf("error updating personal info: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateAcademicInfo writes the education columns captured by the
// academic wizard
func (r *StudentRepository) UpdateAcademicInfo(ctx context.Context, studentID int64, info AcademicInfoUpdate) error {
	sql, args, err := r.sb.Update("students").
		Set("current_study_level", info.CurrentStudyLevel).
		Set("current_country", info.CurrentCountry).
		Set("graduated_school_name", info.GraduatedSchoolName).
		Set("graduation_date", info.GraduationDate).
		Set("graduation_grade", info.GraduationGrade).
		Set("average_grade", info.AverageGrade).
		Where(squirrel.Eq{"id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update academic info query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error updating academic info")
		return fmt.Errorf("error updating academic info: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateStudyInfo writes the columns editable from the profile view
func (r *StudentRepository) UpdateStudyInfo(ctx context.Context, studentID int64, studyLevel, currentCountry *string) error {
	sql, args, err := r.sb.Update("students").
		Set("current_study_level", studyLevel).
		Set("current_country", currentCountry).
		Where(squirrel.Eq{"id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update study info query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error updating study info")
		return fmt.Errorf("error updating study info: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateCompletionStatus moves the profile through its lifecycle
func (r *StudentRepository) UpdateCompletionStatus(ctx context.Context, studentID int64, status models.CompletionStatus) error {
	sql, args, err := r.sb.Update("students").
		Set("profile_completion_status", status).
		Where(squirrel.Eq{"id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update completion status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Str("status", string(status)).Msg("Error updating completion status")
		return fmt.Errorf("error updating completion status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpsertAddress creates or replaces the student's single address row
func (r *StudentRepository) UpsertAddress(ctx context.Context, addr *models.Address) error {
	sql, args, err := r.sb.Insert("student_addresses").
		Columns("student_id", "street", "city", "state", "postal_code", "country").
		Values(addr.StudentID, addr.Street, addr.City, addr.State, addr.PostalCode, addr.Country).
		Suffix(`ON CONFLICT (student_id) DO UPDATE SET
			street = EXCLUDED.street,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			postal_code = EXCLUDED.postal_code,
			country = EXCLUDED.country`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert address query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", addr.StudentID).Msg("Error upserting address")
		return fmt.Errorf("error saving address: %w", err)
	}
	return nil
}

// UpsertPhone creates or replaces the student's single phone row
func (r *StudentRepository) UpsertPhone(ctx context.Context, phone *models.Phone) error {
	sql, args, err := r.sb.Insert("student_phones").
		Columns("student_id", "country_code", "phone_number", "phone_type").
		Values(phone.StudentID, phone.CountryCode, phone.PhoneNumber, phone.PhoneType).
		Suffix(`ON CONFLICT (student_id) DO UPDATE SET
			country_code = EXCLUDED.country_code,
			phone_number = EXCLUDED.phone_number,
			phone_type = EXCLUDED.phone_type`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert phone query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", phone.StudentID).Msg("Error upserting phone")
		return fmt.Errorf("error saving phone: %w", err)
	}
	return nil
}

// GetAddress retrieves the student's address, if any
func (r *StudentRepository) GetAddress(ctx context.Context, studentID int64) (*models.Address, error) {
	sql, args, err := r.sb.Select("id", "student_id", "street", "city", "state", "postal_code", "country").
		From("student_addresses").
		Where(squirrel.Eq{"student_id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get address query: %w", err)
	}

	var a models.Address
	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&a.ID, &a.StudentID, &a.Street, &a.City, &a.State, &a.PostalCode, &a.Country)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning address row")
		return nil, fmt.Errorf("error retrieving address: %w", err)
	}
	return &a, nil
}

// GetPhone retrieves the student's phone number, if any
func (r *StudentRepository) GetPhone(ctx context.Context, studentID int64) (*models.Phone, error) {
	sql, args, err := r.sb.Select("id", "student_id", "country_code", "phone_number", "phone_type").
		From("student_phones").
		Where(squirrel.Eq{"student_id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get phone query: %w", err)
	}

	var p models.Phone
	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&p.ID, &p.StudentID, &p.CountryCode, &p.PhoneNumber, &p.PhoneType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning phone row")
		return nil, fmt.Errorf("error retrieving phone: %w", err)
	}
	return &p, nil
}
