package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/pkg/logger"
)

// ExamRepository handles exam document database operations
type ExamRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts one exam record and returns its ID
func (r *ExamRepository) Create(ctx context.Context, exam *models.ExamDocument) (int64, error) {
	sql, args, err := r.sb.Insert("student_exam_documents").
		Columns("student_id", "exam_name", "exam_score", "exam_date", "file_url", "created_at").
		Values(exam.StudentID, exam.ExamName, exam.ExamScore, exam.ExamDate, exam.FileURL, time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create exam query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("studentID", exam.StudentID).Str("exam", exam.ExamName).Msg("Error executing create exam query")
		return 0, fmt.Errorf("error creating exam record: %w", err)
	}
	return id, nil
}

// DeleteByStudentID removes all exam records of a student. The academic
// wizard submits the full exam list each time, so old rows are cleared
// before the new set is written.
func (r *ExamRepository) DeleteByStudentID(ctx context.Context, studentID int64) error {
	sql, args, err := r.sb.Delete("student_exam_documents").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete exams query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error deleting exam records")
		return fmt.Errorf("error deleting exam records: %w", err)
	}
	return nil
}

// ListByStudentID returns a student's exam records, oldest first
func (r *ExamRepository) ListByStudentID(ctx context.Context, studentID int64) ([]*models.ExamDocument, error) {
	sql, args, err := r.sb.Select("id", "student_id", "exam_name", "exam_score", "exam_date", "file_url", "created_at").
		From("student_exam_documents").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list exams query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list exams query")
		return nil, fmt.Errorf("error listing exam records: %w", err)
	}
	defer rows.Close()

	var exams []*models.ExamDocument
	for rows.Next() {
		var e models.ExamDocument
		err := rows.Scan(&e.ID, &e.StudentID, &e.ExamName, &e.ExamScore, &e.ExamDate, &e.FileURL, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning exam row: %w", err)
		}
		exams = append(exams, &e)
	}
	return exams, rows.Err()
}
