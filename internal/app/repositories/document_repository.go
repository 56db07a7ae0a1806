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
	"github.com/okaradag/unipath/internal/pkg/logger"
)

// DocumentRepository handles document and document type database operations
type DocumentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetTypeByName looks up a document type by its seeded name
func (r *DocumentRepository) GetTypeByName(ctx context.Context, name string) (*models.DocumentType, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("document_types").
		Where(squirrel.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get document type query: %w", err)
	}

	var dt models.DocumentType
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&dt.ID, &dt.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentTypeNotFound
		}
		logger.Error().Err(err).Str("name", name).Msg("Error scanning document type row")
		return nil, fmt.Errorf("error retrieving document type: %w", err)
	}
	return &dt, nil
}

// ListTypes returns all document types
func (r *DocumentRepository) ListTypes(ctx context.Context) ([]*models.DocumentType, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("document_types").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list document types query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list document types query")
		return nil, fmt.Errorf("error listing document types: %w", err)
	}
	defer rows.Close()

	var types []*models.DocumentType
	for rows.Next() {
		var dt models.DocumentType
		if err := rows.Scan(&dt.ID, &dt.Name); err != nil {
			return nil, fmt.Errorf("error scanning document type row: %w", err)
		}
		types = append(types, &dt)
	}
	return types, rows.Err()
}

// Create inserts a new document record and returns its ID
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) (int64, error) {
	sql, args, err := r.sb.Insert("documents").
		Columns("student_id", "doc_type_id", "application_id", "file_name", "file_url", "uploaded_at").
		Values(doc.StudentID, doc.DocTypeID, doc.ApplicationID, doc.FileName, doc.FileURL, time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create document query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("studentID", doc.StudentID).Str("file", doc.FileName).Msg("Error executing create document query")
		return 0, fmt.Errorf("error creating document record: %w", err)
	}
	return id, nil
}

// DeleteByStudentAndType removes a student's documents of one type.
// Fixed document slots hold a single file, so the old record is dropped
// before the replacement is inserted.
func (r *DocumentRepository) DeleteByStudentAndType(ctx context.Context, studentID, docTypeID int64) error {
	sql, args, err := r.sb.Delete("documents").
		Where(squirrel.Eq{"student_id": studentID, "doc_type_id": docTypeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete documents query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("docTypeID", docTypeID).Msg("Error deleting documents")
		return fmt.Errorf("error deleting documents: %w", err)
	}
	return nil
}

// ListByStudentID returns a student's documents with their type names
func (r *DocumentRepository) ListByStudentID(ctx context.Context, studentID int64) ([]*models.Document, []string, error) {
	sql, args, err := r.sb.Select(
		"d.id", "d.student_id", "d.doc_type_id", "d.application_id",
		"d.file_name", "d.file_url", "d.uploaded_at", "dt.name").
		From("documents d").
		Join("document_types dt ON dt.id = d.doc_type_id").
		Where(squirrel.Eq{"d.student_id": studentID}).
		OrderBy("d.id").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build list documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list documents query")
		return nil, nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	var typeNames []string
	for rows.Next() {
		var d models.Document
		var typeName string
		err := rows.Scan(&d.ID, &d.StudentID, &d.DocTypeID, &d.ApplicationID,
			&d.FileName, &d.FileURL, &d.UploadedAt, &typeName)
		if err != nil {
			return nil, nil, fmt.Errorf("error scanning document row: %w", err)
		}
		docs = append(docs, &d)
		typeNames = append(typeNames, typeName)
	}
	return docs, typeNames, rows.Err()
}

// SeedTypes inserts the well-known document types if missing
func (r *DocumentRepository) SeedTypes(ctx context.Context, names []string) error {
	builder := r.sb.Insert("document_types").Columns("name")
	for _, name := range names {
		builder = builder.Values(name)
	}
	sql, args, err := builder.Suffix("ON CONFLICT (name) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build seed document types query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error seeding document types")
		return fmt.Errorf("error seeding document types: %w", err)
	}
	return nil
}
