package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/pkg/apperrors"
	"github.com/okaradag/unipath/internal/pkg/logger"
)

// UniversityFilter narrows university listings
type UniversityFilter struct {
	Country  string
	Search   string
	Page     int
	PageSize int
}

// UniversityRepository handles university catalog database operations
type UniversityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUniversityRepository creates a new UniversityRepository
func NewUniversityRepository(db *pgxpool.Pool) *UniversityRepository {
	return &UniversityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var universityColumns = []string{
	"id", "name", "country", "city", "website", "logo_url", "description", "created_at",
}

func scanUniversity(row pgx.Row) (*models.University, error) {
	var u models.University
	err := row.Scan(&u.ID, &u.Name, &u.Country, &u.City, &u.Website, &u.LogoURL, &u.Description, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (f UniversityFilter) apply(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	if f.Country != "" {
		b = b.Where(squirrel.Eq{"country": f.Country})
	}
	if f.Search != "" {
		b = b.Where(squirrel.ILike{"name": "%" + f.Search + "%"})
	}
	return b
}

// Create inserts a university. Returns ErrResourceAlreadyExists when a
// university with the same name is already present.
func (r *UniversityRepository) Create(ctx context.Context, u *models.University) (int64, error) {
	sql, args, err := r.sb.Insert("universities").
		Columns("name", "country", "city", "website", "logo_url", "description").
		Values(u.Name, u.Country, u.City, u.Website, u.LogoURL, u.Description).
		Suffix("ON CONFLICT (name) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create university query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Str("name", u.Name).Msg("Error creating university")
		return 0, fmt.Errorf("error creating university: %w", err)
	}
	return id, nil
}

// GetByName retrieves a university by its exact name
func (r *UniversityRepository) GetByName(ctx context.Context, name string) (*models.University, error) {
	sql, args, err := r.sb.Select(universityColumns...).
		From("universities").
		Where(squirrel.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get university by name query: %w", err)
	}

	u, err := scanUniversity(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUniversityNotFound
		}
		return nil, fmt.Errorf("error retrieving university by name: %w", err)
	}
	return u, nil
}

// List returns a page of universities and the total match count
func (r *UniversityRepository) List(ctx context.Context, filter UniversityFilter) ([]*models.University, int, error) {
	countSQL, countArgs, err := filter.apply(r.sb.Select("COUNT(*)").From("universities")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count universities query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting universities")
		return nil, 0, fmt.Errorf("error counting universities: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	sql, args, err := filter.apply(r.sb.Select(universityColumns...).From("universities")).
		OrderBy("name").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list universities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list universities query")
		return nil, 0, fmt.Errorf("error listing universities: %w", err)
	}
	defer rows.Close()

	var universities []*models.University
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning university row: %w", err)
		}
		universities = append(universities, u)
	}
	return universities, total, rows.Err()
}

// GetByID retrieves a university by ID
func (r *UniversityRepository) GetByID(ctx context.Context, id int64) (*models.University, error) {
	sql, args, err := r.sb.Select(universityColumns...).
		From("universities").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get university query: %w", err)
	}

	u, err := scanUniversity(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUniversityNotFound
		}
		logger.Error().Err(err).Int64("universityID", id).Msg("Error scanning university row")
		return nil, fmt.Errorf("error retrieving university: %w", err)
	}
	return u, nil
}
