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

// ProgramFilter narrows program listings
type ProgramFilter struct {
	UniversityID int64
	Degree       string
	Search       string
	Page         int
	PageSize     int
}

// ProgramRepository handles program catalog database operations
type ProgramRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var programJoinColumns = []string{
	"p.id", "p.university_id", "p.name", "p.degree", "p.language", "p.duration_years",
	"p.tuition_fee", "p.currency", "p.description", "p.created_at",
	"u.id", "u.name", "u.country", "u.city", "u.website", "u.logo_url", "u.description", "u.created_at",
}

func scanProgramWithUniversity(row pgx.Row) (*models.Program, error) {
	var p models.Program
	var u models.University
	err := row.Scan(
		&p.ID, &p.UniversityID, &p.Name, &p.Degree, &p.Language, &p.DurationYrs,
		&p.TuitionFee, &p.Currency, &p.Description, &p.CreatedAt,
		&u.ID, &u.Name, &u.Country, &u.City, &u.Website, &u.LogoURL, &u.Description, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.University = &u
	return &p, nil
}

func (f ProgramFilter) apply(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	if f.UniversityID > 0 {
		b = b.Where(squirrel.Eq{"p.university_id": f.UniversityID})
	}
	if f.Degree != "" {
		b = b.Where(squirrel.Eq{"p.degree": f.Degree})
	}
	if f.Search != "" {
		b = b.Where(squirrel.ILike{"p.name": "%" + f.Search + "%"})
	}
	return b
}

// Create inserts a program. Returns ErrResourceAlreadyExists when the
// university already offers a program with the same name.
func (r *ProgramRepository) Create(ctx context.Context, p *models.Program) (int64, error) {
	sql, args, err := r.sb.Insert("programs").
		Columns("university_id", "name", "degree", "language", "duration_years", "tuition_fee", "currency", "description").
		Values(p.UniversityID, p.Name, p.Degree, p.Language, p.DurationYrs, p.TuitionFee, p.Currency, p.Description).
		Suffix("ON CONFLICT (university_id, name) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create program query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Str("name", p.Name).Msg("Error creating program")
		return 0, fmt.Errorf("error creating program: %w", err)
	}
	return id, nil
}

// List returns a page of programs with their universities and the total
// match count
func (r *ProgramRepository) List(ctx context.Context, filter ProgramFilter) ([]*models.Program, int, error) {
	countSQL, countArgs, err := filter.apply(
		r.sb.Select("COUNT(*)").From("programs p"),
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count programs query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting programs")
		return nil, 0, fmt.Errorf("error counting programs: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	sql, args, err := filter.apply(
		r.sb.Select(programJoinColumns...).
			From("programs p").
			Join("universities u ON u.id = p.university_id"),
	).
		OrderBy("u.name", "p.name").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list programs query")
		return nil, 0, fmt.Errorf("error listing programs: %w", err)
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		p, err := scanProgramWithUniversity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning program row: %w", err)
		}
		programs = append(programs, p)
	}
	return programs, total, rows.Err()
}

// GetByID retrieves a program with its university by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	sql, args, err := r.sb.Select(programJoinColumns...).
		From("programs p").
		Join("universities u ON u.id = p.university_id").
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get program query: %w", err)
	}

	p, err := scanProgramWithUniversity(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		logger.Error().Err(err).Int64("programID", id).Msg("Error scanning program row")
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}
	return p, nil
}
