package services

import (
	"context"

	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/app/repositories"
)

type programStore interface {
	List(ctx context.Context, filter repositories.ProgramFilter) ([]*models.Program, int, error)
	GetByID(ctx context.Context, id int64) (*models.Program, error)
}

// ProgramService serves the study program catalog.
type ProgramService struct {
	programs programStore
}

// NewProgramService creates a new ProgramService
func NewProgramService(programs programStore) *ProgramService {
	return &ProgramService{programs: programs}
}

// List returns a filtered page of programs with their universities
func (s *ProgramService) List(ctx context.Context, req dto.ProgramFilterRequest) (*dto.PaginatedResponse, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)
	programs, total, err := s.programs.List(ctx, repositories.ProgramFilter{
		UniversityID: req.UniversityID,
		Degree:       req.Degree,
		Search:       req.Search,
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProgramResponse, 0, len(programs))
	for _, p := range programs {
		items = append(items, dto.FromProgram(p))
	}
	return &dto.PaginatedResponse{
		Items:      items,
		Pagination: dto.NewPaginationInfo(page, pageSize, total),
	}, nil
}

// Get returns a single program
func (s *ProgramService) Get(ctx context.Context, id int64) (*dto.ProgramResponse, error) {
	p, err := s.programs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromProgram(p)
	return &resp, nil
}
