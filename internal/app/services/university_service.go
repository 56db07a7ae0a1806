package services

import (
	"context"

	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/app/repositories"
)

type universityStore interface {
	List(ctx context.Context, filter repositories.UniversityFilter) ([]*models.University, int, error)
	GetByID(ctx context.Context, id int64) (*models.University, error)
}

// UniversityService serves the university catalog.
type UniversityService struct {
	universities universityStore
}

// NewUniversityService creates a new UniversityService
func NewUniversityService(universities universityStore) *UniversityService {
	return &UniversityService{universities: universities}
}

// List returns a filtered page of universities
func (s *UniversityService) List(ctx context.Context, req dto.UniversityFilterRequest) (*dto.PaginatedResponse, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)
	universities, total, err := s.universities.List(ctx, repositories.UniversityFilter{
		Country:  req.Country,
		Search:   req.Search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.UniversityResponse, 0, len(universities))
	for _, u := range universities {
		items = append(items, dto.FromUniversity(u))
	}
	return &dto.PaginatedResponse{
		Items:      items,
		Pagination: dto.NewPaginationInfo(page, pageSize, total),
	}, nil
}

// Get returns a single university
func (s *UniversityService) Get(ctx context.Context, id int64) (*dto.UniversityResponse, error) {
	u, err := s.universities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUniversity(u)
	return &resp, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
