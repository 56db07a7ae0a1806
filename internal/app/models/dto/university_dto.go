package dto

import "github.com/okaradag/unipath/internal/app/models"

// UniversityResponse represents a university in list and detail views
type UniversityResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	City        string  `json:"city"`
	Website     *string `json:"website,omitempty"`
	LogoURL     *string `json:"logoUrl,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UniversityFilterRequest carries list filters for universities
type UniversityFilterRequest struct {
	Country  string `form:"country"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// FromUniversity converts a university model to its response form
func FromUniversity(u *models.University) UniversityResponse {
	return UniversityResponse{
		ID:          u.ID,
		Name:        u.Name,
		Country:     u.Country,
		City:        u.City,
		Website:     u.Website,
		LogoURL:     u.LogoURL,
		Description: u.Description,
	}
}

// ProgramResponse represents a study program in list and detail views
type ProgramResponse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Degree      string              `json:"degree"`
	Language    string              `json:"language"`
	Duration    int                 `json:"durationYears"`
	TuitionFee  *float64            `json:"tuitionFee,omitempty"`
	Currency    *string             `json:"currency,omitempty"`
	Description *string             `json:"description,omitempty"`
	University  *UniversityResponse `json:"university,omitempty"`
}

// ProgramFilterRequest carries list filters for programs
type ProgramFilterRequest struct {
	UniversityID int64  `form:"universityId" binding:"omitempty,min=1"`
	Degree       string `form:"degree"`
	Search       string `form:"search"`
	Page         int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize     int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// FromProgram converts a program model to its response form
func FromProgram(p *models.Program) ProgramResponse {
	resp := ProgramResponse{
		ID:          p.ID,
		Name:        p.Name,
		Degree:      p.Degree,
		Language:    p.Language,
		Duration:    p.DurationYrs,
		TuitionFee:  p.TuitionFee,
		Currency:    p.Currency,
		Description: p.Description,
	}
	if p.University != nil {
		u := FromUniversity(p.University)
		resp.University = &u
	}
	return resp
}
