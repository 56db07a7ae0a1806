package dto

import (
	"time"

	"github.com/okaradag/unipath/internal/app/models"
)

// CreateApplicationRequest starts a new application to a program
type CreateApplicationRequest struct {
	ProgramID int64   `json:"programId" binding:"required,min=1"`
	Notes     *string `json:"notes,omitempty"`
}

// UpdateApplicationStatusRequest changes an application's review status
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=submitted under_review accepted rejected withdrawn"`
}

// ApplicationResponse represents an application in list and detail views
type ApplicationResponse struct {
	ID        int64            `json:"id"`
	StudentID int64            `json:"studentId"`
	Status    string           `json:"status"`
	Notes     *string          `json:"notes,omitempty"`
	Program   *ProgramResponse `json:"program,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// FromApplication converts an application model to its response form
func FromApplication(a *models.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:        a.ID,
		StudentID: a.StudentID,
		Status:    string(a.Status),
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Program != nil {
		p := FromProgram(a.Program)
		resp.Program = &p
	}
	return resp
}
