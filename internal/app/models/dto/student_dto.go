package dto

import (
	"time"

	"github.com/okaradag/unipath/internal/app/models"
)

// AddressResponse represents a student address
type AddressResponse struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PhoneResponse represents a student phone number
type PhoneResponse struct {
	CountryCode string `json:"countryCode"`
	PhoneNumber string `json:"phoneNumber"`
	PhoneType   string `json:"phoneType,omitempty"`
}

// ExamDocumentResponse represents a recorded exam with its optional report file
type ExamDocumentResponse struct {
	ID        int64   `json:"id"`
	ExamName  string  `json:"examName"`
	ExamScore string  `json:"examScore"`
	ExamDate  string  `json:"examDate"`
	FileURL   *string `json:"fileUrl,omitempty"`
}

// DocumentResponse represents an uploaded document
type DocumentResponse struct {
	ID         int64     `json:"id"`
	TypeName   string    `json:"typeName"`
	FileName   string    `json:"fileName"`
	FileURL    string    `json:"fileUrl"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// StudentProfileResponse is the full profile view for the signed-in student
type StudentProfileResponse struct {
	ID                  int64                  `json:"id"`
	User                UserResponse           `json:"user"`
	DateOfBirth         *string                `json:"dateOfBirth,omitempty"`
	PassportNumber      *string                `json:"passportNumber,omitempty"`
	CountryOfOrigin     *string                `json:"countryOfOrigin,omitempty"`
	HasDualCitizenship  bool                   `json:"hasDualCitizenship"`
	SecondNationality   *string                `json:"secondNationality,omitempty"`
	CurrentStudyLevel   *string                `json:"currentStudyLevel,omitempty"`
	CurrentCountry      *string                `json:"currentCountry,omitempty"`
	GraduatedSchoolName *string                `json:"graduatedSchoolName,omitempty"`
	GraduationDate      *string                `json:"graduationDate,omitempty"`
	GraduationGrade     *string                `json:"graduationGrade,omitempty"`
	AverageGrade        *float64               `json:"averageGrade,omitempty"`
	CompletionStatus    string                 `json:"completionStatus"`
	Address             *AddressResponse       `json:"address,omitempty"`
	Phone               *PhoneResponse         `json:"phone,omitempty"`
	Exams               []ExamDocumentResponse `json:"exams,omitempty"`
	Documents           []DocumentResponse     `json:"documents,omitempty"`
}

// UpdateProfileRequest carries the fields editable from the profile view.
// Email is intentionally absent, it is fixed at registration.
type UpdateProfileRequest struct {
	FirstName         string `json:"firstName" binding:"required,min=2,max=100"`
	LastName          string `json:"lastName" binding:"required,min=2,max=100"`
	CurrentStudyLevel string `json:"currentStudyLevel" binding:"omitempty,max=50"`
	CurrentCountry    string `json:"currentCountry" binding:"omitempty,max=100"`
}

// CompletionResponse reports profile completeness for the signed-in student
type CompletionResponse struct {
	CompletionStatus     string   `json:"completionStatus"`
	CompletionPercentage int      `json:"completionPercentage"`
	IsComplete           bool     `json:"isComplete"`
	MissingFields        []string `json:"missingFields,omitempty"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// FromStudent converts a student model to its profile response form
func FromStudent(s *models.Student) StudentProfileResponse {
	resp := StudentProfileResponse{
		ID:                  s.ID,
		DateOfBirth:         formatDate(s.DateOfBirth),
		PassportNumber:      s.PassportNumber,
		CountryOfOrigin:     s.CountryOfOrigin,
		HasDualCitizenship:  s.HasDualCitizenship,
		SecondNationality:   s.SecondNationality,
		CurrentStudyLevel:   s.CurrentStudyLevel,
		CurrentCountry:      s.CurrentCountry,
		GraduatedSchoolName: s.GraduatedSchoolName,
		GraduationDate:      formatDate(s.GraduationDate),
		GraduationGrade:     s.GraduationGrade,
		AverageGrade:        s.AverageGrade,
		CompletionStatus:    string(s.CompletionStatus),
	}
	if s.User != nil {
		resp.User = FromUser(s.User)
	}
	return resp
}

// FromExamDocument converts an exam model to its response form
func FromExamDocument(e *models.ExamDocument) ExamDocumentResponse {
	return ExamDocumentResponse{
		ID:        e.ID,
		ExamName:  e.ExamName,
		ExamScore: e.ExamScore,
		ExamDate:  e.ExamDate.Format("2006-01-02"),
		FileURL:   e.FileURL,
	}
}
