package services

import (
	"context"
	"errors"

	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/app/onboarding"
	"github.com/okaradag/unipath/internal/pkg/apperrors"
)

type userGetter interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type profileUserStore interface {
	userGetter
	UpdateName(ctx context.Context, userID int64, firstName, lastName string) error
}

type profileStudentStore interface {
	studentStore
	UpdateStudyInfo(ctx context.Context, studentID int64, studyLevel, currentCountry *string) error
}

type examLister interface {
	ListByStudentID(ctx context.Context, studentID int64) ([]*models.ExamDocument, error)
}

// StudentService assembles the full profile view for students.
type StudentService struct {
	students profileStudentStore
	users    profileUserStore
	exams    examLister
	docs     documentStore
}

// NewStudentService creates a new StudentService
func NewStudentService(students profileStudentStore, users profileUserStore, exams examLister, docs documentStore) *StudentService {
	return &StudentService{
		students: students,
		users:    users,
		exams:    exams,
		docs:     docs,
	}
}

// GetProfile returns the signed-in student's profile with its relations
func (s *StudentService) GetProfile(ctx context.Context, userID int64) (*dto.StudentProfileResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	student.User = user

	resp := dto.FromStudent(student)

	addr, err := s.students.GetAddress(ctx, student.ID)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}
	if addr != nil {
		resp.Address = &dto.AddressResponse{
			Street:     addr.Street,
			City:       addr.City,
			State:      addr.State,
			PostalCode: addr.PostalCode,
			Country:    addr.Country,
		}
	}

	phone, err := s.students.GetPhone(ctx, student.ID)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}
	if phone != nil {
		resp.Phone = &dto.PhoneResponse{
			CountryCode: phone.CountryCode,
			PhoneNumber: phone.PhoneNumber,
			PhoneType:   phone.PhoneType,
		}
	}

	exams, err := s.exams.ListByStudentID(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	for _, e := range exams {
		resp.Exams = append(resp.Exams, dto.FromExamDocument(e))
	}

	docs, typeNames, err := s.docs.ListByStudentID(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	for i, d := range docs {
		resp.Documents = append(resp.Documents, dto.DocumentResponse{
			ID:         d.ID,
			TypeName:   typeNames[i],
			FileName:   d.FileName,
			FileURL:    d.FileURL,
			UploadedAt: d.UploadedAt,
		})
	}

	return &resp, nil
}

// UpdateProfile applies the edits allowed from the profile view and
// returns the refreshed profile
func (s *StudentService) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*dto.StudentProfileResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateName(ctx, userID, req.FirstName, req.LastName); err != nil {
		return nil, err
	}

	studyLevel := student.CurrentStudyLevel
	if req.CurrentStudyLevel != "" {
		studyLevel = &req.CurrentStudyLevel
	}
	currentCountry := student.CurrentCountry
	if req.CurrentCountry != "" {
		currentCountry = &req.CurrentCountry
	}
	if err := s.students.UpdateStudyInfo(ctx, student.ID, studyLevel, currentCountry); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// GetCompletion returns the profile completeness verdict
func (s *StudentService) GetCompletion(ctx context.Context, userID int64) (*dto.CompletionResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	hasAddress := true
	if _, err := s.students.GetAddress(ctx, student.ID); err != nil {
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
		hasAddress = false
	}
	hasPhone := true
	if _, err := s.students.GetPhone(ctx, student.ID); err != nil {
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
		hasPhone = false
	}

	result := onboarding.EvaluateCompletion(onboarding.CompletionInputFromStudent(student, hasAddress, hasPhone))
	return &dto.CompletionResponse{
		CompletionStatus:     string(student.CompletionStatus),
		CompletionPercentage: result.Percentage,
		IsComplete:           result.Complete,
		MissingFields:        result.MissingFields,
	}, nil
}
