package services

import (
	"context"

	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/pkg/apperrors"
	"github.com/okaradag/unipath/internal/pkg/logger"
)

type applicationStore interface {
	Create(ctx context.Context, app *models.Application) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	ListByStudentID(ctx context.Context, studentID int64) ([]*models.Application, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
}

type studentGetter interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

// ApplicationService manages program applications. Creating one is
// gated on a fully completed profile.
type ApplicationService struct {
	applications applicationStore
	students     studentGetter
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(applications applicationStore, students studentGetter) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		students:     students,
	}
}

// Create submits a new application for the signed-in student
func (s *ApplicationService) Create(ctx context.Context, userID int64, req dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if student.CompletionStatus != models.CompletionComplete {
		return nil, apperrors.NewCustomError(apperrors.ErrProfileIncomplete,
			"finish onboarding before applying to programs")
	}

	app := &models.Application{
		StudentID: student.ID,
		ProgramID: req.ProgramID,
		Status:    models.ApplicationSubmitted,
		Notes:     req.Notes,
	}
	id, err := s.applications.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	created, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Info().Int64("studentID", student.ID).Int64("programID", req.ProgramID).Msg("Application submitted")
	resp := dto.FromApplication(created)
	return &resp, nil
}

// List returns the signed-in student's applications
func (s *ApplicationService) List(ctx context.Context, userID int64) ([]dto.ApplicationResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	apps, err := s.applications.ListByStudentID(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		items = append(items, dto.FromApplication(a))
	}
	return items, nil
}

// Get returns one of the student's applications, refusing access to
// other students' records
func (s *ApplicationService) Get(ctx context.Context, userID, applicationID int64) (*dto.ApplicationResponse, error) {
	app, err := s.ownedApplication(ctx, userID, applicationID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromApplication(app)
	return &resp, nil
}

// Withdraw moves one of the student's applications to withdrawn
func (s *ApplicationService) Withdraw(ctx context.Context, userID, applicationID int64) error {
	app, err := s.ownedApplication(ctx, userID, applicationID)
	if err != nil {
		return err
	}
	if app.Status == models.ApplicationWithdrawn {
		return nil
	}
	return s.applications.UpdateStatus(ctx, applicationID, models.ApplicationWithdrawn)
}

func (s *ApplicationService) ownedApplication(ctx context.Context, userID, applicationID int64) (*models.Application, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.StudentID != student.ID {
		return nil, apperrors.ErrPermissionDenied
	}
	return app, nil
}
