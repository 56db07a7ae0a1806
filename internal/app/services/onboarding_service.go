package services

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/app/onboarding"
	"github.com/okaradag/unipath/internal/app/repositories"
	"github.com/okaradag/unipath/internal/pkg/apperrors"
	"github.com/okaradag/unipath/internal/pkg/filestorage"
	"github.com/okaradag/unipath/internal/pkg/logger"
)

// studentStore is the slice of the student repository onboarding writes
// through.
type studentStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	UpdatePersonalInfo(ctx context.Context, studentID int64, info repositories.PersonalInfoUpdate) error
	UpdateAcademicInfo(ctx context.Context, studentID int64, info repositories.AcademicInfoUpdate) error
	UpdateCompletionStatus(ctx context.Context, studentID int64, status models.CompletionStatus) error
	UpsertAddress(ctx context.Context, addr *models.Address) error
	UpsertPhone(ctx context.Context, phone *models.Phone) error
	GetAddress(ctx context.Context, studentID int64) (*models.Address, error)
	GetPhone(ctx context.Context, studentID int64) (*models.Phone, error)
}

type profilePhotoUpdater interface {
	UpdateProfilePhoto(ctx context.Context, userID int64, photoURL string) error
}

type examStore interface {
	Create(ctx context.Context, exam *models.ExamDocument) (int64, error)
	DeleteByStudentID(ctx context.Context, studentID int64) error
}

type documentStore interface {
	GetTypeByName(ctx context.Context, name string) (*models.DocumentType, error)
	Create(ctx context.Context, doc *models.Document) (int64, error)
	DeleteByStudentAndType(ctx context.Context, studentID, docTypeID int64) error
	ListByStudentID(ctx context.Context, studentID int64) ([]*models.Document, []string, error)
}

// PersonalUploads are the files carried by a personal wizard submit.
type PersonalUploads struct {
	ProfilePhoto     *multipart.FileHeader
	RegistryDocument *multipart.FileHeader
}

// AcademicUploads are the files carried by an academic wizard submit.
// ExamReports is keyed by the index of the exam entry it belongs to.
type AcademicUploads struct {
	ExamReports map[int]*multipart.FileHeader
	Slots       map[string]*multipart.FileHeader
	Additional  []*multipart.FileHeader
}

// requiredSlots are the document slots that must hold a file before the
// academic wizard completes.
var requiredSlots = []string{
	filestorage.SlotPassportPhoto,
	filestorage.SlotTranscript,
	filestorage.SlotDiploma,
}

// slotDocTypes maps upload slot names to seeded document type names.
var slotDocTypes = map[string]string{
	filestorage.SlotPassportPhoto: models.DocTypePassportPhoto,
	filestorage.SlotTranscript:    models.DocTypeTranscript,
	filestorage.SlotDiploma:       models.DocTypeDiploma,
	filestorage.SlotDegreeGrade:   models.DocTypeGradeCertificate,
}

// OnboardingService drives the two onboarding wizards. Submits run their
// writes in a fixed order and stop at the first failure; completed
// writes are kept, so a retry picks up where the data left off.
type OnboardingService struct {
	students studentStore
	users    profilePhotoUpdater
	exams    examStore
	docs     documentStore
	storage  filestorage.FileStorage
	now      func() time.Time
}

// NewOnboardingService creates a new OnboardingService
func NewOnboardingService(students studentStore, users profilePhotoUpdater, exams examStore, docs documentStore, storage filestorage.FileStorage) *OnboardingService {
	return &OnboardingService{
		students: students,
		users:    users,
		exams:    exams,
		docs:     docs,
		storage:  storage,
		now:      time.Now,
	}
}

// Status reports where a student stands in onboarding
func (s *OnboardingService) Status(ctx context.Context, userID int64) (*dto.OnboardingStatusResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.evaluate(ctx, student)
	if err != nil {
		return nil, err
	}

	return &dto.OnboardingStatusResponse{
		CompletionStatus:     string(student.CompletionStatus),
		CompletionPercentage: result.Percentage,
		MissingFields:        result.MissingFields,
		Route:                onboarding.LandingRoute(student.CompletionStatus),
	}, nil
}

// ValidatePersonalStep checks one personal wizard step without writing
func (s *OnboardingService) ValidatePersonalStep(step int, form dto.PersonalInfoForm) *dto.StepValidationResponse {
	return stepResponse(onboarding.NewPersonalWizard().Goto(step), onboarding.ValidatePersonalStep(step, form, s.now()))
}

// ValidateAcademicStep checks one academic wizard step without writing
func (s *OnboardingService) ValidateAcademicStep(step int, form dto.AcademicInfoForm) *dto.StepValidationResponse {
	return stepResponse(onboarding.NewAcademicWizard().Goto(step), onboarding.ValidateAcademicStep(step, form, s.now()))
}

func stepResponse(clamped int, errs []onboarding.FieldError) *dto.StepValidationResponse {
	resp := &dto.StepValidationResponse{Valid: len(errs) == 0, Step: clamped}
	for _, e := range errs {
		resp.Errors = append(resp.Errors, *dto.NewErrorDetail(dto.ErrorCodeValidationFailed, e.Message).WithField(e.Field))
	}
	return resp
}

// SubmitPersonal validates the whole personal form and runs its write
// sequence: student columns, address, phone, uploads, then the status
// move to partial.
func (s *OnboardingService) SubmitPersonal(ctx context.Context, userID int64, form dto.PersonalInfoForm, uploads PersonalUploads) (*dto.OnboardingSubmitResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if student.CompletionStatus == models.CompletionComplete {
		return nil, apperrors.NewCustomError(apperrors.ErrOnboardingComplete, "profile is already complete").
			WithDetails(map[string]interface{}{"route": onboarding.RouteDashboard})
	}

	if errs := onboarding.ValidatePersonalForm(form, s.now()); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if onboarding.RequiresRegistryDocument(form) && uploads.RegistryDocument == nil {
		if !s.hasDocument(ctx, student.ID, models.DocTypeRegistryExtract) {
			return nil, validationError([]onboarding.FieldError{{
				Field:   "registryDocument",
				Message: "civil registry extract is required for this second nationality",
			}})
		}
	}

	dob, err := onboarding.ParseDate(form.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "date of birth must be a valid date")
	}

	update := repositories.PersonalInfoUpdate{
		DateOfBirth:        dob,
		PassportNumber:     form.PassportNumber,
		CountryOfOrigin:    form.CountryOfOrigin,
		HasDualCitizenship: form.HasDualNationality,
		SecondNationality:  form.SecondNationality,
	}
	if err := s.students.UpdatePersonalInfo(ctx, student.ID, update); err != nil {
		return nil, err
	}

	if err := s.students.UpsertAddress(ctx, &models.Address{
		StudentID:  student.ID,
		Street:     form.Address.Street,
		City:       form.Address.City,
		State:      form.Address.State,
		PostalCode: form.Address.PostalCode,
		Country:    form.Address.Country,
	}); err != nil {
		return nil, err
	}

	if err := s.students.UpsertPhone(ctx, &models.Phone{
		StudentID:   student.ID,
		CountryCode: form.Phone.CountryCode,
		PhoneNumber: form.Phone.PhoneNumber,
		PhoneType:   form.Phone.PhoneType,
	}); err != nil {
		return nil, err
	}

	if uploads.ProfilePhoto != nil {
		url, err := s.storage.SaveToSlot(uploads.ProfilePhoto, filestorage.ProfilePhotoSlot(userID))
		if err != nil {
			return nil, err
		}
		if err := s.users.UpdateProfilePhoto(ctx, userID, url); err != nil {
			return nil, err
		}
	}

	if uploads.RegistryDocument != nil {
		err := s.storeDocument(ctx, student.ID, models.DocTypeRegistryExtract,
			uploads.RegistryDocument, filestorage.RegistrySlot(userID))
		if err != nil {
			return nil, err
		}
	}

	if err := s.students.UpdateCompletionStatus(ctx, student.ID, models.CompletionPartial); err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", userID).Msg("Personal onboarding submitted")
	return &dto.OnboardingSubmitResponse{
		CompletionStatus: string(models.CompletionPartial),
		Route:            onboarding.RouteAcademicWizard,
	}, nil
}

// SkipPersonal records the skip without touching profile data
func (s *OnboardingService) SkipPersonal(ctx context.Context, userID int64) (*dto.OnboardingSubmitResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if student.CompletionStatus == models.CompletionComplete {
		return nil, apperrors.NewCustomError(apperrors.ErrOnboardingComplete, "profile is already complete").
			WithDetails(map[string]interface{}{"route": onboarding.RouteDashboard})
	}
	if err := s.students.UpdateCompletionStatus(ctx, student.ID, models.CompletionIncomplete); err != nil {
		return nil, err
	}
	return &dto.OnboardingSubmitResponse{
		CompletionStatus: string(models.CompletionIncomplete),
		Route:            onboarding.RouteDashboard,
	}, nil
}

// SubmitAcademic validates the academic form and runs its write
// sequence: student columns, the exam list, document uploads, then the
// status move to complete. Entry requires the identity fields from the
// personal wizard to be on file.
func (s *OnboardingService) SubmitAcademic(ctx context.Context, userID int64, form dto.AcademicInfoForm, uploads AcademicUploads) (*dto.OnboardingSubmitResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAcademicEntry(student); err != nil {
		return nil, err
	}

	if errs := onboarding.ValidateAcademicForm(form, s.now()); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if errs := s.checkRequiredSlots(ctx, student.ID, uploads); len(errs) > 0 {
		return nil, validationError(errs)
	}

	gradDate, err := onboarding.ParseDate(form.GraduationDate)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "graduation date must be a valid date")
	}

	update := repositories.AcademicInfoUpdate{
		CurrentStudyLevel:   form.CurrentStudyLevel,
		GraduatedSchoolName: form.GraduatedSchoolName,
		GraduationDate:      gradDate,
		GraduationGrade:     form.GraduationGrade,
		AverageGrade:        form.AverageGrade,
	}
	if form.CurrentCountry != "" {
		update.CurrentCountry = &form.CurrentCountry
	}
	if err := s.students.UpdateAcademicInfo(ctx, student.ID, update); err != nil {
		return nil, err
	}

	// The wizard carries the full exam list each time, so the stored set
	// is replaced wholesale.
	if err := s.exams.DeleteByStudentID(ctx, student.ID); err != nil {
		return nil, err
	}
	for i, entry := range form.Exams {
		examDate, err := onboarding.ParseDate(entry.ExamDate)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "exam date must be a valid date")
		}
		exam := &models.ExamDocument{
			StudentID: student.ID,
			ExamName:  entry.ExamName,
			ExamScore: entry.ExamScore,
			ExamDate:  examDate,
		}
		if report := uploads.ExamReports[i]; report != nil {
			url, err := s.storage.SaveToSlot(report, filestorage.ExamReportSlot(userID, i))
			if err != nil {
				return nil, err
			}
			exam.FileURL = &url
		}
		if _, err := s.exams.Create(ctx, exam); err != nil {
			return nil, err
		}
	}

	for slot, typeName := range slotDocTypes {
		fh := uploads.Slots[slot]
		if fh == nil {
			continue
		}
		err := s.storeDocument(ctx, student.ID, typeName, fh, filestorage.DocumentSlot(userID, slot))
		if err != nil {
			return nil, err
		}
	}
	for i, fh := range uploads.Additional {
		if fh == nil {
			continue
		}
		err := s.storeAdditionalDocument(ctx, student.ID, fh, filestorage.AdditionalSlot(userID, i))
		if err != nil {
			return nil, err
		}
	}

	if err := s.students.UpdateCompletionStatus(ctx, student.ID, models.CompletionComplete); err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", userID).Msg("Academic onboarding submitted")
	return &dto.OnboardingSubmitResponse{
		CompletionStatus: string(models.CompletionComplete),
		Route:            onboarding.RouteDashboard,
	}, nil
}

// SkipAcademic records the skip without touching profile data
func (s *OnboardingService) SkipAcademic(ctx context.Context, userID int64) (*dto.OnboardingSubmitResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.students.UpdateCompletionStatus(ctx, student.ID, models.CompletionPartial); err != nil {
		return nil, err
	}
	return &dto.OnboardingSubmitResponse{
		CompletionStatus: string(models.CompletionPartial),
		Route:            onboarding.RouteDashboard,
	}, nil
}

// checkAcademicEntry enforces the gate into the academic wizard: the
// identity fields written by the personal wizard must already exist.
func (s *OnboardingService) checkAcademicEntry(student *models.Student) error {
	if student.DateOfBirth == nil ||
		student.PassportNumber == nil || *student.PassportNumber == "" ||
		student.CountryOfOrigin == nil || *student.CountryOfOrigin == "" {
		return apperrors.NewCustomError(apperrors.ErrPersonalInfoMissing,
			"complete the personal information step before academic onboarding")
	}
	return nil
}

// checkRequiredSlots verifies each mandatory document slot either has an
// upload in this submit or a document already on file.
func (s *OnboardingService) checkRequiredSlots(ctx context.Context, studentID int64, uploads AcademicUploads) []onboarding.FieldError {
	var errs []onboarding.FieldError
	for _, slot := range requiredSlots {
		if uploads.Slots[slot] != nil {
			continue
		}
		if s.hasDocument(ctx, studentID, slotDocTypes[slot]) {
			continue
		}
		errs = append(errs, onboarding.FieldError{
			Field:   slot,
			Message: "a file for this document is required",
		})
	}
	return errs
}

func (s *OnboardingService) hasDocument(ctx context.Context, studentID int64, typeName string) bool {
	_, typeNames, err := s.docs.ListByStudentID(ctx, studentID)
	if err != nil {
		logger.Warn().Err(err).Int64("studentID", studentID).Msg("Failed to list documents")
		return false
	}
	for _, name := range typeNames {
		if name == typeName {
			return true
		}
	}
	return false
}

// storeDocument saves an upload into a single-file slot and replaces the
// previous record of that type.
func (s *OnboardingService) storeDocument(ctx context.Context, studentID int64, typeName string, fh *multipart.FileHeader, slot filestorage.UploadSlot) error {
	docType, err := s.docs.GetTypeByName(ctx, typeName)
	if err != nil {
		return err
	}
	url, err := s.storage.SaveToSlot(fh, slot)
	if err != nil {
		return err
	}
	if err := s.docs.DeleteByStudentAndType(ctx, studentID, docType.ID); err != nil {
		return err
	}
	_, err = s.docs.Create(ctx, &models.Document{
		StudentID: studentID,
		DocTypeID: docType.ID,
		FileName:  fh.Filename,
		FileURL:   url,
	})
	return err
}

// storeAdditionalDocument saves one entry of the multi-file extras list.
func (s *OnboardingService) storeAdditionalDocument(ctx context.Context, studentID int64, fh *multipart.FileHeader, slot filestorage.UploadSlot) error {
	docType, err := s.docs.GetTypeByName(ctx, models.DocTypeOther)
	if err != nil {
		return err
	}
	url, err := s.storage.SaveToSlot(fh, slot)
	if err != nil {
		return err
	}
	_, err = s.docs.Create(ctx, &models.Document{
		StudentID: studentID,
		DocTypeID: docType.ID,
		FileName:  fh.Filename,
		FileURL:   url,
	})
	return err
}

func (s *OnboardingService) evaluate(ctx context.Context, student *models.Student) (onboarding.CompletionResult, error) {
	hasAddress, err := s.hasRelation(func() error {
		_, err := s.students.GetAddress(ctx, student.ID)
		return err
	})
	if err != nil {
		return onboarding.CompletionResult{}, err
	}
	hasPhone, err := s.hasRelation(func() error {
		_, err := s.students.GetPhone(ctx, student.ID)
		return err
	})
	if err != nil {
		return onboarding.CompletionResult{}, err
	}
	return onboarding.EvaluateCompletion(onboarding.CompletionInputFromStudent(student, hasAddress, hasPhone)), nil
}

func (s *OnboardingService) hasRelation(get func() error) (bool, error) {
	err := get()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return false, nil
	}
	return false, err
}

func validationError(errs []onboarding.FieldError) error {
	details := make(map[string]interface{}, len(errs))
	for _, e := range errs {
		details[e.Field] = e.Message
	}
	return apperrors.NewCustomError(apperrors.ErrValidationFailed, "form validation failed").WithDetails(details)
}
