package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/app/onboarding"
	"github.com/okaradag/unipath/internal/app/repositories"
	"github.com/okaradag/unipath/internal/pkg/apperrors"
	"github.com/okaradag/unipath/internal/pkg/filestorage"
)

// fakeStudentStore records every write in order so tests can assert the
// submission sequence.
type fakeStudentStore struct {
	student *models.Student
	address *models.Address
	phone   *models.Phone
	calls   []string
	failOn  string
}

func (f *fakeStudentStore) check(call string) error {
	f.calls = append(f.calls, call)
	if f.failOn == call {
		return errors.New("store failure on " + call)
	}
	return nil
}

func (f *fakeStudentStore) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	if f.student == nil || f.student.UserID != userID {
		return nil, apperrors.ErrStudentNotFound
	}
	return f.student, nil
}

func (f *fakeStudentStore) UpdatePersonalInfo(_ context.Context, _ int64, info repositories.PersonalInfoUpdate) error {
	if err := f.check("personal_info"); err != nil {
		return err
	}
	f.student.DateOfBirth = &info.DateOfBirth
	f.student.PassportNumber = &info.PassportNumber
	f.student.CountryOfOrigin = &info.CountryOfOrigin
	f.student.HasDualCitizenship = info.HasDualCitizenship
	f.student.SecondNationality = info.SecondNationality
	return nil
}

func (f *fakeStudentStore) UpdateAcademicInfo(_ context.Context, _ int64, info repositories.AcademicInfoUpdate) error {
	if err := f.check("academic_info"); err != nil {
		return err
	}
	f.student.CurrentStudyLevel = &info.CurrentStudyLevel
	f.student.GraduatedSchoolName = &info.GraduatedSchoolName
	f.student.GraduationDate = &info.GraduationDate
	f.student.GraduationGrade = &info.GraduationGrade
	return nil
}

func (f *fakeStudentStore) UpdateCompletionStatus(_ context.Context, _ int64, status models.CompletionStatus) error {
	if err := f.check("status:" + string(status)); err != nil {
		return err
	}
	f.student.CompletionStatus = status
	return nil
}

func (f *fakeStudentStore) UpsertAddress(_ context.Context, addr *models.Address) error {
	if err := f.check("address"); err != nil {
		return err
	}
	f.address = addr
	return nil
}

func (f *fakeStudentStore) UpsertPhone(_ context.Context, phone *models.Phone) error {
	if err := f.check("phone"); err != nil {
		return err
	}
	f.phone = phone
	return nil
}

func (f *fakeStudentStore) GetAddress(_ context.Context, _ int64) (*models.Address, error) {
	if f.address == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	return f.address, nil
}

func (f *fakeStudentStore) GetPhone(_ context.Context, _ int64) (*models.Phone, error) {
	if f.phone == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	return f.phone, nil
}

type fakePhotoUpdater struct {
	photoURL string
}

func (f *fakePhotoUpdater) UpdateProfilePhoto(_ context.Context, _ int64, url string) error {
	f.photoURL = url
	return nil
}

type fakeExamStore struct {
	exams   []*models.ExamDocument
	deletes int
}

func (f *fakeExamStore) Create(_ context.Context, exam *models.ExamDocument) (int64, error) {
	exam.ID = int64(len(f.exams) + 1)
	f.exams = append(f.exams, exam)
	return exam.ID, nil
}

func (f *fakeExamStore) DeleteByStudentID(_ context.Context, _ int64) error {
	f.deletes++
	f.exams = nil
	return nil
}

type fakeDocumentStore struct {
	types map[string]int64
	docs  []*models.Document
	names []string
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{
		types: map[string]int64{
			models.DocTypePassportPhoto:    1,
			models.DocTypeTranscript:       2,
			models.DocTypeDiploma:          3,
			models.DocTypeGradeCertificate: 4,
			models.DocTypeOther:            5,
			models.DocTypeRegistryExtract:  6,
		},
	}
}

func (f *fakeDocumentStore) GetTypeByName(_ context.Context, name string) (*models.DocumentType, error) {
	id, ok := f.types[name]
	if !ok {
		return nil, apperrors.ErrDocumentTypeNotFound
	}
	return &models.DocumentType{ID: id, Name: name}, nil
}

func (f *fakeDocumentStore) Create(_ context.Context, doc *models.Document) (int64, error) {
	doc.ID = int64(len(f.docs) + 1)
	f.docs = append(f.docs, doc)
	for name, id := range f.types {
		if id == doc.DocTypeID {
			f.names = append(f.names, name)
		}
	}
	return doc.ID, nil
}

func (f *fakeDocumentStore) DeleteByStudentAndType(_ context.Context, _, docTypeID int64) error {
	var docs []*models.Document
	var names []string
	for i, d := range f.docs {
		if d.DocTypeID != docTypeID {
			docs = append(docs, d)
			names = append(names, f.names[i])
		}
	}
	f.docs, f.names = docs, names
	return nil
}

func (f *fakeDocumentStore) ListByStudentID(_ context.Context, _ int64) ([]*models.Document, []string, error) {
	return f.docs, f.names, nil
}

type fakeStorage struct {
	saved []string
}

func (f *fakeStorage) SaveToSlot(fh *multipart.FileHeader, slot filestorage.UploadSlot) (string, error) {
	if err := slot.Validate(fh); err != nil {
		return "", err
	}
	name := slot.FileName(fh.Filename)
	f.saved = append(f.saved, name)
	return "uploads/" + name, nil
}

func (f *fakeStorage) DeleteFile(string) error { return nil }

func (f *fakeStorage) PublicURL(filename string) string { return "uploads/" + filename }

func upload(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 1024}
}

func newTestOnboardingService(store *fakeStudentStore) (*OnboardingService, *fakePhotoUpdater, *fakeExamStore, *fakeDocumentStore, *fakeStorage) {
	photos := &fakePhotoUpdater{}
	exams := &fakeExamStore{}
	docs := newFakeDocumentStore()
	storage := &fakeStorage{}
	svc := NewOnboardingService(store, photos, exams, docs, storage)
	svc.now = func() time.Time { return time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC) }
	return svc, photos, exams, docs, storage
}

func freshStudent() *fakeStudentStore {
	return &fakeStudentStore{
		student: &models.Student{ID: 10, UserID: 1, CompletionStatus: models.CompletionIncomplete},
	}
}

func personalForm() dto.PersonalInfoForm {
	return dto.PersonalInfoForm{
		DateOfBirth:     "2004-03-20",
		PassportNumber:  "U12345678",
		CountryOfOrigin: "Azerbaijan",
		Address: dto.AddressForm{
			Street: "12 Nizami St", City: "Baku", State: "Baku", PostalCode: "AZ1000", Country: "Azerbaijan",
		},
		Phone: dto.PhoneForm{CountryCode: "+994", PhoneNumber: "501234567"},
	}
}

func academicForm() dto.AcademicInfoForm {
	return dto.AcademicInfoForm{
		CurrentStudyLevel:   "High School",
		GraduatedSchoolName: "Baku Lyceum No 6",
		GraduationDate:      "2024-06-30",
		GraduationGrade:     "4.8",
		Exams: []dto.ExamEntryForm{
			{ExamName: "IELTS", ExamScore: "7.5", ExamDate: "2025-11-02"},
		},
	}
}

func academicUploads() AcademicUploads {
	return AcademicUploads{
		Slots: map[string]*multipart.FileHeader{
			filestorage.SlotPassportPhoto: upload("photo.jpg"),
			filestorage.SlotTranscript:    upload("transcript.pdf"),
			filestorage.SlotDiploma:       upload("diploma.pdf"),
		},
	}
}

func TestSubmitPersonalWriteOrder(t *testing.T) {
	store := freshStudent()
	svc, _, _, _, _ := newTestOnboardingService(store)

	resp, err := svc.SubmitPersonal(context.Background(), 1, personalForm(), PersonalUploads{})
	if err != nil {
		t.Fatalf("SubmitPersonal: %v", err)
	}

	want := []string{"personal_info", "address", "phone", "status:partial"}
	if len(store.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", store.calls, want)
	}
	for i, call := range want {
		if store.calls[i] != call {
			t.Errorf("call[%d] = %q, want %q", i, store.calls[i], call)
		}
	}
	if resp.CompletionStatus != "partial" {
		t.Errorf("CompletionStatus = %q, want partial", resp.CompletionStatus)
	}
	if resp.Route != onboarding.RouteAcademicWizard {
		t.Errorf("Route = %q, want %q", resp.Route, onboarding.RouteAcademicWizard)
	}
}

func TestSubmitPersonalRejectsCompleteProfile(t *testing.T) {
	store := freshStudent()
	store.student.CompletionStatus = models.CompletionComplete
	svc, _, _, _, _ := newTestOnboardingService(store)

	_, err := svc.SubmitPersonal(context.Background(), 1, personalForm(), PersonalUploads{})
	if !errors.Is(err, apperrors.ErrOnboardingComplete) {
		t.Fatalf("err = %v, want ErrOnboardingComplete", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("calls = %v, want no writes on a complete profile", store.calls)
	}
	if store.student.CompletionStatus != models.CompletionComplete {
		t.Errorf("status = %q, complete profile must not be downgraded", store.student.CompletionStatus)
	}

	if _, err := svc.SkipPersonal(context.Background(), 1); !errors.Is(err, apperrors.ErrOnboardingComplete) {
		t.Errorf("SkipPersonal err = %v, want ErrOnboardingComplete", err)
	}
}

func TestSubmitPersonalStopsAtFirstFailure(t *testing.T) {
	store := freshStudent()
	store.failOn = "phone"
	svc, _, _, _, _ := newTestOnboardingService(store)

	_, err := svc.SubmitPersonal(context.Background(), 1, personalForm(), PersonalUploads{})
	if err == nil {
		t.Fatal("expected error from failing phone write")
	}

	// Earlier writes stay, the status move never happens.
	if store.address == nil {
		t.Error("address write should have landed before the failure")
	}
	if store.student.CompletionStatus != models.CompletionIncomplete {
		t.Errorf("status = %q, want incomplete after mid-sequence failure", store.student.CompletionStatus)
	}
	for _, call := range store.calls {
		if call == "status:partial" {
			t.Error("status must not be written after an earlier failure")
		}
	}
}

func TestSubmitPersonalRejectsInvalidForm(t *testing.T) {
	store := freshStudent()
	svc, _, _, _, _ := newTestOnboardingService(store)

	form := personalForm()
	form.DateOfBirth = "2015-01-01" // under the age floor

	_, err := svc.SubmitPersonal(context.Background(), 1, form, PersonalUploads{})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("no writes expected on validation failure, got %v", store.calls)
	}
}

func TestSubmitPersonalRegistryDocumentRule(t *testing.T) {
	store := freshStudent()
	svc, _, _, _, storage := newTestOnboardingService(store)

	second := "TR"
	form := personalForm()
	form.HasDualNationality = true
	form.SecondNationality = &second

	_, err := svc.SubmitPersonal(context.Background(), 1, form, PersonalUploads{})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed without registry document", err)
	}

	_, err = svc.SubmitPersonal(context.Background(), 1, form, PersonalUploads{
		RegistryDocument: upload("kayit.pdf"),
	})
	if err != nil {
		t.Fatalf("SubmitPersonal with registry document: %v", err)
	}
	if len(storage.saved) != 1 || storage.saved[0] != "1_nufus.pdf" {
		t.Errorf("saved = %v, want [1_nufus.pdf]", storage.saved)
	}
}

func TestSubmitPersonalStoresProfilePhoto(t *testing.T) {
	store := freshStudent()
	svc, photos, _, _, storage := newTestOnboardingService(store)

	_, err := svc.SubmitPersonal(context.Background(), 1, personalForm(), PersonalUploads{
		ProfilePhoto: upload("me.png"),
	})
	if err != nil {
		t.Fatalf("SubmitPersonal: %v", err)
	}
	if photos.photoURL != "uploads/1_profile.png" {
		t.Errorf("photoURL = %q, want uploads/1_profile.png", photos.photoURL)
	}
	if len(storage.saved) != 1 {
		t.Errorf("saved = %v, want a single file", storage.saved)
	}
}

func TestSkipPersonalWritesOnlyStatus(t *testing.T) {
	store := freshStudent()
	svc, _, _, _, _ := newTestOnboardingService(store)

	resp, err := svc.SkipPersonal(context.Background(), 1)
	if err != nil {
		t.Fatalf("SkipPersonal: %v", err)
	}
	if len(store.calls) != 1 || store.calls[0] != "status:incomplete" {
		t.Errorf("calls = %v, want only the status write", store.calls)
	}
	if resp.Route != onboarding.RouteDashboard {
		t.Errorf("Route = %q, want %q", resp.Route, onboarding.RouteDashboard)
	}
}

func TestSubmitAcademicRequiresPersonalInfo(t *testing.T) {
	store := freshStudent()
	svc, _, _, _, _ := newTestOnboardingService(store)

	_, err := svc.SubmitAcademic(context.Background(), 1, academicForm(), academicUploads())
	if !errors.Is(err, apperrors.ErrPersonalInfoMissing) {
		t.Fatalf("err = %v, want ErrPersonalInfoMissing", err)
	}
}

func completedPersonal(store *fakeStudentStore) {
	dob := time.Date(2004, 3, 20, 0, 0, 0, 0, time.UTC)
	passport := "U12345678"
	country := "Azerbaijan"
	store.student.DateOfBirth = &dob
	store.student.PassportNumber = &passport
	store.student.CountryOfOrigin = &country
	store.student.CompletionStatus = models.CompletionPartial
}

func TestSubmitAcademicFullFlow(t *testing.T) {
	store := freshStudent()
	completedPersonal(store)
	svc, _, exams, docs, storage := newTestOnboardingService(store)

	uploads := academicUploads()
	uploads.ExamReports = map[int]*multipart.FileHeader{0: upload("ielts.pdf")}
	uploads.Additional = []*multipart.FileHeader{upload("essay.docx")}

	resp, err := svc.SubmitAcademic(context.Background(), 1, academicForm(), uploads)
	if err != nil {
		t.Fatalf("SubmitAcademic: %v", err)
	}

	if store.student.CompletionStatus != models.CompletionComplete {
		t.Errorf("status = %q, want complete", store.student.CompletionStatus)
	}
	if resp.Route != onboarding.RouteDashboard {
		t.Errorf("Route = %q, want %q", resp.Route, onboarding.RouteDashboard)
	}
	if exams.deletes != 1 {
		t.Errorf("exam deletes = %d, want 1 before rewriting the list", exams.deletes)
	}
	if len(exams.exams) != 1 {
		t.Fatalf("exams = %d, want 1", len(exams.exams))
	}
	if exams.exams[0].FileURL == nil || *exams.exams[0].FileURL != "uploads/1_exam_0.pdf" {
		t.Errorf("exam FileURL = %v, want uploads/1_exam_0.pdf", exams.exams[0].FileURL)
	}
	if len(docs.docs) != 4 {
		t.Errorf("documents = %d, want 3 slots plus 1 additional", len(docs.docs))
	}

	// Deterministic names for every saved file.
	wantSaved := map[string]bool{
		"1_exam_0.pdf":         true,
		"1_passport_photo.jpg": true,
		"1_transcript.pdf":     true,
		"1_diploma.pdf":        true,
		"1_additional_0.docx":  true,
	}
	if len(storage.saved) != len(wantSaved) {
		t.Fatalf("saved = %v, want %d files", storage.saved, len(wantSaved))
	}
	for _, name := range storage.saved {
		if !wantSaved[name] {
			t.Errorf("unexpected saved file %q", name)
		}
	}
}

func TestSubmitAcademicMissingRequiredSlot(t *testing.T) {
	store := freshStudent()
	completedPersonal(store)
	svc, _, _, _, _ := newTestOnboardingService(store)

	uploads := academicUploads()
	delete(uploads.Slots, filestorage.SlotTranscript)

	_, err := svc.SubmitAcademic(context.Background(), 1, academicForm(), uploads)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed for missing transcript", err)
	}
	if store.student.CompletionStatus != models.CompletionPartial {
		t.Errorf("status = %q, want unchanged partial", store.student.CompletionStatus)
	}
}

func TestSubmitAcademicAcceptsExistingDocuments(t *testing.T) {
	store := freshStudent()
	completedPersonal(store)
	svc, _, _, docs, _ := newTestOnboardingService(store)

	// Transcript already on file from a previous submit.
	typeID := docs.types[models.DocTypeTranscript]
	docs.docs = append(docs.docs, &models.Document{ID: 1, StudentID: 10, DocTypeID: typeID})
	docs.names = append(docs.names, models.DocTypeTranscript)

	uploads := academicUploads()
	delete(uploads.Slots, filestorage.SlotTranscript)

	if _, err := svc.SubmitAcademic(context.Background(), 1, academicForm(), uploads); err != nil {
		t.Fatalf("SubmitAcademic with existing transcript: %v", err)
	}
}

func TestSkipAcademicWritesOnlyStatus(t *testing.T) {
	store := freshStudent()
	svc, _, _, _, _ := newTestOnboardingService(store)

	resp, err := svc.SkipAcademic(context.Background(), 1)
	if err != nil {
		t.Fatalf("SkipAcademic: %v", err)
	}
	if len(store.calls) != 1 || store.calls[0] != "status:partial" {
		t.Errorf("calls = %v, want only the status write", store.calls)
	}
	if resp.Route != onboarding.RouteDashboard {
		t.Errorf("Route = %q, want %q", resp.Route, onboarding.RouteDashboard)
	}
}

func TestStatusReportsCompletion(t *testing.T) {
	store := freshStudent()
	svc, _, _, _, _ := newTestOnboardingService(store)

	status, err := svc.Status(context.Background(), 1)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.CompletionPercentage != 0 {
		t.Errorf("CompletionPercentage = %d, want 0 for empty profile", status.CompletionPercentage)
	}
	if status.Route != onboarding.RoutePersonalWizard {
		t.Errorf("Route = %q, want %q", status.Route, onboarding.RoutePersonalWizard)
	}

	if _, err := svc.SubmitPersonal(context.Background(), 1, personalForm(), PersonalUploads{}); err != nil {
		t.Fatalf("SubmitPersonal: %v", err)
	}
	status, err = svc.Status(context.Background(), 1)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.CompletionPercentage <= 0 || status.CompletionPercentage >= 100 {
		t.Errorf("CompletionPercentage = %d, want within (0, 100) after personal submit", status.CompletionPercentage)
	}
	if status.CompletionStatus != "partial" {
		t.Errorf("CompletionStatus = %q, want partial", status.CompletionStatus)
	}
}

func TestValidateStepClampsOutOfRange(t *testing.T) {
	svc, _, _, _, _ := newTestOnboardingService(freshStudent())

	resp := svc.ValidatePersonalStep(99, personalForm())
	if resp.Step != onboarding.PersonalSteps {
		t.Errorf("Step = %d, want clamped to %d", resp.Step, onboarding.PersonalSteps)
	}
	if !resp.Valid {
		t.Errorf("clamped documents step should be valid, got %v", resp.Errors)
	}

	resp = svc.ValidateAcademicStep(0, dto.AcademicInfoForm{})
	if resp.Step != 1 {
		t.Errorf("Step = %d, want clamped to 1", resp.Step)
	}
	if resp.Valid {
		t.Error("empty education step should fail validation")
	}
}
