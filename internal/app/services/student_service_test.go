package services

import (
	"context"
	"testing"
	"time"

	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/pkg/apperrors"
)

type fakeProfileStudentStore struct {
	fakeStudentStore
}

func (f *fakeProfileStudentStore) UpdateStudyInfo(_ context.Context, _ int64, studyLevel, currentCountry *string) error {
	if err := f.check("study_info"); err != nil {
		return err
	}
	f.student.CurrentStudyLevel = studyLevel
	f.student.CurrentCountry = currentCountry
	return nil
}

type fakeProfileUserStore struct {
	user *models.User
}

func (f *fakeProfileUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, apperrors.ErrUserNotFound
	}
	return f.user, nil
}

func (f *fakeProfileUserStore) UpdateName(_ context.Context, _ int64, firstName, lastName string) error {
	f.user.FirstName = firstName
	f.user.LastName = lastName
	return nil
}

type fakeExamLister struct {
	exams []*models.ExamDocument
}

func (f *fakeExamLister) ListByStudentID(_ context.Context, _ int64) ([]*models.ExamDocument, error) {
	return f.exams, nil
}

func newProfileFixture() (*StudentService, *fakeProfileStudentStore, *fakeProfileUserStore) {
	level := "Bachelor"
	students := &fakeProfileStudentStore{fakeStudentStore: fakeStudentStore{
		student: &models.Student{
			ID:                7,
			UserID:            42,
			CurrentStudyLevel: &level,
			CompletionStatus:  models.CompletionPartial,
		},
	}}
	users := &fakeProfileUserStore{user: &models.User{
		ID:        42,
		Email:     "mert@example.com",
		FirstName: "Mert",
		LastName:  "Aksoy",
		RoleType:  models.RoleStudent,
	}}
	docs := &fakeDocumentStore{}
	svc := NewStudentService(students, users, &fakeExamLister{}, docs)
	return svc, students, users
}

func TestUpdateProfileChangesNameAndStudyInfo(t *testing.T) {
	svc, students, users := newProfileFixture()

	resp, err := svc.UpdateProfile(context.Background(), 42, dto.UpdateProfileRequest{
		FirstName:         "Mert Can",
		LastName:          "Aksoy",
		CurrentStudyLevel: "Master",
		CurrentCountry:    "Germany",
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	if users.user.FirstName != "Mert Can" {
		t.Errorf("first name = %q, want %q", users.user.FirstName, "Mert Can")
	}
	if students.student.CurrentStudyLevel == nil || *students.student.CurrentStudyLevel != "Master" {
		t.Errorf("study level not updated: %v", students.student.CurrentStudyLevel)
	}
	if students.student.CurrentCountry == nil || *students.student.CurrentCountry != "Germany" {
		t.Errorf("current country not updated: %v", students.student.CurrentCountry)
	}
	if resp.User.FirstName != "Mert Can" {
		t.Errorf("response first name = %q, want %q", resp.User.FirstName, "Mert Can")
	}
}

func TestUpdateProfileKeepsUnsetFields(t *testing.T) {
	svc, students, _ := newProfileFixture()

	_, err := svc.UpdateProfile(context.Background(), 42, dto.UpdateProfileRequest{
		FirstName: "Mert",
		LastName:  "Aksoy",
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	if students.student.CurrentStudyLevel == nil || *students.student.CurrentStudyLevel != "Bachelor" {
		t.Errorf("study level should be unchanged, got %v", students.student.CurrentStudyLevel)
	}
	if students.student.CurrentCountry != nil {
		t.Errorf("current country should stay unset, got %q", *students.student.CurrentCountry)
	}
}

func TestGetCompletionReportsCompleteness(t *testing.T) {
	svc, students, _ := newProfileFixture()

	resp, err := svc.GetCompletion(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetCompletion: %v", err)
	}
	if resp.IsComplete {
		t.Error("IsComplete = true for a bare profile")
	}
	if resp.CompletionPercentage == 100 {
		t.Error("percentage = 100 for a bare profile")
	}

	dob := time.Date(2004, time.March, 20, 0, 0, 0, 0, time.UTC)
	gradDate := time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)
	passport := "U12345678"
	country := "Azerbaijan"
	school := "Baku Lyceum No 6"
	grade := "4.8/5"
	students.student.DateOfBirth = &dob
	students.student.PassportNumber = &passport
	students.student.CountryOfOrigin = &country
	students.student.GraduatedSchoolName = &school
	students.student.GraduationDate = &gradDate
	students.student.GraduationGrade = &grade
	students.address = &models.Address{StudentID: 7, City: "Baku"}
	students.phone = &models.Phone{StudentID: 7, PhoneNumber: "501234567"}

	resp, err = svc.GetCompletion(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetCompletion: %v", err)
	}
	if !resp.IsComplete || resp.CompletionPercentage != 100 {
		t.Errorf("got %d%% complete=%v, want 100%% complete=true",
			resp.CompletionPercentage, resp.IsComplete)
	}
}

func TestUpdateProfileUnknownStudent(t *testing.T) {
	svc, _, _ := newProfileFixture()

	_, err := svc.UpdateProfile(context.Background(), 99, dto.UpdateProfileRequest{
		FirstName: "Kim",
		LastName:  "Lee",
	})
	if err == nil {
		t.Fatal("expected error for unknown student")
	}
}
