package onboarding

import (
	"testing"

	"github.com/okaradag/unipath/internal/app/models/dto"
)

func validAcademicForm() dto.AcademicInfoForm {
	return dto.AcademicInfoForm{
		CurrentStudyLevel:   "High School",
		CurrentCountry:      "Azerbaijan",
		GraduatedSchoolName: "Baku Lyceum No 6",
		GraduationDate:      "2024-06-30",
		GraduationGrade:     "4.8",
		Exams: []dto.ExamEntryForm{
			{ExamName: "IELTS", ExamScore: "7.5", ExamDate: "2025-11-02"},
		},
	}
}

func TestValidateAcademicFormValid(t *testing.T) {
	if errs := ValidateAcademicForm(validAcademicForm(), testNow); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestGraduationDateBounds(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"earliest accepted", "1950-01-01", false},
		{"before the floor", "1949-12-31", true},
		{"today", "2026-06-15", false},
		{"in the future", "2026-06-16", true},
		{"not a date", "June 2024", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validAcademicForm()
			form.GraduationDate = tt.date
			errs := ValidateAcademicStep(1, form, testNow)
			_, found := fieldErrors(errs)["graduationDate"]
			if found != tt.wantErr {
				t.Errorf("date %q: error = %v, want %v (%v)", tt.date, found, tt.wantErr, errs)
			}
		})
	}
}

func TestExamValidation(t *testing.T) {
	tests := []struct {
		name      string
		exam      dto.ExamEntryForm
		wantField string
	}{
		{"unknown exam type", dto.ExamEntryForm{ExamName: "ABITUR", ExamScore: "1.0", ExamDate: "2025-01-10"}, "exams[0].examName"},
		{"missing score", dto.ExamEntryForm{ExamName: "SAT", ExamScore: "", ExamDate: "2025-01-10"}, "exams[0].examScore"},
		{"exam before floor", dto.ExamEntryForm{ExamName: "TOEFL", ExamScore: "100", ExamDate: "1999-12-31"}, "exams[0].examDate"},
		{"exam in the future", dto.ExamEntryForm{ExamName: "GRE", ExamScore: "320", ExamDate: "2027-01-01"}, "exams[0].examDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validAcademicForm()
			form.Exams = []dto.ExamEntryForm{tt.exam}
			errs := ValidateAcademicStep(2, form, testNow)
			if _, ok := fieldErrors(errs)[tt.wantField]; !ok {
				t.Errorf("expected error on %s, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestExamsAreOptional(t *testing.T) {
	form := validAcademicForm()
	form.Exams = nil
	if errs := ValidateAcademicStep(2, form, testNow); len(errs) != 0 {
		t.Errorf("empty exam list should pass, got %v", errs)
	}
}

func TestValidExamName(t *testing.T) {
	for _, name := range []string{"SAT", "IELTS", "YÖKDİL", "Other"} {
		if !ValidExamName(name) {
			t.Errorf("ValidExamName(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"sat", "", "ABITUR"} {
		if ValidExamName(name) {
			t.Errorf("ValidExamName(%q) = true, want false", name)
		}
	}
}
