package onboarding

import (
	"fmt"
	"time"

	"github.com/okaradag/unipath/internal/app/models/dto"
)

// AcademicSteps is the number of steps in the academic info wizard:
// education background, exams, documents.
const AcademicSteps = 3

// NewAcademicWizard returns a sequencer sized for the academic wizard.
func NewAcademicWizard() *Wizard {
	return NewWizard(AcademicSteps)
}

// ValidateAcademicStep runs the rules for a single step of the academic
// wizard against the full form snapshot. Out-of-range steps are clamped.
func ValidateAcademicStep(step int, form dto.AcademicInfoForm, now time.Time) []FieldError {
	w := NewAcademicWizard()
	step = w.Goto(step)

	var errs []FieldError
	switch step {
	case 1:
		errs = requireString(errs, "currentStudyLevel", form.CurrentStudyLevel, "current study level is required")
		errs = requireString(errs, "graduatedSchoolName", form.GraduatedSchoolName, "graduated school name is required")
		errs = checkDateRange(errs, "graduationDate", form.GraduationDate, MinGraduationDate, now, "graduation date")
		errs = requireString(errs, "graduationGrade", form.GraduationGrade, "graduation grade is required")
	case 2:
		for i, exam := range form.Exams {
			prefix := fmt.Sprintf("exams[%d].", i)
			if !ValidExamName(exam.ExamName) {
				errs = append(errs, FieldError{
					Field:   prefix + "examName",
					Message: "exam name must be one of the supported exam types",
				})
			}
			errs = requireString(errs, prefix+"examScore", exam.ExamScore, "exam score is required")
			errs = checkDateRange(errs, prefix+"examDate", exam.ExamDate, MinExamDate, now, "exam date")
		}
	case 3:
		// Required document slots are checked at submit time.
	}
	return errs
}

// ValidateAcademicForm runs every step's rules over the whole form.
func ValidateAcademicForm(form dto.AcademicInfoForm, now time.Time) []FieldError {
	var errs []FieldError
	for step := 1; step <= AcademicSteps; step++ {
		errs = append(errs, ValidateAcademicStep(step, form, now)...)
	}
	return errs
}
