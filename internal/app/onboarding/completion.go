package onboarding

import "github.com/okaradag/unipath/internal/app/models"

// CompletionInput is the snapshot of profile data the evaluator looks at.
// The caller assembles it from the student row and its relations.
type CompletionInput struct {
	DateOfBirth         bool
	PassportNumber      bool
	CountryOfOrigin     bool
	HasAddress          bool
	HasPhone            bool
	GraduatedSchoolName bool
	GraduationDate      bool
	GraduationGrade     bool
}

// CompletionResult is the evaluator's verdict over a profile snapshot.
type CompletionResult struct {
	Percentage    int
	MissingFields []string
	Complete      bool
}

// completionFields pairs each tracked field with its accessor, in the
// order missing fields are reported.
var completionFields = []struct {
	name string
	get  func(CompletionInput) bool
}{
	{"dateOfBirth", func(in CompletionInput) bool { return in.DateOfBirth }},
	{"passportNumber", func(in CompletionInput) bool { return in.PassportNumber }},
	{"countryOfOrigin", func(in CompletionInput) bool { return in.CountryOfOrigin }},
	{"address", func(in CompletionInput) bool { return in.HasAddress }},
	{"phone", func(in CompletionInput) bool { return in.HasPhone }},
	{"graduatedSchoolName", func(in CompletionInput) bool { return in.GraduatedSchoolName }},
	{"graduationDate", func(in CompletionInput) bool { return in.GraduationDate }},
	{"graduationGrade", func(in CompletionInput) bool { return in.GraduationGrade }},
}

// EvaluateCompletion computes how complete a profile is. The percentage
// is always within [0, 100] and Complete holds exactly when it is 100.
func EvaluateCompletion(in CompletionInput) CompletionResult {
	filled := 0
	var missing []string
	for _, f := range completionFields {
		if f.get(in) {
			filled++
		} else {
			missing = append(missing, f.name)
		}
	}
	pct := filled * 100 / len(completionFields)
	return CompletionResult{
		Percentage:    pct,
		MissingFields: missing,
		Complete:      pct == 100,
	}
}

// CompletionInputFromStudent builds the evaluator snapshot from a student
// row and the presence of its address and phone relations.
func CompletionInputFromStudent(s *models.Student, hasAddress, hasPhone bool) CompletionInput {
	return CompletionInput{
		DateOfBirth:         s.DateOfBirth != nil,
		PassportNumber:      notEmpty(s.PassportNumber),
		CountryOfOrigin:     notEmpty(s.CountryOfOrigin),
		HasAddress:          hasAddress,
		HasPhone:            hasPhone,
		GraduatedSchoolName: notEmpty(s.GraduatedSchoolName),
		GraduationDate:      s.GraduationDate != nil,
		GraduationGrade:     notEmpty(s.GraduationGrade),
	}
}

func notEmpty(s *string) bool {
	return s != nil && *s != ""
}
