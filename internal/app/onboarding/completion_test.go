package onboarding

import (
	"testing"
	"time"

	"github.com/okaradag/unipath/internal/app/models"
)

func fullInput() CompletionInput {
	return CompletionInput{
		DateOfBirth:         true,
		PassportNumber:      true,
		CountryOfOrigin:     true,
		HasAddress:          true,
		HasPhone:            true,
		GraduatedSchoolName: true,
		GraduationDate:      true,
		GraduationGrade:     true,
	}
}

func TestEvaluateCompletionFull(t *testing.T) {
	res := EvaluateCompletion(fullInput())
	if res.Percentage != 100 {
		t.Errorf("Percentage = %d, want 100", res.Percentage)
	}
	if !res.Complete {
		t.Error("Complete = false, want true")
	}
	if len(res.MissingFields) != 0 {
		t.Errorf("MissingFields = %v, want empty", res.MissingFields)
	}
}

func TestEvaluateCompletionEmpty(t *testing.T) {
	res := EvaluateCompletion(CompletionInput{})
	if res.Percentage != 0 {
		t.Errorf("Percentage = %d, want 0", res.Percentage)
	}
	if res.Complete {
		t.Error("Complete = true, want false")
	}
	if len(res.MissingFields) != 8 {
		t.Errorf("MissingFields = %v, want all 8 fields", res.MissingFields)
	}
}

func TestEvaluateCompletionPartial(t *testing.T) {
	in := fullInput()
	in.GraduationGrade = false
	res := EvaluateCompletion(in)

	if res.Complete {
		t.Error("one missing field must not be complete")
	}
	if res.Percentage >= 100 || res.Percentage <= 0 {
		t.Errorf("Percentage = %d, want within (0, 100)", res.Percentage)
	}
	if len(res.MissingFields) != 1 || res.MissingFields[0] != "graduationGrade" {
		t.Errorf("MissingFields = %v, want [graduationGrade]", res.MissingFields)
	}
}

func TestCompletionInputFromStudent(t *testing.T) {
	dob := time.Date(2004, 3, 20, 0, 0, 0, 0, time.UTC)
	passport := "U12345678"
	empty := ""

	s := &models.Student{
		DateOfBirth:    &dob,
		PassportNumber: &passport,
		GraduationGrade: &empty,
	}
	in := CompletionInputFromStudent(s, true, false)

	if !in.DateOfBirth || !in.PassportNumber {
		t.Error("set fields should be reported present")
	}
	if in.CountryOfOrigin {
		t.Error("nil field should be reported missing")
	}
	if in.GraduationGrade {
		t.Error("empty string should be reported missing")
	}
	if !in.HasAddress || in.HasPhone {
		t.Errorf("relations: HasAddress = %v, HasPhone = %v", in.HasAddress, in.HasPhone)
	}
}

func TestLandingRoute(t *testing.T) {
	tests := []struct {
		status models.CompletionStatus
		want   string
	}{
		{models.CompletionComplete, RouteDashboard},
		{models.CompletionPartial, RoutePersonalWizard},
		{models.CompletionIncomplete, RoutePersonalWizard},
		{models.CompletionStatus("unknown"), RoutePersonalWizard},
		{models.CompletionStatus(""), RoutePersonalWizard},
	}

	for _, tt := range tests {
		if got := LandingRoute(tt.status); got != tt.want {
			t.Errorf("LandingRoute(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
