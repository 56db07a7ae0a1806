package onboarding

import (
	"testing"
	"time"

	"github.com/okaradag/unipath/internal/app/models/dto"
)

var testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func validPersonalForm() dto.PersonalInfoForm {
	return dto.PersonalInfoForm{
		DateOfBirth:     "2004-03-20",
		PassportNumber:  "U12345678",
		CountryOfOrigin: "Azerbaijan",
		Address: dto.AddressForm{
			Street:     "12 Nizami St",
			City:       "Baku",
			State:      "Baku",
			PostalCode: "AZ1000",
			Country:    "Azerbaijan",
		},
		Phone: dto.PhoneForm{
			CountryCode: "+994",
			PhoneNumber: "501234567",
		},
	}
}

func fieldErrors(errs []FieldError) map[string]string {
	m := make(map[string]string, len(errs))
	for _, e := range errs {
		m[e.Field] = e.Message
	}
	return m
}

func TestValidatePersonalFormValid(t *testing.T) {
	if errs := ValidatePersonalForm(validPersonalForm(), testNow); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestDateOfBirthAgeBounds(t *testing.T) {
	tests := []struct {
		name    string
		dob     string
		wantErr bool
	}{
		{"just turned 16", "2010-06-15", false},
		{"one day short of 16", "2010-06-16", true},
		{"exactly 100", "1926-06-15", false},
		{"101 years old", "1925-06-14", true},
		{"typical adult", "2000-01-01", false},
		{"garbage input", "not-a-date", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validPersonalForm()
			form.DateOfBirth = tt.dob
			errs := ValidatePersonalStep(1, form, testNow)
			_, found := fieldErrors(errs)["dateOfBirth"]
			if found != tt.wantErr {
				t.Errorf("dob %q: error = %v, want %v (%v)", tt.dob, found, tt.wantErr, errs)
			}
		})
	}
}

func TestAddressFieldsAllRequired(t *testing.T) {
	tests := []struct {
		field string
		mut   func(*dto.PersonalInfoForm)
	}{
		{"address.street", func(f *dto.PersonalInfoForm) { f.Address.Street = "" }},
		{"address.city", func(f *dto.PersonalInfoForm) { f.Address.City = "" }},
		{"address.state", func(f *dto.PersonalInfoForm) { f.Address.State = "" }},
		{"address.postalCode", func(f *dto.PersonalInfoForm) { f.Address.PostalCode = "" }},
		{"address.country", func(f *dto.PersonalInfoForm) { f.Address.Country = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			form := validPersonalForm()
			tt.mut(&form)
			errs := ValidatePersonalStep(2, form, testNow)
			if _, ok := fieldErrors(errs)[tt.field]; !ok {
				t.Errorf("expected %s error, got %v", tt.field, errs)
			}
		})
	}
}

func TestDualNationalityRequiresSecond(t *testing.T) {
	form := validPersonalForm()
	form.HasDualNationality = true
	form.SecondNationality = nil

	errs := ValidatePersonalStep(1, form, testNow)
	if _, ok := fieldErrors(errs)["secondNationality"]; !ok {
		t.Errorf("expected secondNationality error, got %v", errs)
	}

	form.SecondNationality = strPtr("Germany")
	if errs := ValidatePersonalStep(1, form, testNow); len(errs) != 0 {
		t.Errorf("expected no errors with second nationality set, got %v", errs)
	}
}

func TestRequiresRegistryDocument(t *testing.T) {
	tests := []struct {
		name   string
		dual   bool
		second *string
		want   bool
	}{
		{"single nationality", false, nil, false},
		{"dual non-registry country", true, strPtr("Germany"), false},
		{"dual registry country", true, strPtr("TR"), true},
		{"lowercase code", true, strPtr("tr"), true},
		{"code with spaces", true, strPtr(" TR "), true},
		{"registry code but not dual", false, strPtr("TR"), false},
		{"dual with nil second", true, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validPersonalForm()
			form.HasDualNationality = tt.dual
			form.SecondNationality = tt.second
			if got := RequiresRegistryDocument(form); got != tt.want {
				t.Errorf("RequiresRegistryDocument() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPersonalStepIsolation(t *testing.T) {
	// A broken address must not fail step 1, and vice versa.
	form := validPersonalForm()
	form.Address = dto.AddressForm{}

	if errs := ValidatePersonalStep(1, form, testNow); len(errs) != 0 {
		t.Errorf("step 1 should ignore address fields, got %v", errs)
	}
	if errs := ValidatePersonalStep(2, form, testNow); len(errs) == 0 {
		t.Error("step 2 should report missing address fields")
	}
}

func TestPersonalStepClamped(t *testing.T) {
	form := validPersonalForm()
	form.Phone = dto.PhoneForm{}

	// Step 99 clamps to the last step, which has no field rules.
	if errs := ValidatePersonalStep(99, form, testNow); len(errs) != 0 {
		t.Errorf("clamped last step should pass, got %v", errs)
	}
	// Step 0 clamps to step 1.
	form = validPersonalForm()
	form.PassportNumber = ""
	if errs := ValidatePersonalStep(0, form, testNow); len(errs) == 0 {
		t.Error("clamped first step should report missing passport number")
	}
}
