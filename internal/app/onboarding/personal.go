package onboarding

import (
	"strings"
	"time"

	"github.com/okaradag/unipath/internal/app/models/dto"
)

// PersonalSteps is the number of steps in the personal info wizard:
// identity, address, phone, documents.
const PersonalSteps = 4

// RegistryCountryCode marks the second nationality that requires a civil
// registry extract upload on the documents step.
const RegistryCountryCode = "TR"

// NewPersonalWizard returns a sequencer sized for the personal wizard.
func NewPersonalWizard() *Wizard {
	return NewWizard(PersonalSteps)
}

// RequiresRegistryDocument reports whether the form's nationality answers
// make the registry extract upload mandatory.
func RequiresRegistryDocument(form dto.PersonalInfoForm) bool {
	return form.HasDualNationality &&
		form.SecondNationality != nil &&
		strings.EqualFold(strings.TrimSpace(*form.SecondNationality), RegistryCountryCode)
}

// ValidatePersonalStep runs the rules for a single step of the personal
// wizard against the full form snapshot. The step number is clamped into
// the wizard's range first, so an out-of-range step validates the nearest
// real one.
func ValidatePersonalStep(step int, form dto.PersonalInfoForm, now time.Time) []FieldError {
	w := NewPersonalWizard()
	step = w.Goto(step)

	var errs []FieldError
	switch step {
	case 1:
		errs = checkDateOfBirth(errs, "dateOfBirth", form.DateOfBirth, now)
		errs = requireString(errs, "passportNumber", form.PassportNumber, "passport number is required")
		errs = requireString(errs, "countryOfOrigin", form.CountryOfOrigin, "country of origin is required")
		if form.HasDualNationality {
			second := ""
			if form.SecondNationality != nil {
				second = *form.SecondNationality
			}
			errs = requireString(errs, "secondNationality", second, "second nationality is required for dual citizens")
		}
	case 2:
		errs = requireString(errs, "address.street", form.Address.Street, "street is required")
		errs = requireString(errs, "address.city", form.Address.City, "city is required")
		errs = requireString(errs, "address.state", form.Address.State, "state or province is required")
		errs = requireString(errs, "address.postalCode", form.Address.PostalCode, "postal code is required")
		errs = requireString(errs, "address.country", form.Address.Country, "country is required")
	case 3:
		errs = requireString(errs, "phone.countryCode", form.Phone.CountryCode, "country code is required")
		errs = requireString(errs, "phone.phoneNumber", form.Phone.PhoneNumber, "phone number is required")
	case 4:
		// File presence is checked at submit time, where uploads exist.
	}
	return errs
}

// ValidatePersonalForm runs every step's rules over the whole form.
func ValidatePersonalForm(form dto.PersonalInfoForm, now time.Time) []FieldError {
	var errs []FieldError
	for step := 1; step <= PersonalSteps; step++ {
		errs = append(errs, ValidatePersonalStep(step, form, now)...)
	}
	return errs
}
