package dto

// AddressForm represents the address step of the personal wizard
type AddressForm struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

// PhoneForm represents the phone step of the personal wizard
type PhoneForm struct {
	CountryCode string `json:"countryCode" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	PhoneType   string `json:"phoneType"`
}

// PersonalInfoForm is the full snapshot of the personal onboarding wizard.
// Dates are ISO 8601 date strings (2006-01-02).
type PersonalInfoForm struct {
	DateOfBirth        string      `json:"dateOfBirth" binding:"required"`
	PassportNumber     string      `json:"passportNumber" binding:"required"`
	CountryOfOrigin    string      `json:"countryOfOrigin" binding:"required"`
	HasDualNationality bool        `json:"hasDualNationality"`
	SecondNationality  *string     `json:"secondNationality,omitempty"`
	Address            AddressForm `json:"address" binding:"required"`
	Phone              PhoneForm   `json:"phone" binding:"required"`
}

// ExamEntryForm is a single exam row captured during academic onboarding
type ExamEntryForm struct {
	ExamName  string `json:"examName" binding:"required"`
	ExamScore string `json:"examScore" binding:"required"`
	ExamDate  string `json:"examDate" binding:"required"`
}

// AcademicInfoForm is the full snapshot of the academic onboarding wizard
type AcademicInfoForm struct {
	CurrentStudyLevel   string          `json:"currentStudyLevel" binding:"required"`
	CurrentCountry      string          `json:"currentCountry"`
	GraduatedSchoolName string          `json:"graduatedSchoolName" binding:"required"`
	GraduationDate      string          `json:"graduationDate" binding:"required"`
	GraduationGrade     string          `json:"graduationGrade" binding:"required"`
	AverageGrade        *float64        `json:"averageGrade,omitempty"`
	Exams               []ExamEntryForm `json:"exams"`
}

// ValidatePersonalStepRequest validates one wizard step without persisting
type ValidatePersonalStepRequest struct {
	Step int              `json:"step" binding:"required,min=1"`
	Form PersonalInfoForm `json:"form"`
}

// ValidateAcademicStepRequest validates one wizard step without persisting
type ValidateAcademicStepRequest struct {
	Step int              `json:"step" binding:"required,min=1"`
	Form AcademicInfoForm `json:"form"`
}

// StepValidationResponse reports the outcome of a step validation
type StepValidationResponse struct {
	Valid  bool          `json:"valid"`
	Step   int           `json:"step"`
	Errors []ErrorDetail `json:"errors,omitempty"`
}

// OnboardingStatusResponse summarizes where the user stands in onboarding
type OnboardingStatusResponse struct {
	CompletionStatus     string   `json:"completionStatus" example:"partial"`
	CompletionPercentage int      `json:"completionPercentage" example:"62"`
	MissingFields        []string `json:"missingFields,omitempty"`
	Route                string   `json:"route" example:"/onboarding/academic"`
}

// OnboardingSubmitResponse is returned after a wizard submit or skip
type OnboardingSubmitResponse struct {
	CompletionStatus string `json:"completionStatus" example:"complete"`
	Route            string `json:"route" example:"/dashboard"`
}
