package models

import "time"

// Student defines the student profile based on the 'students' table.
// A row is created implicitly when a student account registers and is
// filled in incrementally by the onboarding wizards.
type Student struct {
	ID                  int64            `json:"id" db:"id"`
	UserID              int64            `json:"userId" db:"user_id"`
	DateOfBirth         *time.Time       `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	PassportNumber      *string          `json:"passportNumber,omitempty" db:"passport_number"`
	CountryOfOrigin     *string          `json:"countryOfOrigin,omitempty" db:"country_of_origin"`
	SecondNationality   *string          `json:"secondNationality,omitempty" db:"second_nationality"`
	HasDualCitizenship  bool             `json:"hasDualCitizenship" db:"has_dual_citizenship"`
	CurrentStudyLevel   *string          `json:"currentStudyLevel,omitempty" db:"current_study_level"`
	CurrentCountry      *string          `json:"currentCountry,omitempty" db:"current_country"`
	AverageGrade        *float64         `json:"averageGrade,omitempty" db:"average_grade"`
	GraduatedSchoolName *string          `json:"graduatedSchoolName,omitempty" db:"graduated_school_name"`
	GraduationDate      *time.Time       `json:"graduationDate,omitempty" db:"graduation_date"`
	GraduationGrade     *string          `json:"graduationGrade,omitempty" db:"graduation_grade"`
	CompletionStatus    CompletionStatus `json:"profileCompletionStatus" db:"profile_completion_status"`
	CreatedAt           time.Time        `json:"createdAt" db:"created_at"`

	User *User `json:"user,omitempty"` // Relation, no db tag
}

// Address is the one-to-one postal address record for a student,
// upserted on personal onboarding submission.
type Address struct {
	ID         int64  `json:"id" db:"id"`
	StudentID  int64  `json:"studentId" db:"student_id"`
	Street     string `json:"street" db:"street"`
	City       string `json:"city" db:"city"`
	State      string `json:"state" db:"state"`
	PostalCode string `json:"postalCode" db:"postal_code"`
	Country    string `json:"country" db:"country"`
}

// Phone is the one-to-one phone record for a student.
type Phone struct {
	ID          int64  `json:"id" db:"id"`
	StudentID   int64  `json:"studentId" db:"student_id"`
	CountryCode string `json:"countryCode" db:"country_code"`
	PhoneNumber string `json:"phoneNumber" db:"phone_number"`
	PhoneType   string `json:"phoneType" db:"phone_type"`
}
