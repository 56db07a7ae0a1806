package models

import "time"

// University is a partner institution a student can apply to.
type University struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Country     string    `json:"country" db:"country"`
	City        string    `json:"city" db:"city"`
	Website     *string   `json:"website,omitempty" db:"website"`
	LogoURL     *string   `json:"logoUrl,omitempty" db:"logo_url"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Program is a course of study offered by a university.
type Program struct {
	ID           int64     `json:"id" db:"id"`
	UniversityID int64     `json:"universityId" db:"university_id"`
	Name         string    `json:"name" db:"name"`
	Degree       string    `json:"degree" db:"degree"`
	Language     string    `json:"language" db:"language"`
	DurationYrs  int       `json:"durationYears" db:"duration_years"`
	TuitionFee   *float64  `json:"tuitionFee,omitempty" db:"tuition_fee"`
	Currency     *string   `json:"currency,omitempty" db:"currency"`
	Description  *string   `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	University *University `json:"university,omitempty" db:"-"`
}
