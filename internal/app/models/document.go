package models

import "time"

// Well-known document type names, seeded at startup.
const (
	DocTypePassportPhoto    = "Passport Photo"
	DocTypeTranscript       = "Academic Transcript"
	DocTypeDiploma          = "Diploma/Certificate"
	DocTypeGradeCertificate = "Degree Grade Certificate"
	DocTypeOther            = "Additional Documents"
	DocTypeRegistryExtract  = "Nüfus Kayıt Örneği"
)

// DocumentType is a lookup row for the kind of uploaded document.
type DocumentType struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Document is an uploaded file reference owned by a student and
// optionally attached to an application. Rows are immutable once created.
type Document struct {
	ID            int64     `json:"id" db:"id"`
	StudentID     int64     `json:"studentId" db:"student_id"`
	DocTypeID     int64     `json:"docTypeId" db:"doc_type_id"`
	ApplicationID *int64    `json:"applicationId,omitempty" db:"application_id"`
	FileName      string    `json:"fileName" db:"file_name"`
	FileURL       string    `json:"fileUrl" db:"file_url"`
	UploadedAt    time.Time `json:"uploadedAt" db:"uploaded_at"`
}

// ExamDocument is a standardized test record captured during academic
// onboarding, with an optional score-report upload.
type ExamDocument struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	ExamName  string    `json:"examName" db:"exam_name"`
	ExamScore string    `json:"examScore" db:"exam_score"`
	ExamDate  time.Time `json:"examDate" db:"exam_date"`
	FileURL   *string   `json:"fileUrl,omitempty" db:"file_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
