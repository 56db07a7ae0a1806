package filestorage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/okaradag/unipath/internal/pkg/apperrors"
)

// Upload size caps in bytes.
const (
	MaxImageSize    = 5 << 20
	MaxDocumentSize = 10 << 20
)

var (
	imageExts    = []string{".jpg", ".jpeg", ".png"}
	documentExts = []string{".pdf", ".jpg", ".jpeg", ".png"}
	extendedExts = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}
)

// Names of the fixed document slots on the academic wizard.
const (
	SlotPassportPhoto = "passport_photo"
	SlotTranscript    = "transcript"
	SlotDiploma       = "diploma"
	SlotDegreeGrade   = "degree_grade"
)

// UploadSlot describes one upload target: its deterministic storage key
// stem, its size cap and the extensions it accepts. Saving into the same
// slot twice overwrites the previous file.
type UploadSlot struct {
	stem    string
	maxSize int64
	allowed []string
}

// ProfilePhotoSlot is the profile picture uploaded on the personal wizard.
func ProfilePhotoSlot(userID int64) UploadSlot {
	return UploadSlot{
		stem:    fmt.Sprintf("%d_profile", userID),
		maxSize: MaxImageSize,
		allowed: imageExts,
	}
}

// RegistrySlot is the civil registry extract required for some dual
// nationals.
func RegistrySlot(userID int64) UploadSlot {
	return UploadSlot{
		stem:    fmt.Sprintf("%d_nufus", userID),
		maxSize: MaxDocumentSize,
		allowed: documentExts,
	}
}

// ExamReportSlot is the score report attached to the i-th exam entry.
func ExamReportSlot(userID int64, index int) UploadSlot {
	return UploadSlot{
		stem:    fmt.Sprintf("%d_exam_%d", userID, index),
		maxSize: MaxDocumentSize,
		allowed: documentExts,
	}
}

// DocumentSlot is one of the fixed named slots on the documents step.
func DocumentSlot(userID int64, slot string) UploadSlot {
	return UploadSlot{
		stem:    fmt.Sprintf("%d_%s", userID, slot),
		maxSize: MaxDocumentSize,
		allowed: documentExts,
	}
}

// AdditionalSlot is the i-th entry of the free-form extra documents list.
// It also accepts word processor files.
func AdditionalSlot(userID int64, index int) UploadSlot {
	return UploadSlot{
		stem:    fmt.Sprintf("%d_additional_%d", userID, index),
		maxSize: MaxDocumentSize,
		allowed: extendedExts,
	}
}

// FileName returns the deterministic storage name for an upload with the
// given original filename, keeping only its extension.
func (s UploadSlot) FileName(originalName string) string {
	return s.stem + strings.ToLower(filepath.Ext(originalName))
}

// Validate checks the upload against the slot's size cap and extension
// allowlist.
func (s UploadSlot) Validate(fh *multipart.FileHeader) error {
	if fh.Size > s.maxSize {
		return apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("file %s exceeds the %d MB limit", fh.Filename, s.maxSize>>20))
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	for _, allowed := range s.allowed {
		if ext == allowed {
			return nil
		}
	}
	return apperrors.NewCustomError(apperrors.ErrFileTypeNotAllowed,
		fmt.Sprintf("file type %s is not allowed, accepted types: %s", ext, strings.Join(s.allowed, ", ")))
}
