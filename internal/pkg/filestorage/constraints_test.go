package filestorage

import (
	"errors"
	"mime/multipart"
	"testing"

	"github.com/okaradag/unipath/internal/pkg/apperrors"
)

func header(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func TestSlotFileNames(t *testing.T) {
	tests := []struct {
		name string
		slot UploadSlot
		file string
		want string
	}{
		{"profile photo", ProfilePhotoSlot(42), "me.PNG", "42_profile.png"},
		{"registry extract", RegistrySlot(42), "kayit.pdf", "42_nufus.pdf"},
		{"first exam report", ExamReportSlot(42, 0), "ielts.pdf", "42_exam_0.pdf"},
		{"transcript slot", DocumentSlot(42, SlotTranscript), "scan.jpg", "42_transcript.jpg"},
		{"diploma slot", DocumentSlot(42, SlotDiploma), "diploma.pdf", "42_diploma.pdf"},
		{"additional document", AdditionalSlot(42, 2), "essay.docx", "42_additional_2.docx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.slot.FileName(tt.file); got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}

func TestSlotSizeLimits(t *testing.T) {
	photo := ProfilePhotoSlot(1)
	if err := photo.Validate(header("a.jpg", MaxImageSize)); err != nil {
		t.Errorf("image at the cap should pass: %v", err)
	}
	if err := photo.Validate(header("a.jpg", MaxImageSize+1)); !errors.Is(err, apperrors.ErrFileTooLarge) {
		t.Errorf("oversized image: got %v, want ErrFileTooLarge", err)
	}

	doc := DocumentSlot(1, SlotTranscript)
	if err := doc.Validate(header("t.pdf", MaxDocumentSize)); err != nil {
		t.Errorf("document at the cap should pass: %v", err)
	}
	if err := doc.Validate(header("t.pdf", MaxDocumentSize+1)); !errors.Is(err, apperrors.ErrFileTooLarge) {
		t.Errorf("oversized document: got %v, want ErrFileTooLarge", err)
	}
}

func TestSlotExtensionRules(t *testing.T) {
	tests := []struct {
		name    string
		slot    UploadSlot
		file    string
		wantErr bool
	}{
		{"photo accepts jpeg", ProfilePhotoSlot(1), "me.jpeg", false},
		{"photo rejects pdf", ProfilePhotoSlot(1), "me.pdf", true},
		{"photo rejects docx", ProfilePhotoSlot(1), "me.docx", true},
		{"registry accepts pdf", RegistrySlot(1), "k.pdf", false},
		{"registry rejects doc", RegistrySlot(1), "k.doc", true},
		{"slot uppercase extension", DocumentSlot(1, SlotDiploma), "d.PDF", false},
		{"additional accepts doc", AdditionalSlot(1, 0), "essay.doc", false},
		{"additional accepts docx", AdditionalSlot(1, 0), "essay.docx", false},
		{"additional rejects exe", AdditionalSlot(1, 0), "tool.exe", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate(header(tt.file, 1024))
			if tt.wantErr && !errors.Is(err, apperrors.ErrFileTypeNotAllowed) {
				t.Errorf("Validate(%q): got %v, want ErrFileTypeNotAllowed", tt.file, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate(%q): unexpected error %v", tt.file, err)
			}
		})
	}
}
