package filestorage

import "mime/multipart"

// FileStorage defines the interface for file storage operations.
type FileStorage interface {
	// SaveToSlot validates the upload against the slot's constraints and
	// stores it under the slot's deterministic name, replacing any
	// previous file in that slot. It returns the public URL of the file.
	SaveToSlot(fileHeader *multipart.FileHeader, slot UploadSlot) (string, error)

	// DeleteFile removes a stored file. Deleting a missing file is not
	// an error.
	DeleteFile(fileURL string) error

	// PublicURL returns the URL clients use to fetch a stored file.
	PublicURL(filename string) string
}
