package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/okaradag/unipath/internal/pkg/logger"
)

// LocalStorage stores files on the local filesystem under a single base
// directory. Slot names are deterministic, so re-uploading into a slot
// overwrites the previous file in place.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a LocalStorage rooted at basePath. baseURL is
// prepended to stored filenames when building public URLs.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveToSlot validates the upload and writes it under the slot's
// deterministic name. A previous file in the slot with a different
// extension is removed first so a slot never holds two files.
func (ls *LocalStorage) SaveToSlot(fileHeader *multipart.FileHeader, slot UploadSlot) (string, error) {
	if fileHeader == nil {
		return "", nil
	}
	if err := slot.Validate(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	name := slot.FileName(fileHeader.Filename)
	ls.removeSlotSiblings(slot, name)

	dstPath := filepath.Join(ls.basePath, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	url := ls.PublicURL(name)
	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", name).Msg("File saved")
	return url, nil
}

// removeSlotSiblings deletes files sharing the slot's stem but carrying a
// different extension than the incoming upload.
func (ls *LocalStorage) removeSlotSiblings(slot UploadSlot, keep string) {
	matches, err := filepath.Glob(filepath.Join(ls.basePath, slot.stem+".*"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if filepath.Base(m) != keep {
			_ = os.Remove(m)
		}
	}
}

// PublicURL returns the URL clients use to fetch a stored file.
func (ls *LocalStorage) PublicURL(filename string) string {
	if ls.baseURL != "" {
		return strings.TrimRight(ls.baseURL, "/") + "/" + filename
	}
	return "uploads/" + filename
}

// DeleteFile removes a file by its stored URL or path. Missing files are
// treated as already deleted.
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	if fileURL == "" {
		return nil
	}

	filename := filepath.Base(fileURL)
	if filename == "" || filename == "." || filename == "/" || filename == "uploads" {
		return fmt.Errorf("invalid file path: %s", fileURL)
	}

	physicalPath := filepath.Join(ls.basePath, filename)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}
