package file

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/storage"
)

// FileService handles uploads of the image assets the system stores:
// employee profile photos and attendance proof shots.
type FileService interface {
	UploadEmployeePhoto(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// UploadAttendanceProof stores a clock-in or clock-out photo; clockType
	// is "in" or "out".
	UploadAttendanceProof(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string, clockType string) (string, error)

	DeleteFile(ctx context.Context, path string) error

	FileURL(path string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{storage: storage}
}

var allowedImageExts = []string{".jpg", ".jpeg", ".png", ".gif"}

func imageContentType(ext string) (string, error) {
	valid := false
	for _, allowed := range allowedImageExts {
		if ext == allowed {
			valid = true
			break
		}
	}
	if !valid {
		return "", fmt.Errorf("invalid file type %q: only jpg, jpeg, png, gif allowed", ext)
	}

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return contentType, nil
}

// UploadEmployeePhoto implements FileService.
func (s *fileServiceImpl) UploadEmployeePhoto(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, err := imageContentType(ext)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s-%s%s", employeeID, uuid.New().String(), ext)
	path := filepath.Join("photos", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("upload employee photo: %w", err)
	}

	return uploadedPath, nil
}

// UploadAttendanceProof implements FileService.
func (s *fileServiceImpl) UploadAttendanceProof(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string, clockType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, err := imageContentType(ext)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s-%s-%s%s", date.Format("2006-01-02"), clockType, uuid.New().String(), ext)
	path := filepath.Join("attendance", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("upload attendance proof: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	return s.storage.Delete(ctx, path)
}

// FileURL implements FileService.
func (s *fileServiceImpl) FileURL(path string) string {
	return s.storage.URL(path)
}
