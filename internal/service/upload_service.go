package service

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"playreel/internal/models"
	"playreel/internal/storage"
)

// MaxUploadBytes caps direct-to-storage uploads at 200 MiB.
const MaxUploadBytes = 200 * 1024 * 1024

var allowedUploadTypes = map[string]struct{}{
	"video/mp4":       {},
	"video/webm":      {},
	"video/quicktime": {},
	"image/jpeg":      {},
	"image/png":       {},
}

var extSanitizer = regexp.MustCompile(`[^a-z0-9]`)

// UploadService issues presigned upload URLs after validating the request.
type UploadService struct {
	signer storage.Signer
}

type CreateUploadURLInput struct {
	UserID      string
	FileName    string
	ContentType string
	FileSize    int64
}

func NewUploadService(signer storage.Signer) *UploadService {
	return &UploadService{signer: signer}
}

// CreateUploadURL validates type and size, derives a per-user object path,
// and returns a presigned PUT for it.
func (s *UploadService) CreateUploadURL(ctx context.Context, in CreateUploadURLInput) (*storage.PresignedUpload, error) {
	if _, ok := allowedUploadTypes[in.ContentType]; !ok {
		return nil, models.NewUnsupportedTypeError(in.ContentType)
	}
	if in.FileSize > MaxUploadBytes {
		return nil, models.NewFileTooLargeError(MaxUploadBytes)
	}

	ext := sanitizeExt(in.FileName)
	path := fmt.Sprintf("user/%s/%s.%s", in.UserID, uuid.NewString(), ext)

	presigned, err := s.signer.PresignUpload(ctx, path, in.ContentType)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return presigned, nil
}

// sanitizeExt extracts the lowercase alphanumeric extension, defaulting
// to mp4 when the name carries none.
func sanitizeExt(fileName string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	ext = extSanitizer.ReplaceAllString(ext, "")
	if ext == "" {
		return "mp4"
	}
	return ext
}
