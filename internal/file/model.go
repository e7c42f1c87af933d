package file

import (
	"mime/multipart"
	"net/http"

	"github.com/kelleauto/dealership-backend/internal/pkg/apperror"
)

var (
	ErrFileRequired    = apperror.New(http.StatusBadRequest, "file is required")
	ErrFileTooLarge    = apperror.New(http.StatusRequestEntityTooLarge, "file is too large")
	ErrUnsupportedType = apperror.New(http.StatusUnsupportedMediaType, "unsupported file type")
	ErrInvalidImage    = apperror.New(http.StatusBadRequest, "file is not a valid image")
	ErrNotFound        = apperror.New(http.StatusNotFound, "file not found")
	ErrStorage         = apperror.New(http.StatusInternalServerError, "failed to store file")
)

// Object describes a stored upload and its optional thumbnail.
type Object struct {
	Path          string
	URL           string
	ThumbnailPath *string
	ThumbnailURL  *string
	ContentType   string
	Size          int64
}

// Paths lists every storage path the object occupies.
func (o *Object) Paths() []string {
	paths := []string{o.Path}
	if o.ThumbnailPath != nil {
		paths = append(paths, *o.ThumbnailPath)
	}
	return paths
}

// UploadInput configures a single upload.
type UploadInput struct {
	FileHeader   *multipart.FileHeader
	Prefix       string   // Storage key prefix, e.g. "listings/<id>"
	MaxSizeBytes int64    // 0 = no limit
	AllowedTypes []string // Empty = allow all
	Thumbnail    bool     // Decode as image and store a JPEG thumbnail next to it
}
