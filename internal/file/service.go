package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kelleauto/dealership-backend/internal/pkg/storage"
)

const (
	ThumbnailWidth  = 480
	ThumbnailHeight = 360
)

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*Object, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes every path, logging failures instead of returning them.
	Delete(ctx context.Context, paths ...string)
}

type service struct {
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(store storage.Storage, imgProc *storage.ImageProcessor) Service {
	return &service{
		storage: store,
		imgProc: imgProc,
	}
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*Object, error) {
	if in.FileHeader == nil {
		return nil, ErrFileRequired
	}
	if in.MaxSizeBytes > 0 && in.FileHeader.Size > in.MaxSizeBytes {
		return nil, ErrFileTooLarge
	}

	src, err := in.FileHeader.Open()
	if err != nil {
		return nil, ErrFileRequired.WithCause(err)
	}
	defer src.Close()

	// Read one byte past the limit so oversized bodies with a lying header are caught.
	reader := io.Reader(src)
	if in.MaxSizeBytes > 0 {
		reader = io.LimitReader(src, in.MaxSizeBytes+1)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, ErrStorage.WithCause(fmt.Errorf("read upload: %w", err))
	}
	if in.MaxSizeBytes > 0 && int64(len(content)) > in.MaxSizeBytes {
		return nil, ErrFileTooLarge
	}

	// Sniff the type instead of trusting the client header.
	mt := mimetype.Detect(content)
	contentType, _, _ := strings.Cut(mt.String(), ";")
	if len(in.AllowedTypes) > 0 && !slices.Contains(in.AllowedTypes, contentType) {
		return nil, ErrUnsupportedType
	}

	if in.Thumbnail {
		if _, err := s.imgProc.Validate(bytes.NewReader(content)); err != nil {
			return nil, ErrInvalidImage.WithCause(err)
		}
	}

	id := uuid.New().String()
	ext := extensions[contentType]
	if ext == "" {
		ext = mt.Extension()
	}
	obj := &Object{
		Path:        path.Join(in.Prefix, id+ext),
		ContentType: contentType,
		Size:        int64(len(content)),
	}

	if err := s.storage.Save(ctx, obj.Path, bytes.NewReader(content), contentType); err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	obj.URL = s.storage.URL(obj.Path)

	if in.Thumbnail {
		thumb, err := s.imgProc.GenerateThumbnail(bytes.NewReader(content), ThumbnailWidth, ThumbnailHeight)
		if err != nil {
			s.Delete(ctx, obj.Path)
			return nil, ErrInvalidImage.WithCause(err)
		}
		thumbPath := path.Join(in.Prefix, id+"_thumb.jpg")
		if err := s.storage.Save(ctx, thumbPath, thumb, "image/jpeg"); err != nil {
			s.Delete(ctx, obj.Path)
			return nil, ErrStorage.WithCause(err)
		}
		thumbURL := s.storage.URL(thumbPath)
		obj.ThumbnailPath = &thumbPath
		obj.ThumbnailURL = &thumbURL
	}

	return obj, nil
}

func (s *service) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	rc, err := s.storage.Get(ctx, p)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", p, err)
	}
	return rc, nil
}

func (s *service) Delete(ctx context.Context, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := s.storage.Delete(ctx, p); err != nil {
			logrus.WithError(err).WithField("path", p).Warn("failed to delete stored file")
		}
	}
}
