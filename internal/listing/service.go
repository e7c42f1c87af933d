package listing

import (
	"context"
	"mime/multipart"
	"net/url"
	"strings"
	"time"

	"github.com/kelleauto/dealership-backend/internal/file"
	"github.com/kelleauto/dealership-backend/internal/pkg/storage"
)

const minModelYear = 1900

type CreateRequest struct {
	Title       string
	ModelYear   int
	Description string
	Price       float64
	Mileage     int
	FuelType    string
}

type UpdateRequest struct {
	Title       *string
	ModelYear   *int
	Description *string
	Price       *float64
	Mileage     *int
	FuelType    *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Listing, error)
	// GetByID returns the listing with its images in display order.
	GetByID(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, filter Filter) ([]*Listing, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Listing, error)
	Delete(ctx context.Context, id string) error

	AddImageURL(ctx context.Context, listingID, imageURL string) (*Image, error)
	UploadImage(ctx context.Context, listingID string, header *multipart.FileHeader) (*Image, error)
	SetMainImage(ctx context.Context, listingID, imageID string) ([]*Image, error)
	ReorderImages(ctx context.Context, listingID string, imageIDs []string) ([]*Image, error)
	DeleteImage(ctx context.Context, listingID, imageID string) error
}

type service struct {
	repo           Repository
	files          file.Service
	maxUploadBytes int64
	now            func() time.Time
}

func NewService(repo Repository, files file.Service, maxUploadBytes int64) Service {
	return &service{
		repo:           repo,
		files:          files,
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
}

func (s *service) validate(l *Listing) error {
	if strings.TrimSpace(l.Title) == "" {
		return ErrTitleRequired
	}
	if l.ModelYear < minModelYear || l.ModelYear > s.now().Year()+1 {
		return ErrInvalidModelYear
	}
	if l.Price < 0 {
		return ErrInvalidPrice
	}
	if l.Mileage < 0 {
		return ErrInvalidMileage
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Listing, error) {
	l := &Listing{
		Title:       strings.TrimSpace(req.Title),
		ModelYear:   req.ModelYear,
		Description: req.Description,
		Price:       req.Price,
		Mileage:     req.Mileage,
		FuelType:    strings.TrimSpace(req.FuelType),
	}
	if err := s.validate(l); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	l.Images = []*Image{}
	return l, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	images, err := s.repo.ListImages(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Images = images
	return l, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Listing, int, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		l.Title = strings.TrimSpace(*req.Title)
	}
	if req.ModelYear != nil {
		l.ModelYear = *req.ModelYear
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.Mileage != nil {
		l.Mileage = *req.Mileage
	}
	if req.FuelType != nil {
		l.FuelType = strings.TrimSpace(*req.FuelType)
	}
	if err := s.validate(l); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes the listing and, after the rows are gone, its uploaded files.
func (s *service) Delete(ctx context.Context, id string) error {
	images, err := s.repo.ListImages(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	for _, img := range images {
		s.files.Delete(ctx, imagePaths(img)...)
	}
	return nil
}

func (s *service) AddImageURL(ctx context.Context, listingID, imageURL string) (*Image, error) {
	imageURL = strings.TrimSpace(imageURL)
	if !validImageURL(imageURL) {
		return nil, ErrInvalidImageURL
	}

	img := &Image{ListingID: listingID, URL: imageURL}
	if err := s.repo.AddImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *service) UploadImage(ctx context.Context, listingID string, header *multipart.FileHeader) (*Image, error) {
	if _, err := s.repo.GetByID(ctx, listingID); err != nil {
		return nil, err
	}

	obj, err := s.files.Upload(ctx, file.UploadInput{
		FileHeader:   header,
		Prefix:       "listings/" + listingID,
		MaxSizeBytes: s.maxUploadBytes,
		AllowedTypes: storage.ImageContentTypes,
		Thumbnail:    true,
	})
	if err != nil {
		return nil, err
	}

	img := &Image{
		ListingID:     listingID,
		URL:           obj.URL,
		ThumbnailURL:  obj.ThumbnailURL,
		StoragePath:   &obj.Path,
		ThumbnailPath: obj.ThumbnailPath,
	}
	if err := s.repo.AddImage(ctx, img); err != nil {
		// The row never made it, so the stored objects are orphans.
		s.files.Delete(ctx, obj.Paths()...)
		return nil, err
	}
	return img, nil
}

func (s *service) SetMainImage(ctx context.Context, listingID, imageID string) ([]*Image, error) {
	if err := s.repo.SetMainImage(ctx, listingID, imageID); err != nil {
		return nil, err
	}
	return s.repo.ListImages(ctx, listingID)
}

func (s *service) ReorderImages(ctx context.Context, listingID string, imageIDs []string) ([]*Image, error) {
	if _, err := s.repo.GetByID(ctx, listingID); err != nil {
		return nil, err
	}

	current, err := s.repo.ListImages(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !sameImageSet(current, imageIDs) {
		return nil, ErrInvalidOrder
	}

	if err := s.repo.ReorderImages(ctx, listingID, imageIDs); err != nil {
		return nil, err
	}
	return s.repo.ListImages(ctx, listingID)
}

func (s *service) DeleteImage(ctx context.Context, listingID, imageID string) error {
	img, err := s.repo.DeleteImage(ctx, listingID, imageID)
	if err != nil {
		return err
	}
	s.files.Delete(ctx, imagePaths(img)...)
	return nil
}

func imagePaths(img *Image) []string {
	var paths []string
	if img.StoragePath != nil {
		paths = append(paths, *img.StoragePath)
	}
	if img.ThumbnailPath != nil {
		paths = append(paths, *img.ThumbnailPath)
	}
	return paths
}

// validImageURL accepts absolute http(s) URLs and site-relative paths such as /files/...
func validImageURL(raw string) bool {
	if raw == "" {
		return false
	}
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func sameImageSet(images []*Image, ids []string) bool {
	if len(images) != len(ids) {
		return false
	}
	want := make(map[string]struct{}, len(images))
	for _, img := range images {
		want[img.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := want[id]; !ok {
			return false
		}
		delete(want, id)
	}
	return len(want) == 0
}
