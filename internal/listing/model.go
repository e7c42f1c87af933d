package listing

import (
	"net/http"
	"time"

	"github.com/kelleauto/dealership-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "listing not found")
	ErrImageNotFound    = apperror.New(http.StatusNotFound, "image not found")
	ErrTitleRequired    = apperror.New(http.StatusBadRequest, "title is required")
	ErrInvalidModelYear = apperror.New(http.StatusBadRequest, "model_year is out of range")
	ErrInvalidPrice     = apperror.New(http.StatusBadRequest, "price must not be negative")
	ErrInvalidMileage   = apperror.New(http.StatusBadRequest, "mileage must not be negative")
	ErrInvalidImageURL  = apperror.New(http.StatusBadRequest, "image url must be an absolute http(s) URL or a stored file path")
	ErrInvalidOrder     = apperror.New(http.StatusBadRequest, "image order must list every image of the listing exactly once")
)

// Listing is a vehicle offered for sale.
type Listing struct {
	ID          string
	Title       string
	ModelYear   int
	Description string // Markdown
	Price       float64
	Mileage     int
	FuelType    string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated by List from the main image, if any.
	MainImageURL     *string
	MainThumbnailURL *string

	// Populated by GetByID, ordered by sort order.
	Images []*Image
}

// Image is one picture of a listing.
type Image struct {
	ID            string
	ListingID     string
	URL           string
	ThumbnailURL  *string
	StoragePath   *string // Set for uploaded images only
	ThumbnailPath *string
	IsMain        bool
	SortOrder     int
	CreatedAt     time.Time
}

// Filter defines parameters for listing vehicles.
type Filter struct {
	Keyword   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
