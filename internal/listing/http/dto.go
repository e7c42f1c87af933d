package http

import (
	"time"

	"github.com/kelleauto/dealership-backend/internal/listing"
	"github.com/kelleauto/dealership-backend/internal/pkg/request"
)

// ListListingsRequest defines query parameters for the public catalog.
type ListListingsRequest struct {
	request.ListParams
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
	SortBy  string `form:"sort_by" binding:"omitempty,oneof=created_at price model_year mileage"`
}

type ImageResponse struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	IsMain       bool      `json:"is_main"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewImageResponse(img *listing.Image) ImageResponse {
	return ImageResponse{
		ID:           img.ID,
		URL:          img.URL,
		ThumbnailURL: img.ThumbnailURL,
		IsMain:       img.IsMain,
		SortOrder:    img.SortOrder,
		CreatedAt:    img.CreatedAt,
	}
}

func NewImageResponses(images []*listing.Image) []ImageResponse {
	items := make([]ImageResponse, len(images))
	for i, img := range images {
		items[i] = NewImageResponse(img)
	}
	return items
}

// ListingSummary is a catalog entry.
type ListingSummary struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	ModelYear        int       `json:"model_year"`
	Price            float64   `json:"price"`
	Mileage          int       `json:"mileage"`
	FuelType         string    `json:"fuel_type"`
	MainImageURL     *string   `json:"main_image_url"`
	MainThumbnailURL *string   `json:"main_thumbnail_url"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewListingSummary(l *listing.Listing) ListingSummary {
	return ListingSummary{
		ID:               l.ID,
		Title:            l.Title,
		ModelYear:        l.ModelYear,
		Price:            l.Price,
		Mileage:          l.Mileage,
		FuelType:         l.FuelType,
		MainImageURL:     l.MainImageURL,
		MainThumbnailURL: l.MainThumbnailURL,
		CreatedAt:        l.CreatedAt,
	}
}

type ListingResponse struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	ModelYear       int             `json:"model_year"`
	Description     string          `json:"description"`
	DescriptionHTML string          `json:"description_html"`
	Price           float64         `json:"price"`
	Mileage         int             `json:"mileage"`
	FuelType        string          `json:"fuel_type"`
	Images          []ImageResponse `json:"images"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func NewListingResponse(l *listing.Listing) ListingResponse {
	return ListingResponse{
		ID:              l.ID,
		Title:           l.Title,
		ModelYear:       l.ModelYear,
		Description:     l.Description,
		DescriptionHTML: listing.RenderDescription(l.Description),
		Price:           l.Price,
		Mileage:         l.Mileage,
		FuelType:        l.FuelType,
		Images:          NewImageResponses(l.Images),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

type CreateListingRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	ModelYear   int     `json:"model_year" binding:"required"`
	Description string  `json:"description" binding:"max=20000"`
	Price       float64 `json:"price" binding:"min=0"`
	Mileage     int     `json:"mileage" binding:"min=0"`
	FuelType    string  `json:"fuel_type" binding:"max=50"`
}

type UpdateListingRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=200"`
	ModelYear   *int     `json:"model_year"`
	Description *string  `json:"description" binding:"omitempty,max=20000"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Mileage     *int     `json:"mileage" binding:"omitempty,min=0"`
	FuelType    *string  `json:"fuel_type" binding:"omitempty,max=50"`
}

type AddImageRequest struct {
	URL string `json:"url" binding:"required"`
}

type ReorderImagesRequest struct {
	ImageIDs []string `json:"image_ids" binding:"required,min=1,dive,uuid"`
}

// ImageURIRequest binds /:id/images/:image_id.
type ImageURIRequest struct {
	ID      string `uri:"id" binding:"required,uuid"`
	ImageID string `uri:"image_id" binding:"required,uuid"`
}
