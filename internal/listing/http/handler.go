package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kelleauto/dealership-backend/internal/file"
	"github.com/kelleauto/dealership-backend/internal/listing"
	"github.com/kelleauto/dealership-backend/internal/pkg/request"
	"github.com/kelleauto/dealership-backend/internal/pkg/response"
)

type Handler struct {
	service listing.Service
}

func NewHandler(service listing.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListListingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	filter := listing.Filter{
		Keyword:   req.Keyword,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ListingSummary, len(list))
	for i, l := range list {
		items[i] = NewListingSummary(l)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	l, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewListingResponse(l))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateListingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	l, err := h.service.Create(c.Request.Context(), listing.CreateRequest{
		Title:       body.Title,
		ModelYear:   body.ModelYear,
		Description: body.Description,
		Price:       body.Price,
		Mileage:     body.Mileage,
		FuelType:    body.FuelType,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewListingResponse(l))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateListingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	l, err := h.service.Update(c.Request.Context(), uri.ID, listing.UpdateRequest{
		Title:       body.Title,
		ModelYear:   body.ModelYear,
		Description: body.Description,
		Price:       body.Price,
		Mileage:     body.Mileage,
		FuelType:    body.FuelType,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewListingResponse(l))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) AddImage(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body AddImageRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	img, err := h.service.AddImageURL(c.Request.Context(), uri.ID, body.URL)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewImageResponse(img))
}

// UploadImage accepts a multipart "file" field holding a JPEG, PNG or WebP image.
func (h *Handler) UploadImage(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, file.ErrFileRequired)
		return
	}

	img, err := h.service.UploadImage(c.Request.Context(), uri.ID, header)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewImageResponse(img))
}

func (h *Handler) SetMainImage(c *gin.Context) {
	var uri ImageURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	images, err := h.service.SetMainImage(c.Request.Context(), uri.ID, uri.ImageID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": NewImageResponses(images)})
}

func (h *Handler) ReorderImages(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body ReorderImagesRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	images, err := h.service.ReorderImages(c.Request.Context(), uri.ID, body.ImageIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": NewImageResponses(images)})
}

func (h *Handler) DeleteImage(c *gin.Context) {
	var uri ImageURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.DeleteImage(c.Request.Context(), uri.ID, uri.ImageID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
