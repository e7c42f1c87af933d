package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kelleauto/dealership-backend/internal/offering"
	"github.com/kelleauto/dealership-backend/internal/pkg/request"
	"github.com/kelleauto/dealership-backend/internal/pkg/response"
)

// Handler serves one offering kind; mount one per kind.
type Handler struct {
	service offering.Service
	kind    offering.Kind
}

func NewHandler(service offering.Service, kind offering.Kind) *Handler {
	return &Handler{service: service, kind: kind}
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), h.kind)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]OfferingResponse, len(list))
	for i, o := range list {
		items[i] = NewResponse(o)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), h.kind, req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(o))
}

func (h *Handler) Create(c *gin.Context) {
	var body SaveOfferingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	o, err := h.service.Create(c.Request.Context(), h.kind, offering.SaveRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(o))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body SaveOfferingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	o, err := h.service.Update(c.Request.Context(), h.kind, uri.ID, offering.SaveRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(o))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), h.kind, req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
