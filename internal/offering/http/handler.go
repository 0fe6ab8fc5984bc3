package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/studio-booking-backend/internal/auth"
	"github.com/atelierhq/studio-booking-backend/internal/offering"
	"github.com/atelierhq/studio-booking-backend/internal/organization"
	"github.com/atelierhq/studio-booking-backend/internal/pkg/request"
	"github.com/atelierhq/studio-booking-backend/internal/pkg/response"
)

type Handler struct {
	service    offering.Service
	orgService organization.Service
}

func NewHandler(service offering.Service, orgService organization.Service) *Handler {
	return &Handler{
		service:    service,
		orgService: orgService,
	}
}

func (h *Handler) checkPermission(c *gin.Context, orgID string) bool {
	staffID := auth.GetStaffID(c)
	if staffID == "" {
		return false
	}
	ok, err := h.orgService.IsManagerOrAbove(c.Request.Context(), orgID, staffID)
	return err == nil && ok
}

func (h *Handler) List(c *gin.Context) {
	var req ListOfferingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	offerings, total, err := h.service.List(c.Request.Context(), offering.Filter{
		OrganizationID: req.OrganizationID,
		ActiveOnly:     req.ActiveOnly,
		Page:           req.Page,
		PageSize:       req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]OfferingResponse, len(offerings))
	for i, o := range offerings {
		items[i] = NewResponse(o)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateOfferingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if !h.checkPermission(c, body.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	o, err := h.service.Create(c.Request.Context(), offering.CreateRequest{
		OrganizationID:  body.OrganizationID,
		Name:            body.Name,
		DurationMinutes: body.DurationMinutes,
		Price:           body.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewResponse(o))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewResponse(o))
}

func (h *Handler) Update(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateOfferingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.checkPermission(c, o.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), req.ID, offering.UpdateRequest{
		Name:            body.Name,
		DurationMinutes: body.DurationMinutes,
		Price:           body.Price,
		IsActive:        body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.checkPermission(c, o.OrganizationID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
