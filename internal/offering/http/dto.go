package http

import (
	"time"

	"github.com/atelierhq/studio-booking-backend/internal/offering"
	"github.com/atelierhq/studio-booking-backend/internal/pkg/request"
)

type OfferingResponse struct {
	ID              string    `json:"id"`
	OrganizationID  string    `json:"organization_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           int64     `json:"price"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewResponse(o *offering.Offering) OfferingResponse {
	return OfferingResponse{
		ID:              o.ID,
		OrganizationID:  o.OrganizationID,
		Name:            o.Name,
		DurationMinutes: o.DurationMinutes,
		Price:           o.Price,
		IsActive:        o.IsActive,
		CreatedAt:       o.CreatedAt,
	}
}

type ListOfferingsRequest struct {
	request.ListParams
	OrganizationID string `form:"organization_id" binding:"omitempty,uuid"`
	ActiveOnly     bool   `form:"active_only"`
}

type CreateOfferingRequest struct {
	OrganizationID  string `json:"organization_id" binding:"required,uuid"`
	Name            string `json:"name" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=0"`
	Price           int64  `json:"price" binding:"omitempty,min=0"`
}

type UpdateOfferingRequest struct {
	Name            *string `json:"name"`
	DurationMinutes *int    `json:"duration_minutes"`
	Price           *int64  `json:"price"`
	IsActive        *bool   `json:"is_active"`
}
