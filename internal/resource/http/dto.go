package http

import (
	"time"

	"github.com/atelierhq/studio-booking-backend/internal/pkg/request"
	"github.com/atelierhq/studio-booking-backend/internal/resource"
)

// ResourceTag is the minimal embedded representation used by other
// modules' responses.
type ResourceTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ResourceResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	HourlyRate     int64     `json:"hourly_rate"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewResponse(r *resource.Resource) ResourceResponse {
	return ResourceResponse{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		Name:           r.Name,
		HourlyRate:     r.HourlyRate,
		CreatedAt:      r.CreatedAt,
	}
}

type ListResourcesRequest struct {
	request.ListParams
	OrganizationID string `form:"organization_id" binding:"omitempty,uuid"`
}

type CreateResourceRequest struct {
	Name           string `json:"name" binding:"required"`
	OrganizationID string `json:"organization_id" binding:"required,uuid"`
	HourlyRate     int64  `json:"hourly_rate" binding:"omitempty,min=0"`
}

type UpdateResourceRequest struct {
	Name       *string `json:"name"`
	HourlyRate *int64  `json:"hourly_rate"`
}
