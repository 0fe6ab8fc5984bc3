package http

import (
	"time"

	"github.com/atelierhq/studio-booking-backend/internal/organization"
	"github.com/atelierhq/studio-booking-backend/internal/pkg/request"
)

// OrganizationTag is the minimal embedded representation used by other
// modules' responses.
type OrganizationTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResponse(o *organization.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt,
	}
}

type ListOrganizationsRequest struct {
	request.ListParams
}

type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddMemberRequest struct {
	StaffID string `json:"staff_id" binding:"required,uuid"`
	Role    string `json:"role" binding:"required,oneof=owner admin member"`
}

type MemberResponse struct {
	StaffID string `json:"staff_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}

func NewMemberResponse(m *organization.Member) MemberResponse {
	return MemberResponse{
		StaffID: m.StaffID,
		Email:   m.Email,
		Name:    m.Name,
		Role:    m.Role,
	}
}
