package http

import (
	"time"

	"github.com/atelierhq/studio-booking-backend/internal/pkg/request"
	"github.com/atelierhq/studio-booking-backend/internal/staff"
)

// StaffTag is the minimal embedded representation used by other modules'
// responses.
type StaffTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StaffResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func NewResponse(s *staff.Staff) StaffResponse {
	return StaffResponse{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		Role:        s.Role,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		LastLoginAt: s.LastLoginAt,
	}
}

type ListStaffRequest struct {
	request.ListParams
	ActiveOnly bool `form:"active_only"`
}

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

type UpdateStaffRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	Staff       StaffResponse `json:"staff"`
}
