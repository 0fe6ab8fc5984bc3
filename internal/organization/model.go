package organization

import (
	"net/http"
	"time"

	"github.com/atelierhq/studio-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "organization not found")
	ErrEmptyName     = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrAlreadyMember = apperror.New(http.StatusConflict, "staff member already belongs to this organization")
	ErrInvalidRole   = apperror.New(http.StatusBadRequest, "invalid role")
)

// Roles matching the database enum.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Organization represents a studio brand or venue owner.
type Organization struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

// Member is a staff member with a role inside an organization.
type Member struct {
	StaffID string
	Email   string
	Name    string
	Role    string
}

// Filter defines parameters for listing organizations.
type Filter struct {
	Page     int
	PageSize int
}
