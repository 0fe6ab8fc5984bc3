package offering

import (
	"net/http"
	"time"

	"github.com/atelierhq/studio-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "service not found")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidOrg      = apperror.New(http.StatusBadRequest, "invalid organization_id")
	ErrInvalidDuration = apperror.New(http.StatusBadRequest, "duration must not be negative")
	ErrNegativePrice   = apperror.New(http.StatusBadRequest, "price cannot be negative")
	ErrInactive        = apperror.New(http.StatusBadRequest, "service is inactive")
)

// Offering is a bookable service used as a pricing template: a nominal
// duration at a nominal price. It never constrains the actual booking
// duration; price is recomputed proportionally when durations diverge.
type Offering struct {
	ID              string
	OrganizationID  string
	Name            string
	DurationMinutes int
	Price           int64
	IsActive        bool
	CreatedAt       time.Time
}

// Filter defines parameters for listing offerings.
type Filter struct {
	OrganizationID string
	ActiveOnly     bool
	Page           int
	PageSize       int
}
