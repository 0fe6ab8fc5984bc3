package resource

import (
	"net/http"
	"time"

	"github.com/atelierhq/studio-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "resource not found")
	ErrEmptyName    = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidOrg   = apperror.New(http.StatusBadRequest, "invalid organization_id")
	ErrNegativeRate = apperror.New(http.StatusBadRequest, "hourly rate cannot be negative")
)

// Resource is a bookable room or studio. Once referenced by bookings it is
// immutable except for rename and rate changes.
type Resource struct {
	ID             string
	OrganizationID string
	Name           string
	// HourlyRate is the flat rate in integer currency units used when a
	// booking has no service attached.
	HourlyRate int64
	CreatedAt  time.Time
}

// Filter defines parameters for listing resources.
type Filter struct {
	OrganizationID string
	Page           int
	PageSize       int
	SortOrder      string
}
