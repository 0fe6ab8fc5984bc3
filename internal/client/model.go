package client

import (
	"net/http"
	"time"

	"github.com/atelierhq/studio-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound  = apperror.New(http.StatusNotFound, "client not found")
	ErrEmptyName = apperror.New(http.StatusBadRequest, "display name cannot be empty")
)

// Client is a customer record. Bookings reference clients by id but also
// keep a denormalized name/phone snapshot, so a booking survives the
// client record changing or being absent entirely (walk-ins).
type Client struct {
	ID          string
	DisplayName string
	Phone       string
	Email       string
	// AvatarRef is an opaque reference into external file storage.
	AvatarRef string
	CreatedAt time.Time
}

// Filter defines parameters for listing clients.
type Filter struct {
	// Search matches against display name and phone.
	Search   string
	Page     int
	PageSize int
}
