package booking

import (
	"net/http"
	"time"

	"github.com/atelierhq/studio-booking-backend/internal/pkg/apperror"
	"github.com/atelierhq/studio-booking-backend/internal/pricing"
	"github.com/atelierhq/studio-booking-backend/internal/schedule"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "resource busy in that window")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "end time must be after start time")
	ErrStartTimePast    = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrDurationTooShort = apperror.New(http.StatusBadRequest, "booking cannot be shorter than one slot")
	ErrResourceNotFound = apperror.New(http.StatusNotFound, "resource not found")
	ErrOfferingNotFound = apperror.New(http.StatusNotFound, "service not found")
	ErrOfferingInactive = apperror.New(http.StatusBadRequest, "service is inactive")
	ErrStaffNotFound    = apperror.New(http.StatusNotFound, "staff member not found")
	ErrStaffInactive    = apperror.New(http.StatusBadRequest, "inactive staff cannot be assigned")
	ErrClientNotFound   = apperror.New(http.StatusNotFound, "client not found")
	ErrClientRequired   = apperror.New(http.StatusBadRequest, "a client or client name is required")
	ErrInvalidStatus    = apperror.New(http.StatusConflict, "operation not allowed in current booking status")
)

// Status is the lifecycle state of a booking. Cancelled bookings remain
// stored but are invisible to conflict detection and availability.
type Status string

const (
	StatusProgrammed Status = "programmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Booking is the central entity: a resource reserved for a half-open time
// interval, with derived money fields. Instances are built only by the
// Service's validated paths, never assembled ad hoc.
type Booking struct {
	ID             string
	OrganizationID string

	ResourceID   string
	ResourceName string
	StaffID      *string
	OfferingID   *string
	ClientID     *string
	// Denormalized snapshot: keeps the booking displayable if the client
	// record changes or was never created (walk-ins).
	ClientName  string
	ClientPhone string

	StartTime time.Time
	EndTime   time.Time
	// DurationMinutes is derivable from the range but cached for display
	// and export.
	DurationMinutes int

	TotalPrice    int64
	Discount      int64
	Deposit       int64
	PaymentStatus pricing.Status
	PaymentMethod *string
	PaidAt        *time.Time

	Status             Status
	Notes              string
	Color              string
	CancellationReason string

	// Actual session times, recorded for operational tracking only. The
	// booking occupies its scheduled interval regardless.
	SessionStartedAt *time.Time
	SessionEndedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Balance returns the amount still due.
func (b *Booking) Balance() int64 {
	balance := b.TotalPrice - b.Discount - b.Deposit
	if balance < 0 {
		return 0
	}
	return balance
}

// Interval returns the conflict-relevant projection of the booking.
func (b *Booking) Interval() schedule.Interval {
	iv := schedule.Interval{
		BookingID:  b.ID,
		ResourceID: b.ResourceID,
		Start:      b.StartTime,
		End:        b.EndTime,
		Cancelled:  b.Status == StatusCancelled,
	}
	if b.StaffID != nil {
		iv.StaffID = *b.StaffID
	}
	if b.ClientID != nil {
		iv.ClientID = *b.ClientID
	}
	return iv
}

// Filter defines parameters for listing bookings.
type Filter struct {
	OrganizationID string
	ResourceID     string
	StaffID        string
	ClientID       string
	Status         string
	From           *time.Time
	To             *time.Time
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}
