package http

import (
	"time"

	"github.com/atelierhq/studio-booking-backend/internal/booking"
	"github.com/atelierhq/studio-booking-backend/internal/pkg/request"
)

type BookingResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`

	ResourceID   string  `json:"resource_id"`
	ResourceName string  `json:"resource_name"`
	StaffID      *string `json:"staff_id,omitempty"`
	OfferingID   *string `json:"offering_id,omitempty"`
	ClientID     *string `json:"client_id,omitempty"`
	ClientName   string  `json:"client_name"`
	ClientPhone  string  `json:"client_phone,omitempty"`

	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`

	TotalPrice    int64      `json:"total_price"`
	Discount      int64      `json:"discount"`
	Deposit       int64      `json:"deposit"`
	Balance       int64      `json:"balance"`
	PaymentStatus string     `json:"payment_status"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`

	Status             string `json:"status"`
	Notes              string `json:"notes,omitempty"`
	Color              string `json:"color,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`

	SessionStartedAt *time.Time `json:"session_started_at,omitempty"`
	SessionEndedAt   *time.Time `json:"session_ended_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:                 b.ID,
		OrganizationID:     b.OrganizationID,
		ResourceID:         b.ResourceID,
		ResourceName:       b.ResourceName,
		StaffID:            b.StaffID,
		OfferingID:         b.OfferingID,
		ClientID:           b.ClientID,
		ClientName:         b.ClientName,
		ClientPhone:        b.ClientPhone,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		DurationMinutes:    b.DurationMinutes,
		TotalPrice:         b.TotalPrice,
		Discount:           b.Discount,
		Deposit:            b.Deposit,
		Balance:            b.Balance(),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentMethod:      b.PaymentMethod,
		PaidAt:             b.PaidAt,
		Status:             string(b.Status),
		Notes:              b.Notes,
		Color:              b.Color,
		CancellationReason: b.CancellationReason,
		SessionStartedAt:   b.SessionStartedAt,
		SessionEndedAt:     b.SessionEndedAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

type ListBookingsRequest struct {
	request.ListParams
	OrganizationID string     `form:"organization_id" binding:"omitempty,uuid"`
	ResourceID     string     `form:"resource_id" binding:"omitempty,uuid"`
	StaffID        string     `form:"staff_id" binding:"omitempty,uuid"`
	ClientID       string     `form:"client_id" binding:"omitempty,uuid"`
	Status         string     `form:"status" binding:"omitempty,oneof=programmed in_progress completed cancelled"`
	From           *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To             *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type CreateBookingRequest struct {
	ResourceID      string    `json:"resource_id" binding:"required,uuid"`
	StaffID         *string   `json:"staff_id" binding:"omitempty,uuid"`
	OfferingID      *string   `json:"offering_id" binding:"omitempty,uuid"`
	ClientID        *string   `json:"client_id" binding:"omitempty,uuid"`
	ClientName      string    `json:"client_name"`
	ClientPhone     string    `json:"client_phone"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"omitempty,min=0"`
	Discount        int64     `json:"discount" binding:"omitempty,min=0"`
	Deposit         int64     `json:"deposit" binding:"omitempty,min=0"`
	Notes           string    `json:"notes"`
	Color           string    `json:"color"`
}

type UpdateBookingRequest struct {
	StaffID     *string `json:"staff_id"`
	OfferingID  *string `json:"offering_id"`
	ClientID    *string `json:"client_id"`
	ClientName  *string `json:"client_name"`
	ClientPhone *string `json:"client_phone"`
	Discount    *int64  `json:"discount" binding:"omitempty,min=0"`
	Deposit     *int64  `json:"deposit" binding:"omitempty,min=0"`
	Notes       *string `json:"notes"`
	Color       *string `json:"color"`
}

type MoveBookingRequest struct {
	ResourceID string    `json:"resource_id" binding:"omitempty,uuid"`
	StartTime  time.Time `json:"start_time" binding:"required"`
}

type ResizeBookingRequest struct {
	EndTime time.Time `json:"end_time" binding:"required"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type PayBookingRequest struct {
	Method string `json:"method"`
}

type AvailabilityRequest struct {
	ResourceID      string `form:"resource_id" binding:"required,uuid"`
	Date            string `form:"date" binding:"required,datetime=2006-01-02"`
	DurationMinutes int    `form:"duration_minutes" binding:"omitempty,min=0"`
}

type AvailabilityResponse struct {
	ResourceID string      `json:"resource_id"`
	Date       string      `json:"date"`
	Starts     []time.Time `json:"starts"`
}

type BusySlotsRequest struct {
	ResourceID string `form:"resource_id" binding:"required,uuid"`
	Date       string `form:"date" binding:"required,datetime=2006-01-02"`
}

type BusySlot struct {
	BookingID string    `json:"booking_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
