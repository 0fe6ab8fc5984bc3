// Package notify publishes booking lifecycle events to the external
// notification dispatcher. Delivery is best effort: callers fire and
// forget, and a failed publish is logged, never propagated.
package notify

import (
	"context"
	"time"
)

// BookingCreatedEvent is the payload published when a booking is created.
type BookingCreatedEvent struct {
	BookingID      string    `json:"booking_id"`
	OrganizationID string    `json:"organization_id"`
	ResourceID     string    `json:"resource_id"`
	ClientName     string    `json:"client_name"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
}

// Sender dispatches booking events.
type Sender interface {
	BookingCreated(ctx context.Context, ev BookingCreatedEvent) error
}

// Noop is a Sender that drops every event. Used when no broker is
// configured.
type Noop struct{}

func (Noop) BookingCreated(context.Context, BookingCreatedEvent) error {
	return nil
}
