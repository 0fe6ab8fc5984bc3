package booking

import (
	"context"
	"errors"
	"time"

	"github.com/atelierhq/studio-booking-backend/internal/pricing"
	"github.com/atelierhq/studio-booking-backend/internal/resource"
)

// Move relocates a booking to a new start time, optionally on a different
// resource. Duration is preserved exactly, whatever the grid alignment.
// The price is not recomputed; only the payment derivation is refreshed.
// Any failed check leaves the stored booking untouched.
func (s *service) Move(ctx context.Context, id, resourceID string, newStart time.Time) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusCancelled || b.Status == StatusCompleted {
		return nil, ErrInvalidStatus
	}
	if newStart.IsZero() {
		return nil, ErrInvalidTimeRange
	}

	if resourceID != "" && resourceID != b.ResourceID {
		res, err := s.resources.GetByID(ctx, resourceID)
		if err != nil {
			if errors.Is(err, resource.ErrNotFound) {
				return nil, ErrResourceNotFound
			}
			return nil, err
		}
		b.ResourceID = res.ID
		b.ResourceName = res.Name
		b.OrganizationID = res.OrganizationID
	}

	duration := b.EndTime.Sub(b.StartTime)
	b.StartTime = newStart
	b.EndTime = newStart.Add(duration)

	if err := s.ensureFits(ctx, b, b.ID); err != nil {
		return nil, err
	}
	release, ok, err := s.holds.Acquire(ctx, b.ResourceID, b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTimeConflict
	}
	defer release()

	s.applyQuote(b, pricing.Derive(b.TotalPrice, b.Discount, b.Deposit))

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Resize changes a booking's end time only. The new duration must cover at
// least one grid slot. Duration, price, balance and payment status are
// recomputed together so they never disagree.
func (s *service) Resize(ctx context.Context, id string, newEnd time.Time) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusCancelled || b.Status == StatusCompleted {
		return nil, ErrInvalidStatus
	}
	if newEnd.Before(b.StartTime.Add(s.grid.SlotLength())) {
		return nil, ErrDurationTooShort
	}

	b.EndTime = newEnd
	b.DurationMinutes = int(newEnd.Sub(b.StartTime) / time.Minute)

	if err := s.ensureFits(ctx, b, b.ID); err != nil {
		return nil, err
	}
	release, ok, err := s.holds.Acquire(ctx, b.ResourceID, b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTimeConflict
	}
	defer release()

	if err := s.reprice(ctx, b); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
