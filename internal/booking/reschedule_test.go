package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/studio-booking-backend/internal/pricing"
)

func TestMovePreservesDurationAndPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 45 minutes is off the 30-minute grid on purpose.
	b := f.createAt(t, at(10, 0), func(r *CreateRequest) { r.DurationMinutes = 45 })
	originalPrice := b.TotalPrice
	require.Equal(t, int64(15000), originalPrice)

	moved, err := f.svc.Move(ctx, b.ID, "", at(15, 0))
	require.NoError(t, err)

	assert.Equal(t, at(15, 0), moved.StartTime)
	assert.Equal(t, at(15, 45), moved.EndTime)
	assert.Equal(t, 45, moved.DurationMinutes)
	assert.Equal(t, originalPrice, moved.TotalPrice)
}

func TestMoveOntoOwnOldSlot(t *testing.T) {
	f := newFixture(t)
	b := f.createAt(t, at(10, 0), func(r *CreateRequest) { r.DurationMinutes = 60 })

	// Shifting by half a slot overlaps the booking's own old interval,
	// which must not count as a conflict.
	moved, err := f.svc.Move(context.Background(), b.ID, "", at(10, 30))
	require.NoError(t, err)
	assert.Equal(t, at(11, 30), moved.EndTime)
}

func TestMoveConflictLeavesBookingUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createAt(t, at(10, 0), nil)
	f.createAt(t, at(15, 0), func(r *CreateRequest) { r.DurationMinutes = 60 })

	_, err := f.svc.Move(ctx, b.ID, "", at(15, 0))
	assert.ErrorIs(t, err, ErrTimeConflict)

	stored, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, at(10, 0), stored.StartTime)
	assert.Equal(t, at(10, 30), stored.EndTime)
}

func TestMoveAcrossResources(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createAt(t, at(10, 0), nil)
	// Occupies 16:00 on Studio A only; the move targets Studio B.
	f.createAt(t, at(16, 0), nil)

	moved, err := f.svc.Move(ctx, b.ID, f.room2ID, at(16, 0))
	require.NoError(t, err)

	assert.Equal(t, f.room2ID, moved.ResourceID)
	assert.Equal(t, "Studio B", moved.ResourceName)
	// Hourly price is not recomputed on move even though Studio B has a
	// different rate.
	assert.Equal(t, b.TotalPrice, moved.TotalPrice)
}

func TestMoveRejectsFinishedBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createAt(t, at(10, 0), nil)

	_, err := f.svc.Cancel(ctx, b.ID, "")
	require.NoError(t, err)

	_, err = f.svc.Move(ctx, b.ID, "", at(15, 0))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestResizeRecomputesMoneyTogether(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 60000 service fully covered: deposit 60000 makes it paid.
	b := f.createAt(t, at(10, 0), func(r *CreateRequest) {
		r.OfferingID = &f.offeringID
		r.Deposit = 60000
	})
	require.Equal(t, pricing.StatusPaid, b.PaymentStatus)

	// Extending to 90 minutes raises the total to 90000, so the booking
	// is no longer fully covered.
	resized, err := f.svc.Resize(ctx, b.ID, at(11, 30))
	require.NoError(t, err)

	assert.Equal(t, 90, resized.DurationMinutes)
	assert.Equal(t, int64(90000), resized.TotalPrice)
	assert.Equal(t, int64(30000), resized.Balance())
	assert.Equal(t, pricing.StatusPending, resized.PaymentStatus)
	assert.Nil(t, resized.PaidAt)
}

func TestResizeShortenBelowOneSlot(t *testing.T) {
	f := newFixture(t)
	b := f.createAt(t, at(10, 0), func(r *CreateRequest) { r.DurationMinutes = 60 })

	_, err := f.svc.Resize(context.Background(), b.ID, at(10, 15))
	assert.ErrorIs(t, err, ErrDurationTooShort)

	// Exactly one slot is the minimum.
	resized, err := f.svc.Resize(context.Background(), b.ID, at(10, 30))
	require.NoError(t, err)
	assert.Equal(t, 30, resized.DurationMinutes)
}

func TestResizeConflictsWithNextBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createAt(t, at(10, 0), func(r *CreateRequest) { r.DurationMinutes = 60 })
	f.createAt(t, at(11, 0), func(r *CreateRequest) { r.DurationMinutes = 30 })

	_, err := f.svc.Resize(ctx, b.ID, at(11, 30))
	assert.ErrorIs(t, err, ErrTimeConflict)

	// Growing up to the neighbour's start is allowed.
	resized, err := f.svc.Resize(ctx, b.ID, at(11, 0))
	require.NoError(t, err)
	assert.Equal(t, at(11, 0), resized.EndTime)
}
