package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/studio-booking-backend/internal/client"
	"github.com/atelierhq/studio-booking-backend/internal/hold"
	"github.com/atelierhq/studio-booking-backend/internal/notify"
	"github.com/atelierhq/studio-booking-backend/internal/offering"
	"github.com/atelierhq/studio-booking-backend/internal/pricing"
	"github.com/atelierhq/studio-booking-backend/internal/resource"
	"github.com/atelierhq/studio-booking-backend/internal/schedule"
	"github.com/atelierhq/studio-booking-backend/internal/staff"
)

// fakeRepo keeps bookings in memory and reuses the schedule predicate for
// overlap checks, standing in for the SQL query and exclusion constraint.
type fakeRepo struct {
	mu       sync.Mutex
	bookings map[string]*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]*Booking)}
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		copied := *b
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	b.UpdatedAt = time.Now()
	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeRepo) HasOverlap(_ context.Context, p schedule.Proposal, pol schedule.Policy) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var existing []schedule.Interval
	for _, b := range r.bookings {
		existing = append(existing, b.Interval())
	}
	return schedule.HasConflict(p, existing, pol), nil
}

func (r *fakeRepo) ListForRange(_ context.Context, resourceID string, from, to time.Time) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if b.ResourceID != resourceID || b.Status == StatusCancelled {
			continue
		}
		if !schedule.Overlaps(b.StartTime, b.EndTime, from, to) {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

// Collaborator fakes embed the interface so only the methods the booking
// service touches need implementations.

type fakeResources struct {
	resource.Service
	items map[string]*resource.Resource
}

func (f *fakeResources) GetByID(_ context.Context, id string) (*resource.Resource, error) {
	res, ok := f.items[id]
	if !ok {
		return nil, resource.ErrNotFound
	}
	return res, nil
}

type fakeOfferings struct {
	offering.Service
	items map[string]*offering.Offering
}

func (f *fakeOfferings) GetByID(_ context.Context, id string) (*offering.Offering, error) {
	off, ok := f.items[id]
	if !ok {
		return nil, offering.ErrNotFound
	}
	return off, nil
}

type fakeStaff struct {
	staff.Service
	items map[string]*staff.Staff
}

func (f *fakeStaff) GetByID(_ context.Context, id string) (*staff.Staff, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, staff.ErrNotFound
	}
	return m, nil
}

type fakeClients struct {
	client.Service
	items map[string]*client.Client
}

func (f *fakeClients) GetByID(_ context.Context, id string) (*client.Client, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return c, nil
}

type recordingSender struct {
	events chan notify.BookingCreatedEvent
}

func (s *recordingSender) BookingCreated(_ context.Context, ev notify.BookingCreatedEvent) error {
	s.events <- ev
	return nil
}

// denyingHolder refuses every hold, simulating a concurrent session
// holding the same slots.
type denyingHolder struct{}

func (denyingHolder) Acquire(context.Context, string, time.Time, time.Time) (hold.Release, bool, error) {
	return nil, false, nil
}

type fixture struct {
	svc    *service
	repo   *fakeRepo
	sender *recordingSender

	roomID     string
	room2ID    string
	offeringID string
	staffID    string
	clientID   string
	orgID      string
}

// The fixture runs a 9:00-22:00 grid with 30-minute slots on a fixed
// clock of 08:00 on the booking day.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:       newFakeRepo(),
		sender:     &recordingSender{events: make(chan notify.BookingCreatedEvent, 8)},
		orgID:      uuid.NewString(),
		roomID:     uuid.NewString(),
		room2ID:    uuid.NewString(),
		offeringID: uuid.NewString(),
		staffID:    uuid.NewString(),
		clientID:   uuid.NewString(),
	}

	resources := &fakeResources{items: map[string]*resource.Resource{
		f.roomID:  {ID: f.roomID, OrganizationID: f.orgID, Name: "Studio A", HourlyRate: 20000},
		f.room2ID: {ID: f.room2ID, OrganizationID: f.orgID, Name: "Studio B", HourlyRate: 30000},
	}}
	offerings := &fakeOfferings{items: map[string]*offering.Offering{
		f.offeringID: {ID: f.offeringID, OrganizationID: f.orgID, Name: "Portrait Session", DurationMinutes: 60, Price: 60000, IsActive: true},
	}}
	staffMembers := &fakeStaff{items: map[string]*staff.Staff{
		f.staffID: {ID: f.staffID, Name: "Ana", Email: "ana@example.com", IsActive: true},
	}}
	clients := &fakeClients{items: map[string]*client.Client{
		f.clientID: {ID: f.clientID, DisplayName: "Marco Rossi", Phone: "+39 333 0000000"},
	}}

	f.svc = &service{
		repo:      f.repo,
		resources: resources,
		offerings: offerings,
		staff:     staffMembers,
		clients:   clients,
		notifier:  f.sender,
		holds:     hold.Noop{},
		grid:      schedule.Grid{OpenHour: 9, CloseHour: 22, SlotMinutes: 30},
		policy:    schedule.Policy{},
		guard:     15 * time.Minute,
		now:       func() time.Time { return at(8, 0) },
	}
	return f
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 14, hour, minute, 0, 0, time.UTC)
}

func (f *fixture) createAt(t *testing.T, start time.Time, extra func(*CreateRequest)) *Booking {
	t.Helper()
	req := CreateRequest{
		ResourceID: f.roomID,
		ClientID:   &f.clientID,
		StartTime:  start,
	}
	if extra != nil {
		extra(&req)
	}
	b, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	return b
}

func TestCreateBookingWithOffering(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.Create(context.Background(), CreateRequest{
		ResourceID: f.roomID,
		OfferingID: &f.offeringID,
		StaffID:    &f.staffID,
		ClientID:   &f.clientID,
		StartTime:  at(10, 0),
		Deposit:    20000,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, StatusProgrammed, b.Status)
	assert.Equal(t, f.orgID, b.OrganizationID)
	assert.Equal(t, "Studio A", b.ResourceName)
	// Duration falls back to the offering's nominal length.
	assert.Equal(t, 60, b.DurationMinutes)
	assert.Equal(t, at(11, 0), b.EndTime)
	// Client snapshot comes from the linked record.
	assert.Equal(t, "Marco Rossi", b.ClientName)
	assert.Equal(t, "+39 333 0000000", b.ClientPhone)

	assert.Equal(t, int64(60000), b.TotalPrice)
	assert.Equal(t, int64(20000), b.Deposit)
	assert.Equal(t, int64(40000), b.Balance())
	assert.Equal(t, pricing.StatusPending, b.PaymentStatus)

	select {
	case ev := <-f.sender.events:
		assert.Equal(t, b.ID, ev.BookingID)
		assert.Equal(t, b.StartTime, ev.StartTime)
	case <-time.After(time.Second):
		t.Fatal("booking created event was not published")
	}
}

func TestCreateBookingHourlyPricing(t *testing.T) {
	f := newFixture(t)

	b := f.createAt(t, at(10, 0), func(r *CreateRequest) {
		r.DurationMinutes = 90
	})

	// 90 minutes at 20000 per hour.
	assert.Equal(t, int64(30000), b.TotalPrice)
	assert.Equal(t, 90, b.DurationMinutes)
}

func TestCreateBookingStretchedOfferingPrice(t *testing.T) {
	f := newFixture(t)

	// 90 minutes of a 60-minute 60000 service scales to 90000.
	b := f.createAt(t, at(10, 0), func(r *CreateRequest) {
		r.OfferingID = &f.offeringID
		r.DurationMinutes = 90
	})

	assert.Equal(t, int64(90000), b.TotalPrice)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	unknown := uuid.NewString()
	inactiveStaff := uuid.NewString()
	f.svc.staff.(*fakeStaff).items[inactiveStaff] = &staff.Staff{ID: inactiveStaff, Name: "Gone", IsActive: false}
	inactiveOffering := uuid.NewString()
	f.svc.offerings.(*fakeOfferings).items[inactiveOffering] = &offering.Offering{ID: inactiveOffering, IsActive: false}

	tests := []struct {
		name string
		req  CreateRequest
		want error
	}{
		{
			name: "start in the past",
			req:  CreateRequest{ResourceID: f.roomID, ClientID: &f.clientID, StartTime: at(7, 0)},
			want: ErrStartTimePast,
		},
		{
			name: "no client",
			req:  CreateRequest{ResourceID: f.roomID, StartTime: at(10, 0)},
			want: ErrClientRequired,
		},
		{
			name: "unknown resource",
			req:  CreateRequest{ResourceID: unknown, ClientID: &f.clientID, StartTime: at(10, 0)},
			want: ErrResourceNotFound,
		},
		{
			name: "unknown client",
			req:  CreateRequest{ResourceID: f.roomID, ClientID: &unknown, StartTime: at(10, 0)},
			want: ErrClientNotFound,
		},
		{
			name: "inactive staff",
			req:  CreateRequest{ResourceID: f.roomID, ClientID: &f.clientID, StaffID: &inactiveStaff, StartTime: at(10, 0)},
			want: ErrStaffInactive,
		},
		{
			name: "inactive offering",
			req:  CreateRequest{ResourceID: f.roomID, ClientID: &f.clientID, OfferingID: &inactiveOffering, StartTime: at(10, 0)},
			want: ErrOfferingInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateBookingConflict(t *testing.T) {
	f := newFixture(t)
	f.createAt(t, at(10, 0), func(r *CreateRequest) { r.DurationMinutes = 60 })

	// Overlapping the middle of the existing booking fails.
	_, err := f.svc.Create(context.Background(), CreateRequest{
		ResourceID: f.roomID,
		ClientID:   &f.clientID,
		StartTime:  at(10, 30),
	})
	assert.ErrorIs(t, err, ErrTimeConflict)

	// Back to back is fine under the half-open rule.
	b := f.createAt(t, at(11, 0), nil)
	assert.Equal(t, at(11, 0), b.StartTime)
}

func TestCreateBookingStaffExclusivePolicy(t *testing.T) {
	f := newFixture(t)
	f.svc.policy = schedule.Policy{StaffExclusive: true}

	f.createAt(t, at(10, 0), func(r *CreateRequest) {
		r.StaffID = &f.staffID
		r.DurationMinutes = 60
	})

	// Same staff member on a different resource at the same time.
	_, err := f.svc.Create(context.Background(), CreateRequest{
		ResourceID: f.room2ID,
		ClientID:   &f.clientID,
		StaffID:    &f.staffID,
		StartTime:  at(10, 0),
	})
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestCreateBookingHoldDenied(t *testing.T) {
	f := newFixture(t)
	f.svc.holds = denyingHolder{}

	_, err := f.svc.Create(context.Background(), CreateRequest{
		ResourceID: f.roomID,
		ClientID:   &f.clientID,
		StartTime:  at(10, 0),
	})
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestUpdateBookingRepricesMoney(t *testing.T) {
	f := newFixture(t)
	b := f.createAt(t, at(10, 0), func(r *CreateRequest) {
		r.OfferingID = &f.offeringID
	})
	require.Equal(t, pricing.StatusPending, b.PaymentStatus)

	discount := int64(10000)
	deposit := int64(50000)
	updated, err := f.svc.Update(context.Background(), b.ID, UpdateRequest{
		Discount: &discount,
		Deposit:  &deposit,
	})
	require.NoError(t, err)

	// 60000 - 10000 due, fully covered by the deposit.
	assert.Equal(t, int64(0), updated.Balance())
	assert.Equal(t, pricing.StatusPaid, updated.PaymentStatus)
	require.NotNil(t, updated.PaidAt)
}

func TestCancelFreesSlotAndReinstateRechecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createAt(t, at(10, 0), func(r *CreateRequest) { r.DurationMinutes = 60 })

	cancelled, err := f.svc.Cancel(ctx, b.ID, "client no-show")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, "client no-show", cancelled.CancellationReason)

	// The slot is free again.
	other := f.createAt(t, at(10, 0), func(r *CreateRequest) { r.DurationMinutes = 60 })

	// Reinstating into the now-occupied slot fails and leaves the
	// booking cancelled.
	_, err = f.svc.Reinstate(ctx, b.ID)
	assert.ErrorIs(t, err, ErrTimeConflict)
	got, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)

	// Once the blocker is gone, reinstating succeeds and clears the
	// cancellation reason.
	_, err = f.svc.Cancel(ctx, other.ID, "")
	require.NoError(t, err)
	restored, err := f.svc.Reinstate(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusProgrammed, restored.Status)
	assert.Empty(t, restored.CancellationReason)
}

func TestReinstateRequiresCancelled(t *testing.T) {
	f := newFixture(t)
	b := f.createAt(t, at(10, 0), nil)

	_, err := f.svc.Reinstate(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createAt(t, at(10, 0), nil)

	started, err := f.svc.StartSession(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, started.Status)
	require.NotNil(t, started.SessionStartedAt)

	// Starting twice is rejected.
	_, err = f.svc.StartSession(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	stopped, err := f.svc.StopSession(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, stopped.Status)
	require.NotNil(t, stopped.SessionEndedAt)

	_, err = f.svc.StopSession(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestMarkPaidOverridesBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createAt(t, at(10, 0), func(r *CreateRequest) {
		r.OfferingID = &f.offeringID
	})
	require.Positive(t, b.Balance())

	paid, err := f.svc.MarkPaid(ctx, b.ID, "card")
	require.NoError(t, err)
	assert.Equal(t, pricing.StatusPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaymentMethod)
	assert.Equal(t, "card", *paid.PaymentMethod)
	require.NotNil(t, paid.PaidAt)

	reverted, err := f.svc.UnmarkPaid(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, pricing.StatusPending, reverted.PaymentStatus)
	assert.Nil(t, reverted.PaidAt)
	assert.Nil(t, reverted.PaymentMethod)
}

func TestOpenStartsSkipsBusyWindows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createAt(t, at(10, 0), func(r *CreateRequest) { r.DurationMinutes = 60 })

	starts, err := f.svc.OpenStarts(ctx, f.roomID, at(0, 0), 60)
	require.NoError(t, err)
	require.NotEmpty(t, starts)

	assert.Equal(t, at(9, 0), starts[0])
	assert.NotContains(t, starts, at(9, 30), "would run into the booking")
	assert.NotContains(t, starts, at(10, 0))
	assert.NotContains(t, starts, at(10, 30))
	assert.Contains(t, starts, at(11, 0))
	// Last start that still fits 60 minutes before 22:00.
	assert.Equal(t, at(21, 0), starts[len(starts)-1])
}

func TestBusyIntervalsExcludesCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b1 := f.createAt(t, at(10, 0), func(r *CreateRequest) { r.DurationMinutes = 60 })
	b2 := f.createAt(t, at(14, 0), nil)

	_, err := f.svc.Cancel(ctx, b2.ID, "")
	require.NoError(t, err)

	busy, err := f.svc.BusyIntervals(ctx, f.roomID, at(0, 0))
	require.NoError(t, err)
	require.Len(t, busy, 1)
	assert.Equal(t, b1.ID, busy[0].BookingID)
}
