package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/atelierhq/studio-booking-backend/internal/client"
	"github.com/atelierhq/studio-booking-backend/internal/hold"
	"github.com/atelierhq/studio-booking-backend/internal/notify"
	"github.com/atelierhq/studio-booking-backend/internal/offering"
	"github.com/atelierhq/studio-booking-backend/internal/pricing"
	"github.com/atelierhq/studio-booking-backend/internal/resource"
	"github.com/atelierhq/studio-booking-backend/internal/schedule"
	"github.com/atelierhq/studio-booking-backend/internal/staff"
)

type CreateRequest struct {
	ResourceID      string
	StaffID         *string
	OfferingID      *string
	ClientID        *string
	ClientName      string
	ClientPhone     string
	StartTime       time.Time
	DurationMinutes int
	Discount        int64
	Deposit         int64
	Notes           string
	Color           string
}

// UpdateRequest edits booking details in place. Nil fields are left
// unchanged; rescheduling goes through Move and Resize instead.
type UpdateRequest struct {
	StaffID     *string
	OfferingID  *string
	ClientID    *string
	ClientName  *string
	ClientPhone *string
	Discount    *int64
	Deposit     *int64
	Notes       *string
	Color       *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error)
	Delete(ctx context.Context, id string) error

	Move(ctx context.Context, id, resourceID string, newStart time.Time) (*Booking, error)
	Resize(ctx context.Context, id string, newEnd time.Time) (*Booking, error)

	Cancel(ctx context.Context, id, reason string) (*Booking, error)
	Reinstate(ctx context.Context, id string) (*Booking, error)
	StartSession(ctx context.Context, id string) (*Booking, error)
	StopSession(ctx context.Context, id string) (*Booking, error)
	MarkPaid(ctx context.Context, id, method string) (*Booking, error)
	UnmarkPaid(ctx context.Context, id string) (*Booking, error)

	// OpenStarts returns the start times on the given day at which a new
	// booking of the requested duration would fit on the resource.
	OpenStarts(ctx context.Context, resourceID string, day time.Time, durationMinutes int) ([]time.Time, error)
	// BusyIntervals returns the occupied intervals on a resource for one
	// day, for rendering the day grid.
	BusyIntervals(ctx context.Context, resourceID string, day time.Time) ([]schedule.Interval, error)
}

type service struct {
	repo      Repository
	resources resource.Service
	offerings offering.Service
	staff     staff.Service
	clients   client.Service
	notifier  notify.Sender
	holds     hold.Holder

	grid   schedule.Grid
	policy schedule.Policy
	guard  time.Duration

	// now is swappable in tests.
	now func() time.Time
}

func NewService(
	repo Repository,
	resources resource.Service,
	offerings offering.Service,
	staffSvc staff.Service,
	clients client.Service,
	notifier notify.Sender,
	holds hold.Holder,
	grid schedule.Grid,
	policy schedule.Policy,
	guard time.Duration,
) Service {
	return &service{
		repo:      repo,
		resources: resources,
		offerings: offerings,
		staff:     staffSvc,
		clients:   clients,
		notifier:  notifier,
		holds:     holds,
		grid:      grid,
		policy:    policy,
		guard:     guard,
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if req.StartTime.IsZero() {
		return nil, ErrInvalidTimeRange
	}
	if req.StartTime.Before(s.now()) {
		return nil, ErrStartTimePast
	}
	if req.ClientID == nil && req.ClientName == "" {
		return nil, ErrClientRequired
	}

	res, err := s.resources.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	b := &Booking{
		OrganizationID: res.OrganizationID,
		ResourceID:     res.ID,
		ResourceName:   res.Name,
		StaffID:        req.StaffID,
		OfferingID:     req.OfferingID,
		ClientID:       req.ClientID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		StartTime:      req.StartTime,
		Discount:       req.Discount,
		Deposit:        req.Deposit,
		Status:         StatusProgrammed,
		Notes:          req.Notes,
		Color:          req.Color,
	}

	if err := s.checkStaff(ctx, req.StaffID); err != nil {
		return nil, err
	}
	if err := s.snapshotClient(ctx, b); err != nil {
		return nil, err
	}

	duration := req.DurationMinutes
	if b.OfferingID != nil {
		off, err := s.activeOffering(ctx, *b.OfferingID)
		if err != nil {
			return nil, err
		}
		if duration <= 0 {
			duration = off.DurationMinutes
		}
	}
	if duration <= 0 {
		duration = s.grid.SlotMinutes
	}
	b.DurationMinutes = duration
	b.EndTime = b.StartTime.Add(time.Duration(duration) * time.Minute)

	if err := s.ensureFits(ctx, b, ""); err != nil {
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
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.publishCreated(b)
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StaffID != nil {
		if *req.StaffID == "" {
			b.StaffID = nil
		} else {
			if err := s.checkStaff(ctx, req.StaffID); err != nil {
				return nil, err
			}
			b.StaffID = req.StaffID
		}
	}
	if req.OfferingID != nil {
		if *req.OfferingID == "" {
			b.OfferingID = nil
		} else {
			if _, err := s.activeOffering(ctx, *req.OfferingID); err != nil {
				return nil, err
			}
			b.OfferingID = req.OfferingID
		}
	}
	if req.ClientID != nil {
		if *req.ClientID == "" {
			b.ClientID = nil
		} else {
			b.ClientID = req.ClientID
			if err := s.snapshotClient(ctx, b); err != nil {
				return nil, err
			}
		}
	}
	if req.ClientName != nil {
		b.ClientName = *req.ClientName
	}
	if req.ClientPhone != nil {
		b.ClientPhone = *req.ClientPhone
	}
	if req.Discount != nil {
		b.Discount = *req.Discount
	}
	if req.Deposit != nil {
		b.Deposit = *req.Deposit
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}
	if req.Color != nil {
		b.Color = *req.Color
	}

	if err := s.reprice(ctx, b); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Cancel(ctx context.Context, id, reason string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusCancelled {
		return b, nil
	}

	b.Status = StatusCancelled
	b.CancellationReason = reason
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Reinstate restores a cancelled booking. Its interval re-enters conflict
// detection, so the slot must still be free.
func (s *service) Reinstate(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusCancelled {
		return nil, ErrInvalidStatus
	}

	if err := s.ensureFits(ctx, b, b.ID); err != nil {
		return nil, err
	}

	b.Status = StatusProgrammed
	b.CancellationReason = ""
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) StartSession(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusProgrammed {
		return nil, ErrInvalidStatus
	}

	now := s.now()
	b.Status = StatusInProgress
	b.SessionStartedAt = &now
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) StopSession(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusInProgress {
		return nil, ErrInvalidStatus
	}

	now := s.now()
	b.Status = StatusCompleted
	b.SessionEndedAt = &now
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// MarkPaid is an operator override: it forces the paid state regardless of
// the outstanding balance. A later money edit re-derives the status.
func (s *service) MarkPaid(ctx context.Context, id, method string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	b.PaymentStatus = pricing.StatusPaid
	b.PaidAt = &now
	if method != "" {
		b.PaymentMethod = &method
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) UnmarkPaid(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.PaymentStatus = pricing.StatusPending
	b.PaidAt = nil
	b.PaymentMethod = nil
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) OpenStarts(ctx context.Context, resourceID string, day time.Time, durationMinutes int) ([]time.Time, error) {
	if _, err := s.resources.GetByID(ctx, resourceID); err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	busy, err := s.busyFor(ctx, resourceID, day)
	if err != nil {
		return nil, err
	}
	slotLen := time.Duration(durationMinutes) * time.Minute
	return s.grid.OpenStarts(day, slotLen, s.now(), s.guard, busy), nil
}

func (s *service) BusyIntervals(ctx context.Context, resourceID string, day time.Time) ([]schedule.Interval, error) {
	return s.busyFor(ctx, resourceID, day)
}

func (s *service) busyFor(ctx context.Context, resourceID string, day time.Time) ([]schedule.Interval, error) {
	existing, err := s.repo.ListForRange(ctx, resourceID, s.grid.DayOpen(day), s.grid.DayClose(day))
	if err != nil {
		return nil, err
	}
	intervals := make([]schedule.Interval, 0, len(existing))
	for _, b := range existing {
		intervals = append(intervals, b.Interval())
	}
	return intervals, nil
}

// ensureFits runs the overlap pre-check for the booking's current interval.
func (s *service) ensureFits(ctx context.Context, b *Booking, excludeID string) error {
	if !b.EndTime.After(b.StartTime) {
		return ErrInvalidTimeRange
	}

	p := schedule.Proposal{
		ResourceID: b.ResourceID,
		Start:      b.StartTime,
		End:        b.EndTime,
		ExcludeID:  excludeID,
	}
	if b.StaffID != nil {
		p.StaffID = *b.StaffID
	}
	if b.ClientID != nil {
		p.ClientID = *b.ClientID
	}

	conflict, err := s.repo.HasOverlap(ctx, p, s.policy)
	if err != nil {
		return err
	}
	if conflict {
		return ErrTimeConflict
	}
	return nil
}

// reprice recomputes the money fields from the booking's current duration:
// proportional to the offering's nominal rate when one is attached, the
// resource's hourly rate otherwise.
func (s *service) reprice(ctx context.Context, b *Booking) error {
	var total int64
	if b.OfferingID != nil {
		off, err := s.offerings.GetByID(ctx, *b.OfferingID)
		if err != nil {
			if errors.Is(err, offering.ErrNotFound) {
				return ErrOfferingNotFound
			}
			return err
		}
		rate := pricing.ServiceRate{Price: off.Price, Minutes: off.DurationMinutes}
		total = pricing.ServiceTotal(&rate, b.DurationMinutes)
	} else {
		res, err := s.resources.GetByID(ctx, b.ResourceID)
		if err != nil {
			if errors.Is(err, resource.ErrNotFound) {
				return ErrResourceNotFound
			}
			return err
		}
		total = pricing.HourlyTotal(res.HourlyRate, b.DurationMinutes)
	}

	s.applyQuote(b, pricing.Derive(total, b.Discount, b.Deposit))
	return nil
}

// applyQuote writes a derived quote back onto the booking and keeps the
// paid-at timestamp consistent with the derived status.
func (s *service) applyQuote(b *Booking, q pricing.Quote) {
	wasPaid := b.PaymentStatus == pricing.StatusPaid

	b.TotalPrice = q.Total
	b.Discount = q.Discount
	b.Deposit = q.Deposit
	b.PaymentStatus = q.Status

	switch {
	case q.Status == pricing.StatusPaid && !wasPaid:
		now := s.now()
		b.PaidAt = &now
	case q.Status == pricing.StatusPending:
		b.PaidAt = nil
		b.PaymentMethod = nil
	}
}

func (s *service) checkStaff(ctx context.Context, staffID *string) error {
	if staffID == nil {
		return nil
	}
	member, err := s.staff.GetByID(ctx, *staffID)
	if err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			return ErrStaffNotFound
		}
		return err
	}
	if !member.IsActive {
		return ErrStaffInactive
	}
	return nil
}

// snapshotClient fills the denormalized client fields from the client
// record when a client is linked and the caller gave no explicit values.
func (s *service) snapshotClient(ctx context.Context, b *Booking) error {
	if b.ClientID == nil {
		return nil
	}
	c, err := s.clients.GetByID(ctx, *b.ClientID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	if b.ClientName == "" {
		b.ClientName = c.DisplayName
	}
	if b.ClientPhone == "" {
		b.ClientPhone = c.Phone
	}
	return nil
}

func (s *service) activeOffering(ctx context.Context, id string) (*offering.Offering, error) {
	off, err := s.offerings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, offering.ErrNotFound) {
			return nil, ErrOfferingNotFound
		}
		return nil, err
	}
	if !off.IsActive {
		return nil, ErrOfferingInactive
	}
	return off, nil
}

func (s *service) publishCreated(b *Booking) {
	ev := notify.BookingCreatedEvent{
		BookingID:      b.ID,
		OrganizationID: b.OrganizationID,
		ResourceID:     b.ResourceID,
		ClientName:     b.ClientName,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.notifier.BookingCreated(ctx, ev); err != nil {
			log.Printf("booking created notification failed for %s: %v", ev.BookingID, err)
		}
	}()
}
