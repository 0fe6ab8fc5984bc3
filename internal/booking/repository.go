package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelierhq/studio-booking-backend/internal/schedule"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, b *Booking) error
	Delete(ctx context.Context, id string) error
	// HasOverlap reports whether any non-cancelled booking overlaps the
	// proposal on the resource, or on staff/client if the policy makes
	// those dimensions exclusive.
	HasOverlap(ctx context.Context, p schedule.Proposal, pol schedule.Policy) (bool, error)
	// ListForRange returns non-cancelled bookings on a resource that
	// intersect [from, to), ordered by start time.
	ListForRange(ctx context.Context, resourceID string, from, to time.Time) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingColumns = `id, organization_id, resource_id, staff_id, offering_id, client_id,
	client_name, client_phone, start_time, end_time, duration_minutes,
	total_price, discount, deposit, payment_status, payment_method, paid_at,
	status, notes, color, cancellation_reason,
	session_started_at, session_ended_at, created_at, updated_at`

// Same column set qualified for queries that join the resources table.
const bookingColumnsQualified = `b.id, b.organization_id, b.resource_id, b.staff_id, b.offering_id, b.client_id,
	b.client_name, b.client_phone, b.start_time, b.end_time, b.duration_minutes,
	b.total_price, b.discount, b.deposit, b.payment_status, b.payment_method, b.paid_at,
	b.status, b.notes, b.color, b.cancellation_reason,
	b.session_started_at, b.session_ended_at, b.created_at, b.updated_at`

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.OrganizationID, &b.ResourceID, &b.StaffID, &b.OfferingID, &b.ClientID,
		&b.ClientName, &b.ClientPhone, &b.StartTime, &b.EndTime, &b.DurationMinutes,
		&b.TotalPrice, &b.Discount, &b.Deposit, &b.PaymentStatus, &b.PaymentMethod, &b.PaidAt,
		&b.Status, &b.Notes, &b.Color, &b.CancellationReason,
		&b.SessionStartedAt, &b.SessionEndedAt, &b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

// mapWriteError translates the exclusion constraint on the bookings table
// into the conflict sentinel. The constraint is the authoritative overlap
// guard; HasOverlap is only a fast path.
func mapWriteError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
		return ErrTimeConflict
	}
	return fmt.Errorf("%s booking failed: %w", op, err)
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("organization_id", "resource_id", "staff_id", "offering_id", "client_id",
			"client_name", "client_phone", "start_time", "end_time", "duration_minutes",
			"total_price", "discount", "deposit", "payment_status", "payment_method", "paid_at",
			"status", "notes", "color").
		Values(b.OrganizationID, b.ResourceID, b.StaffID, b.OfferingID, b.ClientID,
			b.ClientName, b.ClientPhone, b.StartTime, b.EndTime, b.DurationMinutes,
			b.TotalPrice, b.Discount, b.Deposit, b.PaymentStatus, b.PaymentMethod, b.PaidAt,
			b.Status, b.Notes, b.Color).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return mapWriteError(err, "create")
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumnsQualified, "r.name as resource_name").
		From("public.bookings b").
		Join("public.resources r ON r.id = b.resource_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var resourceName string
	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...), &resourceName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	b.ResourceName = resourceName
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumnsQualified, "r.name as resource_name",
		"count(*) OVER() as total_count").
		From("public.bookings b").
		Join("public.resources r ON r.id = b.resource_id")

	if filter.OrganizationID != "" {
		query = query.Where(squirrel.Eq{"b.organization_id": filter.OrganizationID})
	}
	if filter.ResourceID != "" {
		query = query.Where(squirrel.Eq{"b.resource_id": filter.ResourceID})
	}
	if filter.StaffID != "" {
		query = query.Where(squirrel.Eq{"b.staff_id": filter.StaffID})
	}
	if filter.ClientID != "" {
		query = query.Where(squirrel.Eq{"b.client_id": filter.ClientID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.From != nil {
		query = query.Where(squirrel.Gt{"b.end_time": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.Lt{"b.start_time": *filter.To})
	}

	order := "ASC"
	if filter.SortOrder == "DESC" {
		order = "DESC"
	}
	query = query.OrderBy("b.start_time " + order)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64((filter.Page - 1) * filter.PageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		var resourceName string
		b, err := scanBooking(rows, &resourceName, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		b.ResourceName = resourceName
		bookings = append(bookings, b)
	}
	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("organization_id", b.OrganizationID).
		Set("resource_id", b.ResourceID).
		Set("staff_id", b.StaffID).
		Set("offering_id", b.OfferingID).
		Set("client_id", b.ClientID).
		Set("client_name", b.ClientName).
		Set("client_phone", b.ClientPhone).
		Set("start_time", b.StartTime).
		Set("end_time", b.EndTime).
		Set("duration_minutes", b.DurationMinutes).
		Set("total_price", b.TotalPrice).
		Set("discount", b.Discount).
		Set("deposit", b.Deposit).
		Set("payment_status", b.PaymentStatus).
		Set("payment_method", b.PaymentMethod).
		Set("paid_at", b.PaidAt).
		Set("status", b.Status).
		Set("notes", b.Notes).
		Set("color", b.Color).
		Set("cancellation_reason", b.CancellationReason).
		Set("session_started_at", b.SessionStartedAt).
		Set("session_ended_at", b.SessionEndedAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "update")
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, p schedule.Proposal, pol schedule.Policy) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	// Half-open overlap: existing.start < end AND existing.end > start,
	// so bookings sharing only an endpoint do not collide.
	dims := squirrel.Or{squirrel.Eq{"resource_id": p.ResourceID}}
	if pol.StaffExclusive && p.StaffID != "" {
		dims = append(dims, squirrel.Eq{"staff_id": p.StaffID})
	}
	if pol.ClientExclusive && p.ClientID != "" {
		dims = append(dims, squirrel.Eq{"client_id": p.ClientID})
	}

	query := psql.Select("count(*)").
		From("public.bookings").
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"start_time": p.End}).
		Where(squirrel.Gt{"end_time": p.Start}).
		Where(dims)
	if p.ExcludeID != "" {
		query = query.Where(squirrel.NotEq{"id": p.ExcludeID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("build overlap query failed: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return count > 0, nil
}

func (r *pgxRepository) ListForRange(ctx context.Context, resourceID string, from, to time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("public.bookings").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build range query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings for range failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
