package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/rental-service/internal/domain"
)

// BookingRepository encapsulates booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// DecideIfWaiting applies the status atomically, but only while the
	// booking is still WAITING. Returns false when a concurrent decision
	// already landed.
	DecideIfWaiting(ctx context.Context, id int64, status domain.BookingStatus) (bool, error)
	ListByBooker(ctx context.Context, bookerID int64, state domain.BookingState, now time.Time) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state domain.BookingState, now time.Time) ([]domain.Booking, error)
	// LastForItem returns the most recent booking on the item that has
	// already ended, NextForItem the nearest one that has not started yet.
	// Both return nil without error when no such booking exists.
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error)
	HasFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository returns a Postgres-backed implementation.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingColumns = `b.id, b.start_ts, b.end_ts, b.status, b.item_id, b.booker_id`

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	const query = `
        INSERT INTO bookings (start_ts, end_ts, status, item_id, booker_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		booking.Start,
		booking.End,
		booking.Status,
		booking.ItemID,
		booking.BookerID,
	).Scan(&booking.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings b WHERE b.id=$1`, bookingColumns)

	var booking domain.Booking
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.Start,
		&booking.End,
		&booking.Status,
		&booking.ItemID,
		&booking.BookerID,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) DecideIfWaiting(ctx context.Context, id int64, status domain.BookingStatus) (bool, error) {
	const query = `
        UPDATE bookings SET status=$1
        WHERE id=$2 AND status=$3`

	cmd, err := r.pool.Exec(ctx, query, status, id, domain.BookingStatusWaiting)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *bookingRepository) ListByBooker(ctx context.Context, bookerID int64, state domain.BookingState, now time.Time) ([]domain.Booking, error) {
	return r.listFiltered(ctx, "b.booker_id", bookerID, state, now)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int64, state domain.BookingState, now time.Time) ([]domain.Booking, error) {
	return r.listFiltered(ctx, "i.owner_id", ownerID, state, now)
}

func (r *bookingRepository) listFiltered(ctx context.Context, subjectColumn string, subjectID int64, state domain.BookingState, now time.Time) ([]domain.Booking, error) {
	base := fmt.Sprintf(`
        SELECT %s FROM bookings b
        JOIN items i ON i.id = b.item_id
        WHERE %s = $1`, bookingColumns, subjectColumn)
	args := []any{subjectID}

	switch state {
	case domain.StateCurrent:
		args = append(args, now)
		base += fmt.Sprintf(" AND b.start_ts < $%d AND b.end_ts > $%d", len(args), len(args))
	case domain.StatePast:
		args = append(args, now)
		base += fmt.Sprintf(" AND b.end_ts < $%d", len(args))
	case domain.StateFuture:
		args = append(args, now)
		base += fmt.Sprintf(" AND b.start_ts > $%d", len(args))
	case domain.StateWaiting, domain.StateRejected:
		args = append(args, domain.BookingStatus(state))
		base += fmt.Sprintf(" AND b.status = $%d", len(args))
	}

	base += " ORDER BY b.start_ts DESC, b.id"

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) LastForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM bookings b
        WHERE b.item_id=$1 AND b.end_ts < $2
        ORDER BY b.end_ts DESC LIMIT 1`, bookingColumns)

	return r.fetchOptional(ctx, query, itemID, now)
}

func (r *bookingRepository) NextForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM bookings b
        WHERE b.item_id=$1 AND b.start_ts > $2
        ORDER BY b.start_ts ASC LIMIT 1`, bookingColumns)

	return r.fetchOptional(ctx, query, itemID, now)
}

func (r *bookingRepository) fetchOptional(ctx context.Context, query string, args ...any) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&booking.ID,
		&booking.Start,
		&booking.End,
		&booking.Status,
		&booking.ItemID,
		&booking.BookerID,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) HasFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	const query = `
        SELECT EXISTS(
            SELECT 1 FROM bookings
            WHERE booker_id=$1 AND item_id=$2 AND status=$3 AND end_ts < $4
        )`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, bookerID, itemID, domain.BookingStatusApproved, now).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var result []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		if err := rows.Scan(
			&booking.ID,
			&booking.Start,
			&booking.End,
			&booking.Status,
			&booking.ItemID,
			&booking.BookerID,
		); err != nil {
			return nil, err
		}
		result = append(result, booking)
	}
	return result, rows.Err()
}
