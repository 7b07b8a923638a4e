package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/rental-service/internal/domain"
	"github.com/spec-kit/rental-service/internal/repository"
)

type bookingRepository struct {
	store *Store
}

// NewBookingRepository returns an in-memory implementation.
func NewBookingRepository(store *Store) repository.BookingRepository {
	return &bookingRepository{store: store}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	booking.ID = s.allocID()
	s.bookings[booking.ID] = *booking
	s.bookingOrder = append(s.bookingOrder, booking.ID)
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &booking, nil
}

func (r *bookingRepository) DecideIfWaiting(ctx context.Context, id int64, status domain.BookingStatus) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok || booking.Status != domain.BookingStatusWaiting {
		return false, nil
	}
	booking.Status = status
	s.bookings[id] = booking
	return true, nil
}

func (r *bookingRepository) ListByBooker(ctx context.Context, bookerID int64, state domain.BookingState, now time.Time) ([]domain.Booking, error) {
	return r.listFiltered(func(b domain.Booking) bool { return b.BookerID == bookerID }, state, now), nil
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int64, state domain.BookingState, now time.Time) ([]domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	owned := make(map[int64]bool)
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			owned[item.ID] = true
		}
	}
	s.mu.Unlock()
	return r.listFiltered(func(b domain.Booking) bool { return owned[b.ItemID] }, state, now), nil
}

func (r *bookingRepository) listFiltered(subject func(domain.Booking) bool, state domain.BookingState, now time.Time) []domain.Booking {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.Booking
	for _, id := range s.bookingOrder {
		booking, ok := s.bookings[id]
		if !ok || !subject(booking) {
			continue
		}
		if matchState(booking, state, now) {
			result = append(result, booking)
		}
	}
	// start descending, insertion order on ties
	sort.SliceStable(result, func(i, j int) bool { return result[i].Start.After(result[j].Start) })
	return result
}

func matchState(b domain.Booking, state domain.BookingState, now time.Time) bool {
	switch state {
	case domain.StateCurrent:
		return b.Start.Before(now) && b.End.After(now)
	case domain.StatePast:
		return b.End.Before(now)
	case domain.StateFuture:
		return b.Start.After(now)
	case domain.StateWaiting, domain.StateRejected:
		return b.Status == domain.BookingStatus(state)
	default:
		return true
	}
}

func (r *bookingRepository) LastForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	var last *domain.Booking
	for _, b := range r.forItem(itemID) {
		if !b.End.Before(now) {
			continue
		}
		if last == nil || b.End.After(last.End) {
			candidate := b
			last = &candidate
		}
	}
	return last, nil
}

func (r *bookingRepository) NextForItem(ctx context.Context, itemID int64, now time.Time) (*domain.Booking, error) {
	var next *domain.Booking
	for _, b := range r.forItem(itemID) {
		if !b.Start.After(now) {
			continue
		}
		if next == nil || b.Start.Before(next.Start) {
			candidate := b
			next = &candidate
		}
	}
	return next, nil
}

func (r *bookingRepository) HasFinishedApproved(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	for _, b := range r.forItem(itemID) {
		if b.BookerID == bookerID && b.Status == domain.BookingStatusApproved && b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *bookingRepository) forItem(itemID int64) []domain.Booking {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.Booking
	for _, id := range s.bookingOrder {
		if b, ok := s.bookings[id]; ok && b.ItemID == itemID {
			result = append(result, b)
		}
	}
	return result
}
