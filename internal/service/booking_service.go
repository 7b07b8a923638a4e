package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/rental-service/internal/domain"
	"github.com/spec-kit/rental-service/internal/events"
	"github.com/spec-kit/rental-service/internal/repository"
	apperrors "github.com/spec-kit/rental-service/pkg/util"
)

// BookingService coordinates the reservation lifecycle.
type BookingService struct {
	bookings   repository.BookingRepository
	items      repository.ItemRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// BookingDependencies bundles repositories for the booking service.
type BookingDependencies struct {
	BookingRepo repository.BookingRepository
	ItemRepo    repository.ItemRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		bookings:   deps.BookingRepo,
		items:      deps.ItemRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// BookingCreateInput describes booking creation payload. Start and End are
// pointers so missing timestamps can be rejected explicitly.
type BookingCreateInput struct {
	ItemID *int64
	Start  *time.Time
	End    *time.Time
}

// Create places a booking in WAITING. Overlapping windows on the same item are
// not rejected here; approval is the owner's call.
func (s *BookingService) Create(ctx context.Context, bookerID int64, input BookingCreateInput) (*domain.Booking, error) {
	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": bookerID})
		}
		return nil, err
	}

	if input.ItemID == nil {
		return nil, apperrors.NewNotFound("item", nil)
	}
	item, err := s.items.GetByID(ctx, *input.ItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("item", map[string]any{"id": *input.ItemID})
		}
		return nil, err
	}

	if !item.Available {
		return nil, apperrors.NewValidationError("item is not available for booking", map[string]any{"item_id": item.ID})
	}
	if item.OwnerID == bookerID {
		return nil, apperrors.NewValidationError("owner cannot book their own item", nil)
	}
	if input.Start == nil || input.End == nil {
		return nil, apperrors.NewValidationError("start and end dates must be provided", nil)
	}
	if !input.Start.Before(*input.End) {
		return nil, apperrors.NewValidationError("start date must be before end date", nil)
	}

	booking := &domain.Booking{
		Start:    *input.Start,
		End:      *input.End,
		Status:   domain.BookingStatusWaiting,
		ItemID:   item.ID,
		BookerID: bookerID,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventBookingCreated,
		ActorID: bookerID,
		Payload: events.BookingCreatedPayload{
			BookingID: booking.ID,
			ItemID:    booking.ItemID,
			BookerID:  booking.BookerID,
			Start:     booking.Start,
			End:       booking.End,
		},
	})
	return booking, nil
}

// Decide approves or rejects a WAITING booking. Only the item's owner may
// decide, and a decision is terminal.
func (s *BookingService) Decide(ctx context.Context, bookingID int64, approve bool, callerID int64) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if item.OwnerID != callerID {
		return nil, apperrors.NewForbidden("only the owner can change the booking status")
	}
	if booking.Status != domain.BookingStatusWaiting {
		return nil, apperrors.NewValidationError("booking status is already decided", nil)
	}

	status := domain.BookingStatusRejected
	if approve {
		status = domain.BookingStatusApproved
	}
	applied, err := s.bookings.DecideIfWaiting(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	if !applied {
		// a concurrent decision won the race
		return nil, apperrors.NewValidationError("booking status is already decided", nil)
	}
	booking.Status = status

	s.publish(ctx, events.Event{
		Type:    events.EventBookingDecided,
		ActorID: callerID,
		Payload: events.BookingDecidedPayload{
			BookingID: booking.ID,
			ItemID:    booking.ItemID,
			Status:    booking.Status,
		},
	})
	return booking, nil
}

// Get fetches a booking for the booker or the item's owner; anyone else is
// refused.
func (s *BookingService) Get(ctx context.Context, bookingID, callerID int64) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID == callerID {
		return booking, nil
	}
	item, err := s.items.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if item.OwnerID != callerID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return booking, nil
}

// ListForBooker returns the booker's bookings filtered by state, newest start
// first.
func (s *BookingService) ListForBooker(ctx context.Context, bookerID int64, state string) ([]domain.Booking, error) {
	parsed, err := s.checkSubjectAndState(ctx, bookerID, state)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByBooker(ctx, bookerID, parsed, time.Now())
}

// ListForOwner returns bookings on the owner's items filtered by state,
// newest start first.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID int64, state string) ([]domain.Booking, error) {
	parsed, err := s.checkSubjectAndState(ctx, ownerID, state)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByOwner(ctx, ownerID, parsed, time.Now())
}

func (s *BookingService) checkSubjectAndState(ctx context.Context, userID int64, state string) (domain.BookingState, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", apperrors.NewNotFound("user", map[string]any{"id": userID})
	}
	parsed, err := domain.ParseBookingState(state)
	if err != nil {
		return "", apperrors.NewValidationError(err.Error(), nil)
	}
	return parsed, nil
}

func (s *BookingService) getBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("booking", map[string]any{"id": bookingID})
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
