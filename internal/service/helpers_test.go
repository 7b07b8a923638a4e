package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/rental-service/internal/domain"
	"github.com/spec-kit/rental-service/internal/events"
	"github.com/spec-kit/rental-service/internal/repository"
	"github.com/spec-kit/rental-service/internal/repository/memory"
	"github.com/spec-kit/rental-service/internal/service"
	apperrors "github.com/spec-kit/rental-service/pkg/util"
)

// fixture wires the full service layer against a shared in-memory store.
type fixture struct {
	users    *service.UserService
	items    *service.ItemService
	bookings *service.BookingService
	requests *service.RequestService
	comments *service.CommentService

	userRepo    repository.UserRepository
	itemRepo    repository.ItemRepository
	bookingRepo repository.BookingRepository
	requestRepo repository.RequestRepository
	commentRepo repository.CommentRepository

	dispatcher events.Dispatcher
	published  *[]events.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	itemRepo := memory.NewItemRepository(store)
	bookingRepo := memory.NewBookingRepository(store)
	requestRepo := memory.NewRequestRepository(store)
	commentRepo := memory.NewCommentRepository(store)

	dispatcher := events.NewInMemoryDispatcher()
	published := &[]events.Event{}
	for _, eventType := range []events.EventType{
		events.EventBookingCreated,
		events.EventBookingDecided,
		events.EventCommentAdded,
	} {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			*published = append(*published, event)
			return nil
		})
	}

	return &fixture{
		users: service.NewUserService(userRepo),
		items: service.NewItemService(service.ItemDependencies{
			ItemRepo:    itemRepo,
			UserRepo:    userRepo,
			RequestRepo: requestRepo,
			BookingRepo: bookingRepo,
			CommentRepo: commentRepo,
		}),
		bookings: service.NewBookingService(service.BookingDependencies{
			BookingRepo: bookingRepo,
			ItemRepo:    itemRepo,
			UserRepo:    userRepo,
			Dispatcher:  dispatcher,
		}),
		requests: service.NewRequestService(service.RequestDependencies{
			RequestRepo: requestRepo,
			UserRepo:    userRepo,
			ItemRepo:    itemRepo,
		}),
		comments: service.NewCommentService(service.CommentDependencies{
			CommentRepo: commentRepo,
			BookingRepo: bookingRepo,
			ItemRepo:    itemRepo,
			UserRepo:    userRepo,
			Dispatcher:  dispatcher,
		}),
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		bookingRepo: bookingRepo,
		requestRepo: requestRepo,
		commentRepo: commentRepo,
		dispatcher:  dispatcher,
		published:   published,
	}
}

func (fx *fixture) seedUser(t *testing.T, name, email string) *domain.User {
	t.Helper()
	user := &domain.User{Name: name, Email: email}
	require.NoError(t, fx.userRepo.Create(context.Background(), user))
	return user
}

func (fx *fixture) seedItem(t *testing.T, ownerID int64, name string, available bool) *domain.Item {
	t.Helper()
	item := &domain.Item{Name: name, Description: name + " description", Available: available, OwnerID: ownerID}
	require.NoError(t, fx.itemRepo.Create(context.Background(), item))
	return item
}

func (fx *fixture) seedBooking(t *testing.T, itemID, bookerID int64, status domain.BookingStatus, start, end time.Time) *domain.Booking {
	t.Helper()
	booking := &domain.Booking{Start: start, End: end, Status: status, ItemID: itemID, BookerID: bookerID}
	require.NoError(t, fx.bookingRepo.Create(context.Background(), booking))
	return booking
}

func requireDomainError(t *testing.T, err error, code string) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, code, domainErr.Code, "unexpected error code for %v", err)
	return domainErr
}
