package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/rental-service/internal/domain"
	"github.com/spec-kit/rental-service/internal/events"
	"github.com/spec-kit/rental-service/internal/repository"
	apperrors "github.com/spec-kit/rental-service/pkg/util"
)

// CommentService gates post-rental comments on completed bookings.
type CommentService struct {
	comments   repository.CommentRepository
	bookings   repository.BookingRepository
	items      repository.ItemRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// CommentDependencies bundles repositories for the comment service.
type CommentDependencies struct {
	CommentRepo repository.CommentRepository
	BookingRepo repository.BookingRepository
	ItemRepo    repository.ItemRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		comments:   deps.CommentRepo,
		bookings:   deps.BookingRepo,
		items:      deps.ItemRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Add creates a comment. The author must have an approved booking on the item
// that has already ended.
func (s *CommentService) Add(ctx context.Context, authorID, itemID int64, text string) (*CommentInfo, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": authorID})
		}
		return nil, err
	}
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("item", map[string]any{"id": itemID})
		}
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("comment text is required", nil)
	}

	now := time.Now()
	rented, err := s.bookings.HasFinishedApproved(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !rented {
		return nil, apperrors.NewValidationError("user did not rent this item in the past", nil)
	}

	comment := &domain.Comment{
		Text:     text,
		ItemID:   itemID,
		AuthorID: authorID,
		Created:  now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventCommentAdded,
		ActorID: authorID,
		Payload: events.CommentAddedPayload{
			CommentID: comment.ID,
			ItemID:    itemID,
			AuthorID:  authorID,
		},
	})

	return &CommentInfo{
		ID:         comment.ID,
		Text:       comment.Text,
		AuthorName: author.Name,
		Created:    comment.Created,
	}, nil
}

func (s *CommentService) publish(ctx context.Context, event events.Event) {
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
