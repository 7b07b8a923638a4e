package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/rental-service/internal/domain"
	"github.com/spec-kit/rental-service/internal/repository"
	apperrors "github.com/spec-kit/rental-service/pkg/util"
)

// ItemService owns item records, ownership and the availability flag.
type ItemService struct {
	items    repository.ItemRepository
	users    repository.UserRepository
	requests repository.RequestRepository
	bookings repository.BookingRepository
	comments repository.CommentRepository
}

// ItemDependencies bundles repositories for the item service.
type ItemDependencies struct {
	ItemRepo    repository.ItemRepository
	UserRepo    repository.UserRepository
	RequestRepo repository.RequestRepository
	BookingRepo repository.BookingRepository
	CommentRepo repository.CommentRepository
}

// NewItemService constructs the service.
func NewItemService(deps ItemDependencies) *ItemService {
	return &ItemService{
		items:    deps.ItemRepo,
		users:    deps.UserRepo,
		requests: deps.RequestRepo,
		bookings: deps.BookingRepo,
		comments: deps.CommentRepo,
	}
}

// ItemCreateInput describes item creation payload. Available is a pointer so
// an absent flag can be told apart from false.
type ItemCreateInput struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

// ItemUpdateInput carries a partial update; empty/nil fields are unchanged.
type ItemUpdateInput struct {
	Name        string
	Description string
	Available   *bool
}

// CommentInfo is a comment decorated with its author's display name.
type CommentInfo struct {
	ID         int64
	Text       string
	AuthorName string
	Created    time.Time
}

// ItemDetails is an item decorated with its comments.
type ItemDetails struct {
	Item     domain.Item
	Comments []CommentInfo
}

// OwnedItem is an item decorated with the most recent past booking and the
// nearest future booking, relative to the time of the call.
type OwnedItem struct {
	Item        domain.Item
	LastBooking *domain.Booking
	NextBooking *domain.Booking
}

// Add lists a new item for the owner.
func (s *ItemService) Add(ctx context.Context, ownerID int64, input ItemCreateInput) (*domain.Item, error) {
	if input.Available == nil {
		return nil, apperrors.NewValidationError("field 'available' is required", nil)
	}
	if input.Name == "" {
		return nil, apperrors.NewValidationError("field 'name' is required", nil)
	}
	if input.Description == "" {
		return nil, apperrors.NewValidationError("field 'description' is required", nil)
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": ownerID})
		}
		return nil, err
	}
	if input.RequestID != nil {
		if _, err := s.requests.GetByID(ctx, *input.RequestID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("request", map[string]any{"id": *input.RequestID})
			}
			return nil, err
		}
	}

	item := &domain.Item{
		Name:        input.Name,
		Description: input.Description,
		Available:   *input.Available,
		OwnerID:     ownerID,
		RequestID:   input.RequestID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update mutates an item. Only the owner may do so, and only supplied fields
// overwrite.
func (s *ItemService) Update(ctx context.Context, itemID, callerID int64, input ItemUpdateInput) (*domain.Item, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != callerID {
		return nil, apperrors.NewForbidden("only the owner can update this item")
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, apperrors.MapError(err)
	}
	return item, nil
}

// Get fetches an item together with its comments.
func (s *ItemService) Get(ctx context.Context, itemID int64) (*ItemDetails, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentInfos(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &ItemDetails{Item: *item, Comments: comments}, nil
}

// ListByOwner returns the owner's items, each decorated with its last and
// next booking.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]OwnedItem, error) {
	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	result := make([]OwnedItem, 0, len(items))
	for _, item := range items {
		last, err := s.bookings.LastForItem(ctx, item.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.NextForItem(ctx, item.ID, now)
		if err != nil {
			return nil, err
		}
		result = append(result, OwnedItem{Item: item, LastBooking: last, NextBooking: next})
	}
	return result, nil
}

// Search returns available items whose name or description contains the text,
// case-insensitively. Blank text yields an empty result, not the full catalog.
func (s *ItemService) Search(ctx context.Context, text string) ([]domain.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []domain.Item{}, nil
	}
	return s.items.SearchAvailable(ctx, strings.ToLower(text))
}

func (s *ItemService) getItem(ctx context.Context, itemID int64) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("item", map[string]any{"id": itemID})
		}
		return nil, err
	}
	return item, nil
}

func (s *ItemService) commentInfos(ctx context.Context, itemID int64) ([]CommentInfo, error) {
	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	result := make([]CommentInfo, 0, len(comments))
	for _, comment := range comments {
		info := CommentInfo{ID: comment.ID, Text: comment.Text, Created: comment.Created}
		if author, err := s.users.GetByID(ctx, comment.AuthorID); err == nil {
			info.AuthorName = author.Name
		}
		result = append(result, info)
	}
	return result, nil
}
