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

// RequestService owns item requests and their fulfillment decoration.
type RequestService struct {
	requests repository.RequestRepository
	users    repository.UserRepository
	items    repository.ItemRepository
}

// RequestDependencies bundles repositories for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	UserRepo    repository.UserRepository
	ItemRepo    repository.ItemRepository
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests: deps.RequestRepo,
		users:    deps.UserRepo,
		items:    deps.ItemRepo,
	}
}

// ItemShort is the fulfillment view of an item listed against a request.
type ItemShort struct {
	ID      int64
	Name    string
	OwnerID int64
}

// RequestDetails is a request decorated with the items answering it.
type RequestDetails struct {
	Request domain.ItemRequest
	Items   []ItemShort
}

// Create records a new item request, timestamped now.
func (s *RequestService) Create(ctx context.Context, requestorID int64, description string) (*domain.ItemRequest, error) {
	if err := s.checkUser(ctx, requestorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewValidationError("description must not be blank", nil)
	}

	request := &domain.ItemRequest{
		Description: description,
		RequestorID: requestorID,
		Created:     time.Now(),
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// ListOwn returns the requestor's own requests, newest first.
func (s *RequestService) ListOwn(ctx context.Context, requestorID int64) ([]RequestDetails, error) {
	if err := s.checkUser(ctx, requestorID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, requests)
}

// ListOthers returns everyone else's requests, newest first.
func (s *RequestService) ListOthers(ctx context.Context, requestorID int64) ([]RequestDetails, error) {
	if err := s.checkUser(ctx, requestorID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByOtherRequestors(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, requests)
}

// Get fetches a single request with decoration.
func (s *RequestService) Get(ctx context.Context, requestorID, requestID int64) (*RequestDetails, error) {
	if err := s.checkUser(ctx, requestorID); err != nil {
		return nil, err
	}
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"id": requestID})
		}
		return nil, err
	}

	details, err := s.decorate(ctx, []domain.ItemRequest{*request})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *RequestService) decorate(ctx context.Context, requests []domain.ItemRequest) ([]RequestDetails, error) {
	result := make([]RequestDetails, 0, len(requests))
	for _, request := range requests {
		items, err := s.items.ListByRequest(ctx, request.ID)
		if err != nil {
			return nil, err
		}
		short := make([]ItemShort, 0, len(items))
		for _, item := range items {
			short = append(short, ItemShort{ID: item.ID, Name: item.Name, OwnerID: item.OwnerID})
		}
		result = append(result, RequestDetails{Request: request, Items: short})
	}
	return result, nil
}

func (s *RequestService) checkUser(ctx context.Context, userID int64) error {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFound("user", map[string]any{"id": userID})
	}
	return nil
}
