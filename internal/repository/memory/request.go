package memory

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/rental-service/internal/domain"
	"github.com/spec-kit/rental-service/internal/repository"
)

type requestRepository struct {
	store *Store
}

// NewRequestRepository returns an in-memory implementation.
func NewRequestRepository(store *Store) repository.RequestRepository {
	return &requestRepository{store: store}
}

func (r *requestRepository) Create(ctx context.Context, request *domain.ItemRequest) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	request.ID = s.allocID()
	s.requests[request.ID] = *request
	s.requestOrder = append(s.requestOrder, request.ID)
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &request, nil
}

func (r *requestRepository) ListByRequestor(ctx context.Context, requestorID int64) ([]domain.ItemRequest, error) {
	return r.collect(func(req domain.ItemRequest) bool { return req.RequestorID == requestorID }), nil
}

func (r *requestRepository) ListByOtherRequestors(ctx context.Context, requestorID int64) ([]domain.ItemRequest, error) {
	return r.collect(func(req domain.ItemRequest) bool { return req.RequestorID != requestorID }), nil
}

func (r *requestRepository) collect(match func(domain.ItemRequest) bool) []domain.ItemRequest {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.ItemRequest
	for _, id := range s.requestOrder {
		if req, ok := s.requests[id]; ok && match(req) {
			result = append(result, req)
		}
	}
	// newest first, id breaks timestamp ties
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Created.Equal(result[j].Created) {
			return result[i].Created.After(result[j].Created)
		}
		return result[i].ID > result[j].ID
	})
	return result
}
