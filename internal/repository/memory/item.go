package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/rental-service/internal/domain"
	"github.com/spec-kit/rental-service/internal/repository"
)

type itemRepository struct {
	store *Store
}

// NewItemRepository returns an in-memory implementation.
func NewItemRepository(store *Store) repository.ItemRepository {
	return &itemRepository{store: store}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.allocID()
	s.items[item.ID] = *item
	return nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.items[item.ID] = *item
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &item, nil
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	return r.collect(func(item domain.Item) bool { return item.OwnerID == ownerID }), nil
}

func (r *itemRepository) ListByRequest(ctx context.Context, requestID int64) ([]domain.Item, error) {
	return r.collect(func(item domain.Item) bool {
		return item.RequestID != nil && *item.RequestID == requestID
	}), nil
}

func (r *itemRepository) SearchAvailable(ctx context.Context, text string) ([]domain.Item, error) {
	return r.collect(func(item domain.Item) bool {
		if !item.Available {
			return false
		}
		return strings.Contains(strings.ToLower(item.Name), text) ||
			strings.Contains(strings.ToLower(item.Description), text)
	}), nil
}

func (r *itemRepository) collect(match func(domain.Item) bool) []domain.Item {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.Item
	for _, item := range s.items {
		if match(item) {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
