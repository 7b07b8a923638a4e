package memory

import (
	"context"

	"github.com/spec-kit/rental-service/internal/domain"
	"github.com/spec-kit/rental-service/internal/repository"
)

type commentRepository struct {
	store *Store
}

// NewCommentRepository returns an in-memory implementation.
func NewCommentRepository(store *Store) repository.CommentRepository {
	return &commentRepository{store: store}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = s.allocID()
	s.comments[comment.ID] = *comment
	s.commentOrder = append(s.commentOrder, comment.ID)
	return nil
}

func (r *commentRepository) ListByItem(ctx context.Context, itemID int64) ([]domain.Comment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.Comment
	for _, id := range s.commentOrder {
		if c, ok := s.comments[id]; ok && c.ItemID == itemID {
			result = append(result, c)
		}
	}
	return result, nil
}
