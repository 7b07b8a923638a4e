// Package memory provides in-memory implementations of the repository
// interfaces. They mirror the Postgres implementations' contract, including
// returning pgx.ErrNoRows for missing rows, so services behave identically
// against either backend. Used by tests.
package memory

import (
	"sync"

	"github.com/spec-kit/rental-service/internal/domain"
)

// Store holds all entity tables behind one mutex.
type Store struct {
	mu sync.Mutex

	users    map[int64]domain.User
	items    map[int64]domain.Item
	bookings map[int64]domain.Booking
	requests map[int64]domain.ItemRequest
	comments map[int64]domain.Comment

	// insertion order per table, for stable listing
	bookingOrder []int64
	requestOrder []int64
	commentOrder []int64

	nextID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[int64]domain.User),
		items:    make(map[int64]domain.Item),
		bookings: make(map[int64]domain.Booking),
		requests: make(map[int64]domain.ItemRequest),
		comments: make(map[int64]domain.Comment),
	}
}

func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}
