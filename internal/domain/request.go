package domain

import "time"

// ItemRequest is a user's ask for an item that is not listed yet. Requests are
// immutable once created; items may later point back at one via RequestID.
type ItemRequest struct {
	ID          int64
	Description string
	RequestorID int64
	Created     time.Time
}

// Equal reports identity equality; unsaved requests compare unequal.
func (r ItemRequest) Equal(other ItemRequest) bool {
	if r.ID == 0 || other.ID == 0 {
		return false
	}
	return r.ID == other.ID
}
