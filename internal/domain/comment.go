package domain

import "time"

// Comment is post-rental feedback left on an item. Creation is gated on the
// author having an approved booking on the item that has already ended.
type Comment struct {
	ID       int64
	Text     string
	ItemID   int64
	AuthorID int64
	Created  time.Time
}
