package dto

import "time"

// CreateItemRequest payload for listing an item. Available is a pointer so an
// absent flag is rejected rather than defaulted to false.
type CreateItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemRequest payload for partial update; empty/nil fields are unchanged.
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

// CreateCommentRequest payload for post-rental feedback.
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// CommentResponse is the wire view of a comment.
type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemResponse is the wire view of an item. Comments are present on the
// single-item read; lastBooking/nextBooking on the owner listing.
type ItemResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *int64            `json:"requestId,omitempty"`
	Comments    []CommentResponse `json:"comments,omitempty"`
	LastBooking *BookingResponse  `json:"lastBooking,omitempty"`
	NextBooking *BookingResponse  `json:"nextBooking,omitempty"`
}

// ItemShortResponse is the fulfillment view used in request decoration.
type ItemShortResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}
