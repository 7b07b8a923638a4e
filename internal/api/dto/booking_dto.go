package dto

import "time"

// CreateBookingRequest payload for placing a booking. Pointer fields let the
// server distinguish absent values from zero values.
type CreateBookingRequest struct {
	ItemID *int64     `json:"itemId" validate:"required"`
	Start  *time.Time `json:"start" validate:"required"`
	End    *time.Time `json:"end" validate:"required"`
}

// BookingResponse is the wire view of a booking.
type BookingResponse struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
	ItemID   int64     `json:"itemId"`
	BookerID int64     `json:"bookerId"`
}
