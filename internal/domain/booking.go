package domain

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus enumerates lifecycle states for bookings.
type BookingStatus string

const (
	BookingStatusWaiting  BookingStatus = "WAITING"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusRejected BookingStatus = "REJECTED"
	// BookingStatusCanceled is declared for forward compatibility; no
	// operation currently produces it.
	BookingStatusCanceled BookingStatus = "CANCELED"
)

// Booking is a reservation of an item for a time window. It is created in
// WAITING and moves to APPROVED or REJECTED exactly once, by the item's owner.
type Booking struct {
	ID       int64
	Start    time.Time
	End      time.Time
	Status   BookingStatus
	ItemID   int64
	BookerID int64
}

// Equal reports identity equality; unsaved bookings compare unequal.
func (b Booking) Equal(other Booking) bool {
	if b.ID == 0 || other.ID == 0 {
		return false
	}
	return b.ID == other.ID
}

// BookingState is the temporal/status classification used to filter booking
// lists. ALL is the default; CURRENT, PAST and FUTURE are evaluated against
// the clock at query time, WAITING and REJECTED against the stored status.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState parses a state string case-insensitively. An empty string
// means ALL; anything unrecognized is an error rather than a silent fallback.
func ParseBookingState(raw string) (BookingState, error) {
	if raw == "" {
		return StateAll, nil
	}
	switch state := BookingState(strings.ToUpper(raw)); state {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return state, nil
	default:
		return "", fmt.Errorf("unknown booking state: %s", raw)
	}
}
