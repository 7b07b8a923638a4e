package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingState(t *testing.T) {
	tests := []struct {
		raw     string
		want    BookingState
		wantErr bool
	}{
		{raw: "", want: StateAll},
		{raw: "ALL", want: StateAll},
		{raw: "all", want: StateAll},
		{raw: "Current", want: StateCurrent},
		{raw: "past", want: StatePast},
		{raw: "FUTURE", want: StateFuture},
		{raw: "waiting", want: StateWaiting},
		{raw: "REJECTED", want: StateRejected},
		{raw: "APPROVED", wantErr: true},
		{raw: "CANCELED", wantErr: true},
		{raw: "SOMEDAY", wantErr: true},
		{raw: "ALL ", wantErr: true},
	}
	for _, tc := range tests {
		name := tc.raw
		if name == "" {
			name = "empty"
		}
		t.Run(name, func(t *testing.T) {
			got, err := ParseBookingState(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEntityEquality(t *testing.T) {
	assert.True(t, User{ID: 1}.Equal(User{ID: 1, Name: "renamed"}))
	assert.False(t, User{ID: 1}.Equal(User{ID: 2}))
	assert.False(t, User{}.Equal(User{}))

	assert.True(t, Booking{ID: 5}.Equal(Booking{ID: 5}))
	assert.False(t, Booking{}.Equal(Booking{}))

	assert.True(t, Item{ID: 3}.Equal(Item{ID: 3}))
	assert.False(t, Item{ID: 3}.Equal(Item{}))

	assert.True(t, ItemRequest{ID: 7}.Equal(ItemRequest{ID: 7}))
	assert.False(t, ItemRequest{}.Equal(ItemRequest{ID: 7}))
}
