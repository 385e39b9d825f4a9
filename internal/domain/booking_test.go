package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to no_show", StatusPending, StatusNoShow, true},
		{"pending to archived", StatusPending, StatusArchived, true},
		{"pending to attended", StatusPending, StatusAttended, false},
		{"confirmed to attended", StatusConfirmed, StatusAttended, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to no_show", StatusConfirmed, StatusNoShow, true},
		{"confirmed to pending", StatusConfirmed, StatusPending, false},
		{"attended to archived", StatusAttended, StatusArchived, true},
		{"attended to cancelled", StatusAttended, StatusCancelled, false},
		{"cancelled to archived", StatusCancelled, StatusArchived, true},
		{"cancelled to confirmed", StatusCancelled, StatusConfirmed, false},
		{"no_show to archived", StatusNoShow, StatusArchived, true},
		{"archived is terminal", StatusArchived, StatusPending, false},
		{"same status is not a transition", StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestParseBookingStatus(t *testing.T) {
	for _, status := range AllStatuses {
		parsed, ok := ParseBookingStatus(string(status))
		assert.True(t, ok)
		assert.Equal(t, status, parsed)
	}

	_, ok := ParseBookingStatus("unknown")
	assert.False(t, ok)

	_, ok = ParseBookingStatus("")
	assert.False(t, ok)
}

func TestBookingHoldsCapacity(t *testing.T) {
	holds := map[BookingStatus]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusAttended:  false,
		StatusCancelled: false,
		StatusNoShow:    false,
		StatusArchived:  false,
	}

	for status, want := range holds {
		booking := &Booking{Status: status}
		assert.Equal(t, want, booking.HoldsCapacity(), "status %s", status)
	}
}

func TestBookingIsGuest(t *testing.T) {
	clientID := int64(7)
	email := "guest@example.com"

	assert.True(t, (&Booking{GuestEmail: &email}).IsGuest())
	assert.False(t, (&Booking{ClientID: &clientID}).IsGuest())
}
