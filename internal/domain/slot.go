package domain

import "time"

// BookingSlot represents a bookable time window with finite capacity
// for a service at a facility.
// Invariant: 0 <= AvailableCount <= Capacity. The counter is mutated
// only through the slot repository's atomic reserve/release operations.
type BookingSlot struct {
	ID             int64
	ServiceID      int64
	FacilityID     int64
	StartAt        time.Time
	EndAt          time.Time
	Capacity       int
	AvailableCount int
	LockVersion    int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCapacity reports whether at least one spot is free
func (s *BookingSlot) HasCapacity() bool {
	return s.AvailableCount > 0
}

// IsFull reports whether every spot is taken
func (s *BookingSlot) IsFull() bool {
	return s.AvailableCount <= 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *BookingSlot) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	occupied := s.Capacity - s.AvailableCount
	return float64(occupied) / float64(s.Capacity) * 100
}

// SlotReservation короткоживущий soft hold на место в слоте.
// Истекшие резервации реклеймит sweeper.
type SlotReservation struct {
	ID                  int64
	SlotID              int64
	ReservedByUserID    *int64
	ReservedForClientID *int64
	GuestEmail          *string
	ExpiresAt           time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired reports whether the hold has lapsed at the given moment
func (r *SlotReservation) IsExpired(now time.Time) bool {
	return r.ExpiresAt.Before(now)
}
