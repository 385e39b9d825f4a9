package models

import (
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
)

// BookingResponse представление бронирования для чтения
type BookingResponse struct {
	ID          int64             `json:"id"`
	UUID        string            `json:"uuid"`
	SlotID      int64             `json:"slotId"`
	ClientID    *int64            `json:"clientId,omitempty"`
	GuestEmail  *string           `json:"guestEmail,omitempty"`
	Status      string            `json:"status"`
	CreatedVia  string            `json:"createdVia"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CancelledAt *time.Time        `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// HistoryEntry одна запись журнала переходов
type HistoryEntry struct {
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus"`
	ChangedBy  *int64    `json:"changedBy,omitempty"`
	ChangedAt  time.Time `json:"changedAt"`
}

// BookingDetailResponse бронирование вместе с журналом переходов
type BookingDetailResponse struct {
	Booking BookingResponse `json:"booking"`
	History []HistoryEntry  `json:"history"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// InboxResponse админский список с распределением по статусам
type InboxResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Counts   map[string]int64  `json:"counts"`
}

// SlotResponse представление слота для чтения
type SlotResponse struct {
	ID             int64     `json:"id"`
	ServiceID      int64     `json:"serviceId"`
	FacilityID     int64     `json:"facilityId"`
	StartAt        time.Time `json:"startAt"`
	EndAt          time.Time `json:"endAt"`
	Capacity       int       `json:"capacity"`
	AvailableCount int       `json:"availableCount"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainBooking конвертирует доменное бронирование в ответ
func FromDomainBooking(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:          booking.ID,
		UUID:        booking.UUID,
		SlotID:      booking.SlotID,
		ClientID:    booking.ClientID,
		GuestEmail:  booking.GuestEmail,
		Status:      string(booking.Status),
		CreatedVia:  string(booking.CreatedVia),
		Metadata:    booking.Metadata,
		CancelledAt: booking.CancelledAt,
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}
}

// FromDomainBookings конвертирует список бронирований
func FromDomainBookings(bookings []*domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, FromDomainBooking(booking))
	}
	return result
}

// FromDomainHistory конвертирует журнал переходов
func FromDomainHistory(entries []*domain.BookingStatusHistory) []HistoryEntry {
	result := make([]HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, HistoryEntry{
			FromStatus: string(entry.FromStatus),
			ToStatus:   string(entry.ToStatus),
			ChangedBy:  entry.ChangedBy,
			ChangedAt:  entry.ChangedAt,
		})
	}
	return result
}

// FromDomainSlots конвертирует список слотов
func FromDomainSlots(slots []*domain.BookingSlot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, SlotResponse{
			ID:             slot.ID,
			ServiceID:      slot.ServiceID,
			FacilityID:     slot.FacilityID,
			StartAt:        slot.StartAt,
			EndAt:          slot.EndAt,
			Capacity:       slot.Capacity,
			AvailableCount: slot.AvailableCount,
		})
	}
	return result
}
