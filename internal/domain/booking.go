package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusAttended  BookingStatus = "attended"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
	StatusArchived  BookingStatus = "archived"
)

// AllStatuses список всех допустимых статусов бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusAttended,
	StatusCancelled,
	StatusNoShow,
	StatusArchived,
}

// allowedTransitions таблица переходов статусной машины бронирования.
// archived — терминальный статус.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow, StatusArchived},
	StatusConfirmed: {StatusAttended, StatusCancelled, StatusNoShow, StatusArchived},
	StatusAttended:  {StatusArchived},
	StatusCancelled: {StatusArchived},
	StatusNoShow:    {StatusArchived},
	StatusArchived:  {},
}

// ParseBookingStatus валидирует строковый токен статуса
func ParseBookingStatus(s string) (BookingStatus, bool) {
	for _, status := range AllStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// CanTransition reports whether the from -> to edge exists in the
// status state machine. from == to is not a transition.
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CreatedVia канал создания бронирования
type CreatedVia string

const (
	ViaWeb   CreatedVia = "web"
	ViaAdmin CreatedVia = "admin"
	ViaPhone CreatedVia = "phone"
	ViaAPI   CreatedVia = "api"
)

// Booking represents a reservation of one spot in a booking slot.
// Exactly one of ClientID / GuestEmail identifies the requester.
type Booking struct {
	ID         int64
	SlotID     int64
	ClientID   *int64
	GuestEmail *string
	Status     BookingStatus
	CreatedBy  *int64
	CreatedVia CreatedVia
	UUID       string
	Metadata   map[string]string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsGuest returns true if the booking was made without a client record
func (b *Booking) IsGuest() bool {
	return b.ClientID == nil
}

// HoldsCapacity reports whether the booking still occupies a slot spot.
// Cancelled and no-show bookings have released theirs.
func (b *Booking) HoldsCapacity() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal reports whether no further transitions are possible
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusArchived
}

// BookingStatusHistory одна запись append-only журнала переходов.
// Записи никогда не изменяются и не удаляются.
type BookingStatusHistory struct {
	ID         int64
	BookingID  int64
	FromStatus BookingStatus // пустой для записи о создании
	ToStatus   BookingStatus
	ChangedBy  *int64
	ChangedAt  time.Time
}
