package update_booking_status

import (
	"time"

	updateBookingStatus "github.com/nordeim/Elderly-Care-Center/internal/usecase/update_booking_status"
)

// UpdateBookingStatusRequest HTTP модель запроса на смену статуса
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// UpdateBookingStatusResponse HTTP модель ответа
type UpdateBookingStatusResponse struct {
	ID          int64      `json:"id"`
	FromStatus  string     `json:"fromStatus"`
	Status      string     `json:"status"`
	ChangedAt   time.Time  `json:"changedAt"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *updateBookingStatus.Response) *UpdateBookingStatusResponse {
	return &UpdateBookingStatusResponse{
		ID:          resp.ID,
		FromStatus:  resp.FromStatus,
		Status:      resp.Status,
		ChangedAt:   resp.ChangedAt,
		CancelledAt: resp.CancelledAt,
	}
}
