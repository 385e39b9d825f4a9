package create_booking

import (
	"time"

	createBooking "github.com/nordeim/Elderly-Care-Center/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP модель запроса на создание бронирования
type CreateBookingRequest struct {
	SlotID        int64        `json:"slotId"`
	GuestEmail    *string      `json:"guestEmail,omitempty"`
	Client        *ClientInput `json:"client,omitempty"`
	ClientID      *int64       `json:"clientId,omitempty"`
	CaregiverName *string      `json:"caregiverName,omitempty"`
	Notes         *string      `json:"notes,omitempty"`
}

// ClientInput данные нового клиента
type ClientInput struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	Language       string  `json:"language,omitempty"`
	ConsentVersion *string `json:"consentVersion,omitempty"`
}

// CreateBookingResponse HTTP модель ответа с созданным бронированием
type CreateBookingResponse struct {
	ID         int64     `json:"id"`
	UUID       string    `json:"uuid"`
	SlotID     int64     `json:"slotId"`
	ClientID   *int64    `json:"clientId,omitempty"`
	GuestEmail *string   `json:"guestEmail,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(createdBy *int64, createdVia string) *createBooking.Request {
	req := &createBooking.Request{
		SlotID:        r.SlotID,
		GuestEmail:    r.GuestEmail,
		ClientID:      r.ClientID,
		CaregiverName: r.CaregiverName,
		Notes:         r.Notes,
		CreatedBy:     createdBy,
		CreatedVia:    createdVia,
	}
	if r.Client != nil {
		req.Client = &createBooking.ClientInput{
			FirstName:      r.Client.FirstName,
			LastName:       r.Client.LastName,
			Email:          r.Client.Email,
			Phone:          r.Client.Phone,
			Language:       r.Client.Language,
			ConsentVersion: r.Client.ConsentVersion,
		}
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:         resp.ID,
		UUID:       resp.UUID,
		SlotID:     resp.SlotID,
		ClientID:   resp.ClientID,
		GuestEmail: resp.GuestEmail,
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt,
	}
}
