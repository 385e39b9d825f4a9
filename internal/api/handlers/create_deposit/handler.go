package create_deposit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nordeim/Elderly-Care-Center/internal/api/handlers"
	createDeposit "github.com/nordeim/Elderly-Care-Center/internal/usecase/create_deposit"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgBookingNotFound   = "бронирование не найдено"
	msgBookingNotPayable = "бронирование нельзя оплатить в текущем статусе"
)

type Handler struct {
	useCase CreateDepositUseCase
	logger  Logger
}

func NewHandler(useCase CreateDepositUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// CreateDepositResponse HTTP модель ответа с данными для оплаты
type CreateDepositResponse struct {
	PaymentID    int64  `json:"paymentId"`
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
	AmountCents  int64  `json:"amountCents"`
	Currency     string `json:"currency"`
	Reused       bool   `json:"reused"`
}

// Handle POST /api/v1/bookings/{id}/deposit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/deposit - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createDeposit.Request{BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, createDeposit.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/deposit - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, createDeposit.ErrBookingNotPayable):
			h.logger.Warn("POST /bookings/{id}/deposit - Booking not payable: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgBookingNotPayable)

		default:
			h.logger.Error("POST /bookings/{id}/deposit - Internal error: booking_id=%d: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Reused {
		status = http.StatusOK
	}

	h.logger.Info("POST /bookings/{id}/deposit - Intent ready: booking_id=%d, intent=%s, reused=%t", bookingID, result.IntentID, result.Reused)
	handlers.RespondJSON(w, status, &CreateDepositResponse{
		PaymentID:    result.PaymentID,
		IntentID:     result.IntentID,
		ClientSecret: result.ClientSecret,
		AmountCents:  result.AmountCents,
		Currency:     result.Currency,
		Reused:       result.Reused,
	})
}
