package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/nordeim/Elderly-Care-Center/internal/api/handlers"
	"github.com/nordeim/Elderly-Care-Center/internal/api/middleware"
	cancelBooking "github.com/nordeim/Elderly-Care-Center/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgAlreadyCancelled = "бронирование уже отменено"
	msgCannotCancel     = "бронирование нельзя отменить из текущего статуса"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// CancelBookingResponse HTTP модель ответа об отмене
type CancelBookingResponse struct {
	ID          int64     `json:"id"`
	FromStatus  string    `json:"fromStatus"`
	Status      string    `json:"status"`
	CancelledAt time.Time `json:"cancelledAt"`
}

// Handle POST /api/v1/bookings/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var cancelledBy *int64
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		cancelledBy = &userID
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		BookingID:   bookingID,
		CancelledBy: cancelledBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, cancelBooking.ErrAlreadyCancelled):
			// Повторная отмена не считается ошибкой состояния
			h.logger.Info("POST /bookings/{id}/cancel - Already cancelled: booking_id=%d", bookingID)
			handlers.RespondJSON(w, http.StatusOK, handlers.NoticeResponse{Notice: msgAlreadyCancelled})

		case errors.Is(err, cancelBooking.ErrCannotCancel):
			h.logger.Warn("POST /bookings/{id}/cancel - Cannot cancel: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCannotCancel)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Internal error: booking_id=%d: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled: booking_id=%d, from=%s", bookingID, result.FromStatus)
	handlers.RespondJSON(w, http.StatusOK, &CancelBookingResponse{
		ID:          result.ID,
		FromStatus:  result.FromStatus,
		Status:      result.Status,
		CancelledAt: result.CancelledAt,
	})
}
