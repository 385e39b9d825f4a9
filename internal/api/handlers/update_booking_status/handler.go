package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nordeim/Elderly-Care-Center/internal/api/handlers"
	"github.com/nordeim/Elderly-Care-Center/internal/api/middleware"
	updateBookingStatus "github.com/nordeim/Elderly-Care-Center/internal/usecase/update_booking_status"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgBookingNotFound      = "бронирование не найдено"
	msgUnknownStatus        = "неизвестный статус"
	msgSameStatus           = "бронирование уже находится в этом статусе"
	msgTransitionNotAllowed = "переход в этот статус недопустим"
)

type Handler struct {
	useCase UpdateBookingStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/bookings/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var changedBy *int64
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		changedBy = &userID
	}

	result, err := h.useCase.Execute(r.Context(), &updateBookingStatus.Request{
		BookingID: bookingID,
		Status:    req.Status,
		ChangedBy: changedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, updateBookingStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBookingStatus.ErrInvalidStatus):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Unknown status: booking_id=%d, status=%s", bookingID, req.Status)
			handlers.RespondBadRequest(w, msgUnknownStatus)

		case errors.Is(err, updateBookingStatus.ErrSameStatus):
			// Информационный исход: состояние не менялось
			h.logger.Info("PATCH /admin/bookings/{id}/status - Already in status: booking_id=%d, status=%s", bookingID, req.Status)
			handlers.RespondJSON(w, http.StatusOK, handlers.NoticeResponse{Notice: msgSameStatus})

		case errors.Is(err, updateBookingStatus.ErrTransitionNotAllowed):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Transition not allowed: booking_id=%d, status=%s", bookingID, req.Status)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgTransitionNotAllowed)

		default:
			h.logger.Error("PATCH /admin/bookings/{id}/status - Internal error: booking_id=%d: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/status - Status changed: booking_id=%d, %s -> %s", bookingID, result.FromStatus, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
