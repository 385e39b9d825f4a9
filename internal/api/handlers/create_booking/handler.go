package create_booking

import (
	"errors"
	"net/http"

	"github.com/nordeim/Elderly-Care-Center/internal/api/handlers"
	"github.com/nordeim/Elderly-Care-Center/internal/api/middleware"
	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	createBooking "github.com/nordeim/Elderly-Care-Center/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "в выбранном слоте не осталось мест"
	msgSlotInPast         = "выбранный слот уже прошел"
	msgClientNotFound     = "клиент не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Аутентифицированный пользователь создает бронирование от своего имени
	var createdBy *int64
	createdVia := string(domain.ViaWeb)
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		createdBy = &userID
		createdVia = string(domain.ViaAdmin)
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(createdBy, createdVia))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: slot_id=%d: %v", req.SlotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: slot_id=%d", req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in past: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrClientNotFound):
			h.logger.Warn("POST /bookings - Client not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgClientNotFound)

		default:
			h.logger.Error("POST /bookings - Internal error: slot_id=%d: %v", req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: id=%d, uuid=%s, slot_id=%d", result.ID, result.UUID, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
