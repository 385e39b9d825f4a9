package get_caregiver_bookings

import (
	"errors"
	"net/http"

	"github.com/nordeim/Elderly-Care-Center/internal/api/handlers"
	"github.com/nordeim/Elderly-Care-Center/internal/api/middleware"
	"github.com/nordeim/Elderly-Care-Center/internal/service/bookings"
)

const (
	msgUnauthorized    = "требуется аутентификация"
	msgProfileNotFound = "профиль опекуна не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/caregivers/me/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /caregivers/me/bookings - Missing user in context")
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	result, err := h.service.GetCaregiverBookings(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrProfileNotFound):
			h.logger.Warn("GET /caregivers/me/bookings - Profile not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		default:
			h.logger.Error("GET /caregivers/me/bookings - Internal error: user_id=%d: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
