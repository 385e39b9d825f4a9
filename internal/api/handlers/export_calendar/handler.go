package export_calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/api/handlers"
	"github.com/nordeim/Elderly-Care-Center/internal/api/middleware"
	"github.com/nordeim/Elderly-Care-Center/internal/service/calendarfeed"
)

const (
	msgUnauthorized    = "требуется аутентификация"
	msgProfileNotFound = "профиль опекуна не найден"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/caregivers/me/calendar.ics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /caregivers/me/calendar.ics - Missing user in context")
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	document, err := h.service.ExportForUser(r.Context(), userID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, calendarfeed.ErrProfileNotFound):
			h.logger.Warn("GET /caregivers/me/calendar.ics - Profile not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		default:
			h.logger.Error("GET /caregivers/me/calendar.ics - Internal error: user_id=%d: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(document))
}
