package get_upcoming_slots

import (
	"net/http"
	"strconv"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/api/handlers"
)

const (
	msgInvalidLimit = "некорректный параметр limit"
	msgInvalidFrom  = "некорректный параметр from, ожидается RFC3339"
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

// Handle GET /api/v1/slots/upcoming?from=&limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from := time.Now()
	if raw := query.Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /slots/upcoming - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = parsed
	}

	var limit uint64
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /slots/upcoming - Invalid limit: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	result, err := h.service.ListUpcomingSlots(r.Context(), from, limit)
	if err != nil {
		h.logger.Error("GET /slots/upcoming - Internal error: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
