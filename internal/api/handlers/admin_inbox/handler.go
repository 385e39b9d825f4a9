package admin_inbox

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nordeim/Elderly-Care-Center/internal/api/handlers"
	"github.com/nordeim/Elderly-Care-Center/internal/service/bookings"
)

const (
	msgInvalidStatusFilter = "неизвестный статус в фильтре"
	msgInvalidPagination   = "некорректные параметры пагинации"
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

// Handle GET /api/v1/admin/bookings?status=&limit=&offset=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var statusFilter *string
	if status := query.Get("status"); status != "" {
		statusFilter = &status
	}

	limit, err := parseUintParam(query.Get("limit"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}

	offset, err := parseUintParam(query.Get("offset"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid offset: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}

	result, err := h.service.ListInbox(r.Context(), statusFilter, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatusFilter)

		default:
			h.logger.Error("GET /admin/bookings - Internal error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseUintParam(raw string) (uint64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseUint(raw, 10, 64)
}
