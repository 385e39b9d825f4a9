package health

import (
	"context"
	"net/http"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/api/handlers"
)

const msgDatabaseUnavailable = "база данных недоступна"

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Error(format string, v ...interface{})
}

type Handler struct {
	db     Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

// HealthResponse HTTP модель ответа проверки живости
type HealthResponse struct {
	Status string `json:"status"`
}

// Handle GET /healthz
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("GET /healthz - Database ping failed: %v", err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgDatabaseUnavailable)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
