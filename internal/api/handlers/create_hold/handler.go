package create_hold

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/nordeim/Elderly-Care-Center/internal/api/handlers"
	"github.com/nordeim/Elderly-Care-Center/internal/api/middleware"
	createHold "github.com/nordeim/Elderly-Care-Center/internal/usecase/create_hold"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные удержания"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "в выбранном слоте не осталось мест"
	msgSlotInPast         = "выбранный слот уже прошел"
)

type Handler struct {
	useCase CreateHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// CreateHoldRequest HTTP модель запроса на удержание места
type CreateHoldRequest struct {
	ClientID   *int64  `json:"clientId,omitempty"`
	GuestEmail *string `json:"guestEmail,omitempty"`
}

// CreateHoldResponse HTTP модель ответа с созданным удержанием
type CreateHoldResponse struct {
	ID        int64     `json:"id"`
	SlotID    int64     `json:"slotId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Handle POST /api/v1/slots/{slotId}/hold
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{slotId}/hold - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req CreateHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{slotId}/hold - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var reservedBy *int64
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		reservedBy = &userID
	}

	result, err := h.useCase.Execute(r.Context(), &createHold.Request{
		SlotID:              slotID,
		ReservedByUserID:    reservedBy,
		ReservedForClientID: req.ClientID,
		GuestEmail:          req.GuestEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, createHold.ErrInvalidInput):
			h.logger.Warn("POST /slots/{slotId}/hold - Invalid input: slot_id=%d: %v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createHold.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{slotId}/hold - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createHold.ErrSlotUnavailable):
			h.logger.Warn("POST /slots/{slotId}/hold - Slot unavailable: slot_id=%d", slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, createHold.ErrSlotInPast):
			h.logger.Warn("POST /slots/{slotId}/hold - Slot in past: slot_id=%d", slotID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		default:
			h.logger.Error("POST /slots/{slotId}/hold - Internal error: slot_id=%d: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{slotId}/hold - Hold created: id=%d, slot_id=%d, expires_at=%s", result.ID, result.SlotID, result.ExpiresAt)
	handlers.RespondJSON(w, http.StatusCreated, &CreateHoldResponse{
		ID:        result.ID,
		SlotID:    result.SlotID,
		ExpiresAt: result.ExpiresAt,
	})
}
