package stripe_webhook

import (
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/nordeim/Elderly-Care-Center/internal/api/handlers"
)

const (
	msgInvalidPayload   = "некорректное тело вебхука"
	msgInvalidSignature = "некорректная подпись вебхука"
)

// Стандартный лимит Stripe на размер тела вебхука
const maxBodyBytes = int64(65536)

type Handler struct {
	service       PaymentService
	signingSecret string
	logger        Logger
}

func NewHandler(service PaymentService, signingSecret string, logger Logger) *Handler {
	return &Handler{
		service:       service,
		signingSecret: signingSecret,
		logger:        logger,
	}
}

// Handle POST /api/v1/payments/webhook
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	// До проверки подписи тело не интерпретируется и никаких
	// изменений состояния не происходит
	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.signingSecret)
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Signature verification failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSignature)
		return
	}

	if err := h.service.ApplyEvent(r.Context(), event); err != nil {
		// Stripe повторит доставку по не-2xx ответу
		h.logger.Error("POST /payments/webhook - Failed to apply event %s: %v", event.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /payments/webhook - Event applied: id=%s, type=%s", event.ID, event.Type)
	w.WriteHeader(http.StatusOK)
}
