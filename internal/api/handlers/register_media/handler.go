package register_media

import (
	"errors"
	"net/http"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/api/handlers"
	"github.com/nordeim/Elderly-Care-Center/internal/api/middleware"
	registerMedia "github.com/nordeim/Elderly-Care-Center/internal/usecase/register_media"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные медиа-файла"
)

type Handler struct {
	useCase RegisterMediaUseCase
	logger  Logger
}

func NewHandler(useCase RegisterMediaUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// RegisterMediaRequest HTTP модель запроса на регистрацию медиа
type RegisterMediaRequest struct {
	OwnerKind string `json:"ownerKind"`
	OwnerID   int64  `json:"ownerId"`
	Title     string `json:"title"`
	FileURL   string `json:"fileUrl"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
}

// RegisterMediaResponse HTTP модель ответа
type RegisterMediaResponse struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Handle POST /api/v1/admin/media
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterMediaRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/media - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var uploadedBy *int64
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		uploadedBy = &userID
	}

	result, err := h.useCase.Execute(r.Context(), &registerMedia.Request{
		OwnerKind:  req.OwnerKind,
		OwnerID:    req.OwnerID,
		Title:      req.Title,
		FileURL:    req.FileURL,
		MimeType:   req.MimeType,
		SizeBytes:  req.SizeBytes,
		UploadedBy: uploadedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, registerMedia.ErrInvalidInput):
			h.logger.Warn("POST /admin/media - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/media - Internal error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/media - Media registered: id=%d, uuid=%s", result.ID, result.UUID)
	handlers.RespondJSON(w, http.StatusCreated, &RegisterMediaResponse{
		ID:        result.ID,
		UUID:      result.UUID,
		Status:    result.Status,
		CreatedAt: result.CreatedAt,
	})
}
