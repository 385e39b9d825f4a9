package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	caregiverRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/caregiver"
	slotRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/slot"
)

// UseCase use case для создания бронирования
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	clientRepo   ClientRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		clientRepo:   clientRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Резервирование места и вставка бронирования выполняются в одной
// сериализуемой транзакции: два конкурирующих запроса на последнее
// место не могут пройти оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slot=%d, via=%s", req.SlotID, req.CreatedVia)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// Переменная для хранения результата
	var result *domain.Booking

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Проверяем слот: существует и еще не начался
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if !slot.StartAt.After(now) {
			uc.logger.Warn("CreateBooking: slot id=%d already started at %s", slot.ID, slot.StartAt)
			return ErrSlotInPast
		}

		// 2.2. Определяем клиента
		clientID, err := uc.resolveClient(txCtx, req)
		if err != nil {
			return err
		}

		// 2.3. Резервируем место (условный UPDATE, единственная точка
		// принятия решения о вместимости)
		if err := uc.slotRepo.ReserveCapacity(txCtx, req.SlotID); err != nil {
			if errors.Is(err, slotRepo.ErrNoCapacity) {
				uc.logger.Warn("CreateBooking: slot id=%d is full", req.SlotID)
				return ErrSlotUnavailable
			}
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to reserve capacity for slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to reserve capacity: %v", ErrInternal, err)
		}

		// 2.4. Создаем бронирование в статусе pending
		booking := &domain.Booking{
			SlotID:     req.SlotID,
			ClientID:   clientID,
			GuestEmail: req.GuestEmail,
			Status:     domain.StatusPending,
			CreatedBy:  req.CreatedBy,
			CreatedVia: createdVia(req.CreatedVia),
			UUID:       uuid.NewString(),
			Metadata:   buildMetadata(req),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 2.5. Первая запись журнала статусов
		history := &domain.BookingStatusHistory{
			BookingID: created.ID,
			ToStatus:  domain.StatusPending,
			ChangedBy: req.CreatedBy,
			ChangedAt: now,
		}
		if err := uc.bookingRepo.AppendHistory(txCtx, history); err != nil {
			uc.logger.Error("CreateBooking: failed to append history for booking id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to append history: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.RecordBookingCreated(string(result.Status))
	uc.logger.Info("CreateBooking: successfully created booking id=%d uuid=%s", result.ID, result.UUID)

	return &Response{
		ID:         result.ID,
		UUID:       result.UUID,
		SlotID:     result.SlotID,
		ClientID:   result.ClientID,
		GuestEmail: result.GuestEmail,
		Status:     string(result.Status),
		CreatedAt:  result.CreatedAt,
	}, nil
}

// resolveClient определяет клиента бронирования: существующий по ID,
// новый из данных запроса, либо nil для гостевого бронирования по email
func (uc *UseCase) resolveClient(ctx context.Context, req *Request) (*int64, error) {
	switch {
	case req.ClientID != nil:
		client, err := uc.clientRepo.GetClientByID(ctx, *req.ClientID)
		if err != nil {
			if errors.Is(err, caregiverRepo.ErrClientNotFound) {
				uc.logger.Warn("CreateBooking: client id=%d not found", *req.ClientID)
				return nil, ErrClientNotFound
			}
			uc.logger.Error("CreateBooking: failed to get client id=%d: %v", *req.ClientID, err)
			return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
		}
		return &client.ID, nil

	case req.Client != nil:
		client, err := uc.clientRepo.ResolveClientByEmail(ctx, &domain.Client{
			FirstName:          req.Client.FirstName,
			LastName:           req.Client.LastName,
			Email:              req.Client.Email,
			Phone:              req.Client.Phone,
			LanguagePreference: req.Client.Language,
			ConsentVersion:     req.Client.ConsentVersion,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve client by email: %v", err)
			return nil, fmt.Errorf("%w: failed to resolve client: %v", ErrInternal, err)
		}
		return &client.ID, nil

	default:
		// Гостевое бронирование: клиент не создается, контакт хранится
		// в guest_email самого бронирования
		return nil, nil
	}
}

// buildMetadata собирает произвольные атрибуты бронирования
func buildMetadata(req *Request) map[string]string {
	metadata := make(map[string]string)
	if req.Notes != nil && *req.Notes != "" {
		metadata["notes"] = *req.Notes
	}
	if req.CaregiverName != nil && *req.CaregiverName != "" {
		metadata["caregiver_name"] = *req.CaregiverName
	}
	return metadata
}

func createdVia(via string) domain.CreatedVia {
	if via == "" {
		return domain.ViaWeb
	}
	return domain.CreatedVia(via)
}
