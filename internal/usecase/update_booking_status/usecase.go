package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	bookingRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/booking"
)

// UseCase use case для перевода бронирования в новый статус
type UseCase struct {
	bookingRepo         BookingRepository
	slotRepo            SlotRepository
	caregiverRepo       CaregiverRepository
	notificationRepo    NotificationRepository
	txManager           TransactionManager
	metrics             Metrics
	timeProvider        TimeProvider
	logger              Logger
	reminderWindowHours int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	caregiverRepo CaregiverRepository,
	notificationRepo NotificationRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	reminderWindowHours int,
) *UseCase {
	if reminderWindowHours <= 0 {
		reminderWindowHours = domain.DefaultReminderWindowHours
	}
	return &UseCase{
		bookingRepo:         bookingRepo,
		slotRepo:            slotRepo,
		caregiverRepo:       caregiverRepo,
		notificationRepo:    notificationRepo,
		txManager:           txManager,
		metrics:             metrics,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
		reminderWindowHours: reminderWindowHours,
	}
}

// Execute выполняет переход статуса.
// Обновление строки, запись журнала и возврат места в слот (при
// освобождающем переходе) выполняются в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%d, target=%s", req.BookingID, req.Status)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	// 1. Разбираем токен статуса до каких-либо обращений к БД
	target, ok := domain.ParseBookingStatus(req.Status)
	if !ok {
		uc.logger.Warn("UpdateBookingStatus: unknown status token %q", req.Status)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	now := uc.timeProvider.Now()

	var result *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Текущее состояние бронирования
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBookingStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3. Совпадающий статус — информационный исход, в журнал
		// ничего не пишем
		if booking.Status == target {
			uc.logger.Info("UpdateBookingStatus: booking id=%d already %s", booking.ID, target)
			return ErrSameStatus
		}

		// 4. Проверка допустимости перехода по таблице
		if !domain.CanTransition(booking.Status, target) {
			uc.logger.Warn("UpdateBookingStatus: transition %s -> %s not allowed for booking id=%d",
				booking.Status, target, booking.ID)
			return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, booking.Status, target)
		}

		// 5. Обновляем статус; cancelled_at только при отмене
		var cancelledAt *time.Time
		if target == domain.StatusCancelled {
			cancelledAt = &now
		}
		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, target, cancelledAt); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		// 6. Неизменяемая запись журнала
		history := &domain.BookingStatusHistory{
			BookingID:  booking.ID,
			FromStatus: booking.Status,
			ToStatus:   target,
			ChangedBy:  req.ChangedBy,
			ChangedAt:  now,
		}
		if err := uc.bookingRepo.AppendHistory(txCtx, history); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to append history for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to append history: %v", ErrInternal, err)
		}

		// 7. Переход из статуса, удерживающего место, в освобождающий
		// возвращает место слоту
		if booking.HoldsCapacity() && !holdsCapacity(target) {
			if err := uc.slotRepo.ReleaseCapacity(txCtx, booking.SlotID); err != nil {
				uc.logger.Error("UpdateBookingStatus: failed to release capacity for slot id=%d: %v",
					booking.SlotID, err)
				return fmt.Errorf("%w: failed to release capacity: %v", ErrInternal, err)
			}
		}

		// 8. Подтверждение планирует напоминания опекунам
		if target == domain.StatusConfirmed {
			if err := uc.scheduleReminders(txCtx, booking, now); err != nil {
				return err
			}
		}

		result = &Response{
			ID:          booking.ID,
			FromStatus:  string(booking.Status),
			Status:      string(target),
			ChangedAt:   now,
			CancelledAt: cancelledAt,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.RecordStatusChange(result.FromStatus, result.Status)
	uc.logger.Info("UpdateBookingStatus: booking id=%d moved %s -> %s", result.ID, result.FromStatus, result.Status)

	return result, nil
}

// scheduleReminders создает pending-уведомления для каждого профиля
// опекуна, привязанного к клиенту бронирования. Время отправки —
// начало слота минус окно напоминания.
func (uc *UseCase) scheduleReminders(ctx context.Context, booking *domain.Booking, now time.Time) error {
	if booking.ClientID == nil {
		// Гостевое бронирование: профилей опекунов нет
		return nil
	}

	slot, err := uc.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to get slot id=%d: %v", booking.SlotID, err)
		return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	profiles, _, err := uc.caregiverRepo.ListProfilesByClientID(ctx, *booking.ClientID)
	if err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to list caregiver profiles for client id=%d: %v",
			*booking.ClientID, err)
		return fmt.Errorf("%w: failed to list caregiver profiles: %v", ErrInternal, err)
	}

	scheduledFor := slot.StartAt.Add(-time.Duration(uc.reminderWindowHours) * time.Hour)
	if scheduledFor.Before(now) {
		scheduledFor = now
	}

	for _, profile := range profiles {
		channel := reminderChannel(profile)
		notification := &domain.BookingNotification{
			BookingID:          booking.ID,
			CaregiverProfileID: profile.ID,
			Channel:            channel,
			Status:             domain.NotificationPending,
			ScheduledFor:       scheduledFor,
		}
		if _, err := uc.notificationRepo.Create(ctx, notification); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to schedule notification for profile id=%d: %v",
				profile.ID, err)
			return fmt.Errorf("%w: failed to schedule notification: %v", ErrInternal, err)
		}
		uc.metrics.RecordNotificationScheduled(string(channel))
	}

	return nil
}

func reminderChannel(profile *domain.CaregiverProfile) domain.NotificationChannel {
	if profile.PreferredContactMethod == string(domain.ChannelSMS) {
		return domain.ChannelSMS
	}
	return domain.ChannelEmail
}

func holdsCapacity(status domain.BookingStatus) bool {
	return status == domain.StatusPending || status == domain.StatusConfirmed
}
