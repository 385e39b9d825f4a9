package dispatch_notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	bookingRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/booking"
	caregiverRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/caregiver"
	notificationRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/notification"
	slotRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/slot"
	"github.com/nordeim/Elderly-Care-Center/pkg/types"
)

// Settings параметры доставки уведомлений
type Settings struct {
	QuietHoursStart  types.TimeString // Начало окна тишины ("21:00")
	QuietHoursEnd    types.TimeString // Конец окна тишины ("08:00")
	SimulateDelivery bool             // Помечать sent без реальной отправки
}

// UseCase use case доставки одного уведомления.
// Решение принимается лестницей проверок; каждый исход ровно один раз
// записывается в статус уведомления и в счетчики.
type UseCase struct {
	notificationRepo NotificationRepository
	bookingRepo      BookingRepository
	slotRepo         SlotRepository
	caregiverRepo    CaregiverRepository
	email            EmailSender
	sms              SMSSender
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
	settings         Settings
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	notificationRepo NotificationRepository,
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	caregiverRepo CaregiverRepository,
	email EmailSender,
	sms SMSSender,
	metrics Metrics,
	logger Logger,
	settings Settings,
) *UseCase {
	return &UseCase{
		notificationRepo: notificationRepo,
		bookingRepo:      bookingRepo,
		slotRepo:         slotRepo,
		caregiverRepo:    caregiverRepo,
		email:            email,
		sms:              sms,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		settings:         settings,
	}
}

// Execute обрабатывает уведомление.
// Ошибка возвращается только при сбое канала доставки: очередь
// повторит задачу с нарастающим backoff. Все остальные исходы
// терминальны и ошибкой не являются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.NotificationID <= 0 {
		return nil, fmt.Errorf("%w: notificationID must be positive", ErrInvalidInput)
	}

	// 1. Загружаем уведомление; отсутствующая запись — не повод для retry
	notification, err := uc.notificationRepo.GetByID(ctx, req.NotificationID)
	if err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			uc.logger.Warn("DispatchNotification: notification id=%d not found", req.NotificationID)
			return &Response{NotificationID: req.NotificationID, Outcome: OutcomeNoop}, nil
		}
		uc.logger.Error("DispatchNotification: failed to get notification id=%d: %v", req.NotificationID, err)
		return nil, fmt.Errorf("%w: failed to get notification: %v", ErrInternal, err)
	}

	// 2. Терминальный статус: задача доставлена из очереди повторно,
	// ничего не делаем
	if notification.IsTerminal() {
		uc.logger.Info("DispatchNotification: notification id=%d already %s",
			notification.ID, notification.Status)
		return &Response{NotificationID: notification.ID, Outcome: OutcomeNoop}, nil
	}

	channel := string(notification.Channel)
	now := uc.timeProvider.Now()

	// 3. Профиль опекуна и бронирование обязаны существовать;
	// их отсутствие — неустранимый сбой данных, retry бесполезен
	profile, user, booking, slot, loadErr := uc.loadRelated(ctx, notification)
	if loadErr != nil {
		uc.logger.Warn("DispatchNotification: notification id=%d missing related records: %v",
			notification.ID, loadErr)
		uc.markFailed(ctx, notification, map[string]string{
			"reason": domain.ReasonMissingProfileOrBooking,
		})
		return &Response{
			NotificationID: notification.ID,
			Outcome:        OutcomeFailed,
			Reason:         domain.ReasonMissingProfileOrBooking,
		}, nil
	}

	// 4. Окно тишины в таймзоне опекуна
	if inQuietHours(now, profile.Location(), uc.settings.QuietHoursStart, uc.settings.QuietHoursEnd) {
		uc.logger.Info("DispatchNotification: notification id=%d skipped, quiet hours for profile id=%d",
			notification.ID, profile.ID)
		return uc.skip(ctx, notification, domain.ReasonQuietHours)
	}

	// 5. Проверки канала
	switch notification.Channel {
	case domain.ChannelSMS:
		// SMS требует и явного согласия, и номера телефона
		if !profile.SMSOptIn || user.Phone == nil || *user.Phone == "" {
			uc.logger.Info("DispatchNotification: notification id=%d skipped, sms not permitted for profile id=%d",
				notification.ID, profile.ID)
			return uc.skip(ctx, notification, domain.ReasonSMSOptOut)
		}
	case domain.ChannelEmail:
		if user.Email == "" {
			uc.logger.Info("DispatchNotification: notification id=%d skipped, no email for profile id=%d",
				notification.ID, profile.ID)
			return uc.skip(ctx, notification, domain.ReasonMissingEmail)
		}
	}

	// 6. Режим симуляции: помечаем sent без обращения к каналу
	if uc.settings.SimulateDelivery {
		uc.markSent(ctx, notification, map[string]string{
			"sent_at":   now.UTC().Format(time.RFC3339),
			"simulated": "true",
		})
		uc.metrics.RecordNotificationSent(channel)
		uc.logger.Info("DispatchNotification: notification id=%d simulated as sent", notification.ID)
		return &Response{NotificationID: notification.ID, Outcome: OutcomeSent}, nil
	}

	// 7. Реальная доставка
	message := buildMessage(booking, slot, user, profile)
	if err := uc.deliver(ctx, notification.Channel, user, message); err != nil {
		uc.logger.Error("DispatchNotification: delivery failed for notification id=%d: %v",
			notification.ID, err)
		uc.markFailed(ctx, notification, map[string]string{
			"reason": domain.ReasonException,
			"error":  err.Error(),
		})
		uc.metrics.RecordNotificationFailed(channel)
		// Пробрасываем наверх: очередь повторит с backoff
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	uc.markSent(ctx, notification, map[string]string{
		"sent_at": now.UTC().Format(time.RFC3339),
	})
	uc.metrics.RecordNotificationSent(channel)
	uc.logger.Info("DispatchNotification: notification id=%d sent via %s", notification.ID, channel)

	return &Response{NotificationID: notification.ID, Outcome: OutcomeSent}, nil
}

// loadRelated загружает профиль, бронирование и слот уведомления
func (uc *UseCase) loadRelated(ctx context.Context, notification *domain.BookingNotification) (
	*domain.CaregiverProfile, *domain.User, *domain.Booking, *domain.BookingSlot, error,
) {
	profile, user, err := uc.caregiverRepo.GetProfileByID(ctx, notification.CaregiverProfileID)
	if err != nil {
		if errors.Is(err, caregiverRepo.ErrProfileNotFound) {
			return nil, nil, nil, nil, fmt.Errorf("caregiver profile id=%d not found", notification.CaregiverProfileID)
		}
		return nil, nil, nil, nil, err
	}

	booking, err := uc.bookingRepo.GetByID(ctx, notification.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, nil, nil, nil, fmt.Errorf("booking id=%d not found", notification.BookingID)
		}
		return nil, nil, nil, nil, err
	}

	slot, err := uc.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, nil, nil, nil, fmt.Errorf("slot id=%d not found", booking.SlotID)
		}
		return nil, nil, nil, nil, err
	}

	return profile, user, booking, slot, nil
}

func (uc *UseCase) deliver(ctx context.Context, channel domain.NotificationChannel, user *domain.User, message *Message) error {
	switch channel {
	case domain.ChannelSMS:
		return uc.sms.Send(ctx, *user.Phone, message.Body)
	default:
		return uc.email.Send(ctx, user.Email, user.Name, message.Subject, message.Body)
	}
}

// skip помечает уведомление skipped с причиной
func (uc *UseCase) skip(ctx context.Context, notification *domain.BookingNotification, reason string) (*Response, error) {
	meta := mergeMeta(notification.Meta, map[string]string{"reason": reason})
	if err := uc.notificationRepo.UpdateStatus(ctx, notification.ID, domain.NotificationSkipped, meta); err != nil {
		uc.logger.Error("DispatchNotification: failed to mark notification id=%d skipped: %v",
			notification.ID, err)
	}
	uc.metrics.RecordNotificationSkipped(string(notification.Channel))
	return &Response{
		NotificationID: notification.ID,
		Outcome:        OutcomeSkipped,
		Reason:         reason,
	}, nil
}

func (uc *UseCase) markFailed(ctx context.Context, notification *domain.BookingNotification, meta map[string]string) {
	merged := mergeMeta(notification.Meta, meta)
	if err := uc.notificationRepo.UpdateStatus(ctx, notification.ID, domain.NotificationFailed, merged); err != nil {
		uc.logger.Error("DispatchNotification: failed to mark notification id=%d failed: %v",
			notification.ID, err)
	}
	if meta["reason"] == domain.ReasonMissingProfileOrBooking {
		uc.metrics.RecordNotificationFailed(string(notification.Channel))
	}
}

func (uc *UseCase) markSent(ctx context.Context, notification *domain.BookingNotification, meta map[string]string) {
	merged := mergeMeta(notification.Meta, meta)
	if err := uc.notificationRepo.UpdateStatus(ctx, notification.ID, domain.NotificationSent, merged); err != nil {
		uc.logger.Error("DispatchNotification: failed to mark notification id=%d sent: %v",
			notification.ID, err)
	}
}

// buildMessage собирает текст напоминания из бронирования и слота
func buildMessage(booking *domain.Booking, slot *domain.BookingSlot, user *domain.User, profile *domain.CaregiverProfile) *Message {
	startLocal := slot.StartAt.In(profile.Location())
	body := fmt.Sprintf(
		"Hi %s, this is a reminder about the upcoming day-care visit on %s at %s (booking %s).",
		user.Name,
		startLocal.Format("Monday, 2 January"),
		startLocal.Format("15:04"),
		booking.UUID,
	)
	return &Message{
		To:      user.Email,
		Name:    user.Name,
		Subject: "Upcoming visit reminder",
		Body:    body,
		StartAt: slot.StartAt,
	}
}

func mergeMeta(existing, updates map[string]string) map[string]string {
	merged := make(map[string]string, len(existing)+len(updates))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}
	return merged
}
