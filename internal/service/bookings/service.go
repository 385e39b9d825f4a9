package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	bookingRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/booking"
	caregiverRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/caregiver"
	"github.com/nordeim/Elderly-Care-Center/internal/service/bookings/models"
)

const defaultInboxLimit = 50

// Service сервис чтения бронирований и слотов
type Service struct {
	bookingRepo   BookingRepository
	slotRepo      SlotRepository
	caregiverRepo CaregiverRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	caregiverRepo CaregiverRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		slotRepo:      slotRepo,
		caregiverRepo: caregiverRepo,
		logger:        logger,
	}
}

// GetByID получает бронирование вместе с журналом переходов
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingDetailResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	history, err := s.bookingRepo.ListHistory(ctx, booking.ID)
	if err != nil {
		s.logger.Error("GetByID: failed to list history for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: GetByID - history error: %v", ErrInternal, err)
	}

	return &models.BookingDetailResponse{
		Booking: models.FromDomainBooking(booking),
		History: models.FromDomainHistory(history),
	}, nil
}

// ListInbox получает админский список бронирований с фильтром по
// статусу и распределением по статусам
func (s *Service) ListInbox(ctx context.Context, statusFilter *string, limit, offset uint64) (*models.InboxResponse, error) {
	var status *domain.BookingStatus
	if statusFilter != nil && *statusFilter != "" {
		parsed, ok := domain.ParseBookingStatus(*statusFilter)
		if !ok {
			s.logger.Warn("ListInbox: invalid status filter %q", *statusFilter)
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *statusFilter)
		}
		status = &parsed
	}

	if limit == 0 {
		limit = defaultInboxLimit
	}

	bookings, err := s.bookingRepo.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		s.logger.Error("ListInbox: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListInbox - repository error: %v", ErrInternal, err)
	}

	counts, err := s.bookingRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("ListInbox: failed to count by status: %v", err)
		return nil, fmt.Errorf("%w: ListInbox - count error: %v", ErrInternal, err)
	}

	countsByToken := make(map[string]int64, len(counts))
	for token, total := range counts {
		countsByToken[string(token)] = total
	}

	return &models.InboxResponse{
		Bookings: models.FromDomainBookings(bookings),
		Counts:   countsByToken,
	}, nil
}

// GetCaregiverBookings получает бронирования клиента, привязанного
// к профилю опекуна пользователя
func (s *Service) GetCaregiverBookings(ctx context.Context, userID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetCaregiverBookings: fetching bookings for user=%d", userID)

	profile, _, err := s.caregiverRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, caregiverRepo.ErrProfileNotFound) {
			s.logger.Warn("GetCaregiverBookings: no profile for user=%d", userID)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("GetCaregiverBookings: failed to get profile for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetCaregiverBookings - profile error: %v", ErrInternal, err)
	}

	if profile.ClientID == nil {
		// Профиль есть, но подопечный еще не привязан
		return &models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil
	}

	bookings, err := s.bookingRepo.ListByClientID(ctx, *profile.ClientID)
	if err != nil {
		s.logger.Error("GetCaregiverBookings: repository error for client=%d: %v", *profile.ClientID, err)
		return nil, fmt.Errorf("%w: GetCaregiverBookings - repository error: %v", ErrInternal, err)
	}

	return &models.BookingListResponse{Bookings: models.FromDomainBookings(bookings)}, nil
}

// ListUpcomingSlots получает ближайшие слоты с доступностью
func (s *Service) ListUpcomingSlots(ctx context.Context, from time.Time, limit uint64) (*models.SlotListResponse, error) {
	if limit == 0 {
		limit = defaultInboxLimit
	}

	slots, err := s.slotRepo.ListUpcoming(ctx, from, limit)
	if err != nil {
		s.logger.Error("ListUpcomingSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUpcomingSlots - repository error: %v", ErrInternal, err)
	}

	return &models.SlotListResponse{Slots: models.FromDomainSlots(slots)}, nil
}
