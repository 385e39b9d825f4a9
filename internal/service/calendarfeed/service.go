package calendarfeed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/calendar"
	caregiverRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/caregiver"
	catalogRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/catalog"
)

// Service собирает iCalendar ленту визитов для опекуна
type Service struct {
	bookingRepo   BookingRepository
	slotRepo      SlotRepository
	caregiverRepo CaregiverRepository
	catalogRepo   CatalogRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	caregiverRepo CaregiverRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		slotRepo:      slotRepo,
		caregiverRepo: caregiverRepo,
		catalogRepo:   catalogRepo,
		logger:        logger,
	}
}

// ExportForUser собирает .ics документ с активными бронированиями
// клиента, привязанного к профилю опекуна пользователя
func (s *Service) ExportForUser(ctx context.Context, userID int64, now time.Time) (string, error) {
	profile, _, err := s.caregiverRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, caregiverRepo.ErrProfileNotFound) {
			s.logger.Warn("ExportForUser: no profile for user=%d", userID)
			return "", ErrProfileNotFound
		}
		s.logger.Error("ExportForUser: failed to get profile for user=%d: %v", userID, err)
		return "", fmt.Errorf("%w: ExportForUser - profile error: %v", ErrInternal, err)
	}

	if profile.ClientID == nil {
		// Профиль без подопечного: пустой, но валидный календарь
		return calendar.Generate(nil, now), nil
	}

	bookings, err := s.bookingRepo.ListByClientID(ctx, *profile.ClientID)
	if err != nil {
		s.logger.Error("ExportForUser: failed to list bookings for client=%d: %v", *profile.ClientID, err)
		return "", fmt.Errorf("%w: ExportForUser - bookings error: %v", ErrInternal, err)
	}

	location := profile.Location()
	events := make([]calendar.Event, 0, len(bookings))

	for _, booking := range bookings {
		// В ленту попадают только бронирования, удерживающие место
		if !booking.HoldsCapacity() {
			continue
		}

		slot, err := s.slotRepo.GetByID(ctx, booking.SlotID)
		if err != nil {
			s.logger.Error("ExportForUser: failed to get slot id=%d: %v", booking.SlotID, err)
			return "", fmt.Errorf("%w: ExportForUser - slot error: %v", ErrInternal, err)
		}

		events = append(events, calendar.Event{
			UID:         fmt.Sprintf("%s@elderly-daycare", booking.UUID),
			Start:       slot.StartAt.In(location),
			End:         slot.EndAt.In(location),
			Timezone:    location.String(),
			Summary:     s.eventSummary(ctx, slot.ServiceID),
			Description: fmt.Sprintf("Booking %s (%s)", booking.UUID, booking.Status),
			Location:    s.eventLocation(ctx, slot.FacilityID),
		})
	}

	s.logger.Info("ExportForUser: exported %d events for user=%d", len(events), userID)
	return calendar.Generate(events, now), nil
}

// eventSummary возвращает название услуги; недостающая запись
// каталога не срывает экспорт
func (s *Service) eventSummary(ctx context.Context, serviceID int64) string {
	service, err := s.catalogRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		if !errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("eventSummary: failed to get service id=%d: %v", serviceID, err)
		}
		return "Day care visit"
	}
	return service.Name
}

func (s *Service) eventLocation(ctx context.Context, facilityID int64) string {
	facility, err := s.catalogRepo.GetFacilityByID(ctx, facilityID)
	if err != nil {
		if !errors.Is(err, catalogRepo.ErrFacilityNotFound) {
			s.logger.Warn("eventLocation: failed to get facility id=%d: %v", facilityID, err)
		}
		return ""
	}
	return fmt.Sprintf("%s, %s, %s", facility.Name, facility.Street, facility.City)
}
