package create_deposit

import (
	"context"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	"github.com/nordeim/Elderly-Care-Center/internal/integrations/stripeclient"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingSlot, error)
}

// CatalogRepository интерфейс справочника услуг
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetActiveByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
}

// StripeClient интерфейс платежного провайдера
type StripeClient interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*stripeclient.Intent, error)
	GetIntent(ctx context.Context, intentID string) (*stripeclient.Intent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
