package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	bookingRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	history []*domain.BookingStatusHistory
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, cancelledAt *time.Time) error {
	f.booking.Status = status
	f.booking.CancelledAt = cancelledAt
	return nil
}

func (f *fakeBookingRepo) AppendHistory(_ context.Context, entry *domain.BookingStatusHistory) error {
	f.history = append(f.history, entry)
	return nil
}

type fakeSlotRepo struct {
	released int
}

func (f *fakeSlotRepo) ReleaseCapacity(_ context.Context, _ int64) error {
	f.released++
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	changes [][2]string
}

func (f *fakeMetrics) RecordStatusChange(from, to string) {
	f.changes = append(f.changes, [2]string{from, to})
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(status domain.BookingStatus) (*UseCase, *fakeBookingRepo, *fakeSlotRepo) {
	bookings := &fakeBookingRepo{booking: &domain.Booking{ID: 1, SlotID: 10, Status: status}}
	slots := &fakeSlotRepo{}
	uc := NewUseCase(bookings, slots, &fakeTxManager{}, &fakeMetrics{}, nopLogger{})
	return uc, bookings, slots
}

func TestExecute_CancelPendingBooking(t *testing.T) {
	uc, bookings, slots := newTestUseCase(domain.StatusPending)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.FromStatus)
	assert.Equal(t, "cancelled", resp.Status)
	assert.False(t, resp.CancelledAt.IsZero())

	assert.Equal(t, domain.StatusCancelled, bookings.booking.Status)
	require.NotNil(t, bookings.booking.CancelledAt)
	assert.Equal(t, 1, slots.released)

	require.Len(t, bookings.history, 1)
	assert.Equal(t, domain.StatusCancelled, bookings.history[0].ToStatus)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	uc, bookings, slots := newTestUseCase(domain.StatusCancelled)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Empty(t, bookings.history)
	assert.Equal(t, 0, slots.released)
}

func TestExecute_CannotCancelAttended(t *testing.T) {
	uc, _, slots := newTestUseCase(domain.StatusAttended)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1})

	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, 0, slots.released)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _ := newTestUseCase(domain.StatusPending)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}
