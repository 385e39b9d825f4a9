package update_booking_status

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
	if f.booking == nil || f.booking.ID != id {
		return bookingRepo.ErrBookingNotFound
	}
	f.booking.Status = status
	if cancelledAt != nil {
		f.booking.CancelledAt = cancelledAt
	}
	return nil
}

func (f *fakeBookingRepo) AppendHistory(_ context.Context, entry *domain.BookingStatusHistory) error {
	f.history = append(f.history, entry)
	return nil
}

type fakeSlotRepo struct {
	slot     *domain.BookingSlot
	released int
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.BookingSlot, error) {
	copied := *f.slot
	return &copied, nil
}

func (f *fakeSlotRepo) ReleaseCapacity(_ context.Context, _ int64) error {
	f.released++
	return nil
}

type fakeCaregiverRepo struct {
	profiles []*domain.CaregiverProfile
}

func (f *fakeCaregiverRepo) ListProfilesByClientID(_ context.Context, _ int64) ([]*domain.CaregiverProfile, []*domain.User, error) {
	users := make([]*domain.User, len(f.profiles))
	return f.profiles, users, nil
}

type fakeNotificationRepo struct {
	created []*domain.BookingNotification
}

func (f *fakeNotificationRepo) Create(_ context.Context, notification *domain.BookingNotification) (*domain.BookingNotification, error) {
	copied := *notification
	copied.ID = int64(len(f.created) + 1)
	f.created = append(f.created, &copied)
	return &copied, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	changes   [][2]string
	scheduled []string
}

func (f *fakeMetrics) RecordStatusChange(from, to string) {
	f.changes = append(f.changes, [2]string{from, to})
}

func (f *fakeMetrics) RecordNotificationScheduled(channel string) {
	f.scheduled = append(f.scheduled, channel)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	bookings      *fakeBookingRepo
	slots         *fakeSlotRepo
	caregivers    *fakeCaregiverRepo
	notifications *fakeNotificationRepo
	metrics       *fakeMetrics
	uc            *UseCase
}

func newFixture(status domain.BookingStatus, clientID *int64) *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{booking: &domain.Booking{
			ID:       1,
			SlotID:   10,
			ClientID: clientID,
			Status:   status,
		}},
		slots: &fakeSlotRepo{slot: &domain.BookingSlot{
			ID:      10,
			StartAt: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2026, 3, 5, 17, 0, 0, 0, time.UTC),
		}},
		caregivers:    &fakeCaregiverRepo{},
		notifications: &fakeNotificationRepo{},
		metrics:       &fakeMetrics{},
	}
	f.uc = NewUseCase(f.bookings, f.slots, f.caregivers, f.notifications, &fakeTxManager{}, f.metrics, nopLogger{}, 24)
	f.uc.timeProvider = fixedTimeProvider{now: testNow}
	return f
}

func TestExecute_AllowedTransition(t *testing.T) {
	f := newFixture(domain.StatusConfirmed, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 1, Status: "attended"})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.FromStatus)
	assert.Equal(t, "attended", resp.Status)
	assert.Nil(t, resp.CancelledAt)

	require.Len(t, f.bookings.history, 1)
	assert.Equal(t, domain.StatusConfirmed, f.bookings.history[0].FromStatus)
	assert.Equal(t, domain.StatusAttended, f.bookings.history[0].ToStatus)

	assert.Equal(t, [][2]string{{"confirmed", "attended"}}, f.metrics.changes)
}

func TestExecute_SameStatusIsInformational(t *testing.T) {
	f := newFixture(domain.StatusConfirmed, nil)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 1, Status: "confirmed"})

	assert.ErrorIs(t, err, ErrSameStatus)
	assert.Empty(t, f.bookings.history)
	assert.Empty(t, f.metrics.changes)
}

func TestExecute_TransitionNotAllowed(t *testing.T) {
	f := newFixture(domain.StatusAttended, nil)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 1, Status: "confirmed"})

	assert.ErrorIs(t, err, ErrTransitionNotAllowed)
	assert.Empty(t, f.bookings.history)
}

func TestExecute_UnknownStatus(t *testing.T) {
	f := newFixture(domain.StatusPending, nil)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 1, Status: "vanished"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture(domain.StatusPending, nil)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 99, Status: "confirmed"})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_CancelStampsTimeAndReleasesCapacity(t *testing.T) {
	f := newFixture(domain.StatusConfirmed, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 1, Status: "cancelled"})

	require.NoError(t, err)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, testNow, *resp.CancelledAt)
	assert.Equal(t, 1, f.slots.released)
}

func TestExecute_NoShowReleasesCapacity(t *testing.T) {
	f := newFixture(domain.StatusPending, nil)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 1, Status: "no_show"})

	require.NoError(t, err)
	assert.Equal(t, 1, f.slots.released)
}

func TestExecute_ArchiveFromCancelledDoesNotRelease(t *testing.T) {
	f := newFixture(domain.StatusCancelled, nil)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 1, Status: "archived"})

	require.NoError(t, err)
	assert.Equal(t, 0, f.slots.released)
}

func TestExecute_ConfirmSchedulesReminders(t *testing.T) {
	clientID := int64(3)
	f := newFixture(domain.StatusPending, &clientID)
	f.caregivers.profiles = []*domain.CaregiverProfile{
		{ID: 1, PreferredContactMethod: "email"},
		{ID: 2, PreferredContactMethod: "sms"},
	}

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 1, Status: "confirmed"})

	require.NoError(t, err)
	require.Len(t, f.notifications.created, 2)

	// Начало слота минус окно напоминания
	expected := f.slots.slot.StartAt.Add(-24 * time.Hour)
	assert.Equal(t, expected, f.notifications.created[0].ScheduledFor)
	assert.Equal(t, domain.ChannelEmail, f.notifications.created[0].Channel)
	assert.Equal(t, domain.ChannelSMS, f.notifications.created[1].Channel)
	assert.Equal(t, domain.NotificationPending, f.notifications.created[0].Status)
	assert.Equal(t, []string{"email", "sms"}, f.metrics.scheduled)
}

func TestExecute_ConfirmGuestBookingSchedulesNothing(t *testing.T) {
	f := newFixture(domain.StatusPending, nil)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 1, Status: "confirmed"})

	require.NoError(t, err)
	assert.Empty(t, f.notifications.created)
}

func TestExecute_ReminderClampedToNow(t *testing.T) {
	clientID := int64(3)
	f := newFixture(domain.StatusPending, &clientID)
	f.caregivers.profiles = []*domain.CaregiverProfile{{ID: 1}}
	// Слот начинается раньше, чем окно напоминания позволяет
	f.slots.slot.StartAt = testNow.Add(2 * time.Hour)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 1, Status: "confirmed"})

	require.NoError(t, err)
	require.Len(t, f.notifications.created, 1)
	assert.Equal(t, testNow, f.notifications.created[0].ScheduledFor)
}
