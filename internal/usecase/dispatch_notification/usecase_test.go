package dispatch_notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	caregiverRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/caregiver"
	notificationRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/notification"
)

type fakeNotificationRepo struct {
	notification *domain.BookingNotification
	statuses     []domain.NotificationStatus
	lastMeta     map[string]string
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id int64) (*domain.BookingNotification, error) {
	if f.notification == nil || f.notification.ID != id {
		return nil, notificationRepo.ErrNotificationNotFound
	}
	copied := *f.notification
	return &copied, nil
}

func (f *fakeNotificationRepo) UpdateStatus(_ context.Context, _ int64, status domain.NotificationStatus, meta map[string]string) error {
	f.statuses = append(f.statuses, status)
	f.lastMeta = meta
	return nil
}

type fakeBookingRepo struct {
	booking *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	copied := *f.booking
	return &copied, nil
}

type fakeSlotRepo struct {
	slot *domain.BookingSlot
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.BookingSlot, error) {
	copied := *f.slot
	return &copied, nil
}

type fakeCaregiverRepo struct {
	profile *domain.CaregiverProfile
	user    *domain.User
}

func (f *fakeCaregiverRepo) GetProfileByID(_ context.Context, _ int64) (*domain.CaregiverProfile, *domain.User, error) {
	if f.profile == nil {
		return nil, nil, caregiverRepo.ErrProfileNotFound
	}
	return f.profile, f.user, nil
}

type fakeEmailSender struct {
	sent []string
	err  error
}

func (f *fakeEmailSender) Send(_ context.Context, to, _, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeSMSSender struct {
	sent []string
	err  error
}

func (f *fakeSMSSender) Send(_ context.Context, phone, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, phone)
	return nil
}

type fakeMetrics struct {
	sent, failed, skipped []string
}

func (f *fakeMetrics) RecordNotificationSent(channel string)    { f.sent = append(f.sent, channel) }
func (f *fakeMetrics) RecordNotificationFailed(channel string)  { f.failed = append(f.failed, channel) }
func (f *fakeMetrics) RecordNotificationSkipped(channel string) { f.skipped = append(f.skipped, channel) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

// Полдень UTC: вне окна тишины 21:00-08:00
var noonUTC = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	notifications *fakeNotificationRepo
	caregivers    *fakeCaregiverRepo
	email         *fakeEmailSender
	sms           *fakeSMSSender
	metrics       *fakeMetrics
	uc            *UseCase
}

func newFixture(channel domain.NotificationChannel, settings Settings) *fixture {
	phone := "+15550001111"
	f := &fixture{
		notifications: &fakeNotificationRepo{notification: &domain.BookingNotification{
			ID:                 1,
			BookingID:          2,
			CaregiverProfileID: 3,
			Channel:            channel,
			Status:             domain.NotificationPending,
			ScheduledFor:       noonUTC,
		}},
		caregivers: &fakeCaregiverRepo{
			profile: &domain.CaregiverProfile{ID: 3, Timezone: "UTC", SMSOptIn: true},
			user:    &domain.User{ID: 4, Name: "Anna", Email: "anna@example.com", Phone: &phone},
		},
		email:   &fakeEmailSender{},
		sms:     &fakeSMSSender{},
		metrics: &fakeMetrics{},
	}
	bookings := &fakeBookingRepo{booking: &domain.Booking{ID: 2, SlotID: 5, UUID: "b-uuid", Status: domain.StatusConfirmed}}
	slots := &fakeSlotRepo{slot: &domain.BookingSlot{
		ID:      5,
		StartAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
	}}
	f.uc = NewUseCase(f.notifications, bookings, slots, f.caregivers, f.email, f.sms, f.metrics, nopLogger{}, settings)
	f.uc.timeProvider = fixedTimeProvider{now: noonUTC}
	return f
}

func defaultSettings() Settings {
	return Settings{QuietHoursStart: "21:00", QuietHoursEnd: "08:00"}
}

func TestExecute_SendsEmail(t *testing.T) {
	f := newFixture(domain.ChannelEmail, defaultSettings())

	resp, err := f.uc.Execute(context.Background(), &Request{NotificationID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSent, resp.Outcome)
	assert.Equal(t, []string{"anna@example.com"}, f.email.sent)
	assert.Equal(t, []domain.NotificationStatus{domain.NotificationSent}, f.notifications.statuses)
	assert.Contains(t, f.notifications.lastMeta, "sent_at")
	assert.Equal(t, []string{"email"}, f.metrics.sent)
}

func TestExecute_SendsSMS(t *testing.T) {
	f := newFixture(domain.ChannelSMS, defaultSettings())

	resp, err := f.uc.Execute(context.Background(), &Request{NotificationID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSent, resp.Outcome)
	assert.Equal(t, []string{"+15550001111"}, f.sms.sent)
}

func TestExecute_MissingNotificationIsNoop(t *testing.T) {
	f := newFixture(domain.ChannelEmail, defaultSettings())

	resp, err := f.uc.Execute(context.Background(), &Request{NotificationID: 99})

	require.NoError(t, err)
	assert.Equal(t, OutcomeNoop, resp.Outcome)
	assert.Empty(t, f.notifications.statuses)
}

func TestExecute_TerminalStatusIsNoop(t *testing.T) {
	f := newFixture(domain.ChannelEmail, defaultSettings())
	f.notifications.notification.Status = domain.NotificationSent

	resp, err := f.uc.Execute(context.Background(), &Request{NotificationID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeNoop, resp.Outcome)
	assert.Empty(t, f.email.sent)
}

func TestExecute_QuietHoursSkips(t *testing.T) {
	f := newFixture(domain.ChannelEmail, defaultSettings())
	// 23:00 по таймзоне профиля — внутри окна 21:00-08:00
	f.uc.timeProvider = fixedTimeProvider{now: time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)}

	resp, err := f.uc.Execute(context.Background(), &Request{NotificationID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, resp.Outcome)
	assert.Equal(t, domain.ReasonQuietHours, resp.Reason)
	assert.Equal(t, []domain.NotificationStatus{domain.NotificationSkipped}, f.notifications.statuses)
	assert.Equal(t, domain.ReasonQuietHours, f.notifications.lastMeta["reason"])
	assert.Equal(t, []string{"email"}, f.metrics.skipped)
	assert.Empty(t, f.email.sent)
}

func TestExecute_SMSOptOutSkips(t *testing.T) {
	f := newFixture(domain.ChannelSMS, defaultSettings())
	f.caregivers.profile.SMSOptIn = false

	resp, err := f.uc.Execute(context.Background(), &Request{NotificationID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, resp.Outcome)
	assert.Equal(t, domain.ReasonSMSOptOut, resp.Reason)
	assert.Empty(t, f.sms.sent)
}

func TestExecute_SMSWithoutPhoneSkips(t *testing.T) {
	f := newFixture(domain.ChannelSMS, defaultSettings())
	f.caregivers.user.Phone = nil

	resp, err := f.uc.Execute(context.Background(), &Request{NotificationID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, resp.Outcome)
	assert.Equal(t, domain.ReasonSMSOptOut, resp.Reason)
}

func TestExecute_MissingEmailSkips(t *testing.T) {
	f := newFixture(domain.ChannelEmail, defaultSettings())
	f.caregivers.user.Email = ""

	resp, err := f.uc.Execute(context.Background(), &Request{NotificationID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, resp.Outcome)
	assert.Equal(t, domain.ReasonMissingEmail, resp.Reason)
}

func TestExecute_MissingProfileFails(t *testing.T) {
	f := newFixture(domain.ChannelEmail, defaultSettings())
	f.caregivers.profile = nil

	resp, err := f.uc.Execute(context.Background(), &Request{NotificationID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, resp.Outcome)
	assert.Equal(t, domain.ReasonMissingProfileOrBooking, resp.Reason)
	assert.Equal(t, []domain.NotificationStatus{domain.NotificationFailed}, f.notifications.statuses)
	assert.Equal(t, []string{"email"}, f.metrics.failed)
}

// Сбой канала пробрасывается наверх: очередь повторит с backoff
func TestExecute_DeliveryFailureReturnsError(t *testing.T) {
	f := newFixture(domain.ChannelEmail, defaultSettings())
	f.email.err = errors.New("smtp connection refused")

	_, err := f.uc.Execute(context.Background(), &Request{NotificationID: 1})

	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.Equal(t, []domain.NotificationStatus{domain.NotificationFailed}, f.notifications.statuses)
	assert.Equal(t, domain.ReasonException, f.notifications.lastMeta["reason"])
	assert.Equal(t, "smtp connection refused", f.notifications.lastMeta["error"])
	assert.Equal(t, []string{"email"}, f.metrics.failed)
}

func TestExecute_SimulatedDelivery(t *testing.T) {
	settings := defaultSettings()
	settings.SimulateDelivery = true
	f := newFixture(domain.ChannelEmail, settings)

	resp, err := f.uc.Execute(context.Background(), &Request{NotificationID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSent, resp.Outcome)
	assert.Empty(t, f.email.sent)
	assert.Equal(t, "true", f.notifications.lastMeta["simulated"])
	assert.Equal(t, []string{"email"}, f.metrics.sent)
}
