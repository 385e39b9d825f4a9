package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	caregiverRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/caregiver"
	slotRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/slot"
)

type fakeSlotRepo struct {
	mu        sync.Mutex
	slot      *domain.BookingSlot
	available int
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.BookingSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slot == nil || f.slot.ID != id {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *f.slot
	copied.AvailableCount = f.available
	return &copied, nil
}

func (f *fakeSlotRepo) ReserveCapacity(_ context.Context, slotID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slot == nil || f.slot.ID != slotID {
		return slotRepo.ErrSlotNotFound
	}
	if f.available <= 0 {
		return slotRepo.ErrNoCapacity
	}
	f.available--
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
	history  []*domain.BookingStatusHistory
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeBookingRepo) AppendHistory(_ context.Context, entry *domain.BookingStatusHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, entry)
	return nil
}

type fakeClientRepo struct {
	clients map[int64]*domain.Client
}

func (f *fakeClientRepo) GetClientByID(_ context.Context, id int64) (*domain.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, caregiverRepo.ErrClientNotFound
	}
	return client, nil
}

func (f *fakeClientRepo) ResolveClientByEmail(_ context.Context, input *domain.Client) (*domain.Client, error) {
	resolved := *input
	resolved.ID = 42
	return &resolved, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	mu      sync.Mutex
	created []string
}

func (f *fakeMetrics) RecordBookingCreated(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, status)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

func newTestUseCase(slots *fakeSlotRepo, bookings *fakeBookingRepo, clients *fakeClientRepo, metrics *fakeMetrics) *UseCase {
	uc := NewUseCase(slots, bookings, clients, &fakeTxManager{}, metrics, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	return uc
}

func futureSlot(id int64, available int) *fakeSlotRepo {
	return &fakeSlotRepo{
		slot: &domain.BookingSlot{
			ID:        id,
			ServiceID: 1,
			StartAt:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			EndAt:     time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
			Capacity:  10,
		},
		available: available,
	}
}

func guestRequest(slotID int64) *Request {
	email := "guest@example.com"
	return &Request{SlotID: slotID, GuestEmail: &email, CreatedVia: "web"}
}

func TestExecute_GuestBooking(t *testing.T) {
	slots := futureSlot(1, 3)
	bookings := &fakeBookingRepo{}
	metrics := &fakeMetrics{}
	uc := newTestUseCase(slots, bookings, &fakeClientRepo{}, metrics)

	resp, err := uc.Execute(context.Background(), guestRequest(1))

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Nil(t, resp.ClientID)
	assert.NotEmpty(t, resp.UUID)
	assert.Equal(t, 2, slots.available)

	require.Len(t, bookings.history, 1)
	assert.Equal(t, domain.StatusPending, bookings.history[0].ToStatus)
	assert.Empty(t, bookings.history[0].FromStatus)

	assert.Equal(t, []string{"pending"}, metrics.created)
}

func TestExecute_ExistingClient(t *testing.T) {
	clientID := int64(5)
	slots := futureSlot(1, 3)
	clients := &fakeClientRepo{clients: map[int64]*domain.Client{
		clientID: {ID: clientID, Email: "client@example.com"},
	}}
	uc := newTestUseCase(slots, &fakeBookingRepo{}, clients, &fakeMetrics{})

	resp, err := uc.Execute(context.Background(), &Request{SlotID: 1, ClientID: &clientID, CreatedVia: "admin"})

	require.NoError(t, err)
	require.NotNil(t, resp.ClientID)
	assert.Equal(t, clientID, *resp.ClientID)
}

func TestExecute_ClientNotFound(t *testing.T) {
	missing := int64(99)
	uc := newTestUseCase(futureSlot(1, 3), &fakeBookingRepo{}, &fakeClientRepo{}, &fakeMetrics{})

	_, err := uc.Execute(context.Background(), &Request{SlotID: 1, ClientID: &missing, CreatedVia: "web"})

	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestExecute_SlotNotFound(t *testing.T) {
	uc := newTestUseCase(futureSlot(1, 3), &fakeBookingRepo{}, &fakeClientRepo{}, &fakeMetrics{})

	_, err := uc.Execute(context.Background(), guestRequest(777))

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_SlotInPast(t *testing.T) {
	slots := futureSlot(1, 3)
	slots.slot.StartAt = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(slots, &fakeBookingRepo{}, &fakeClientRepo{}, &fakeMetrics{})

	_, err := uc.Execute(context.Background(), guestRequest(1))

	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_NoCapacity(t *testing.T) {
	slots := futureSlot(1, 0)
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(slots, bookings, &fakeClientRepo{}, &fakeMetrics{})

	_, err := uc.Execute(context.Background(), guestRequest(1))

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, bookings.bookings)
}

func TestExecute_ValidationErrors(t *testing.T) {
	clientID := int64(1)
	email := "guest@example.com"
	badEmail := "not-an-email"

	tests := []struct {
		name string
		req  *Request
	}{
		{"no requester", &Request{SlotID: 1, CreatedVia: "web"}},
		{"two requesters", &Request{SlotID: 1, GuestEmail: &email, ClientID: &clientID, CreatedVia: "web"}},
		{"bad email", &Request{SlotID: 1, GuestEmail: &badEmail, CreatedVia: "web"}},
		{"bad channel", &Request{SlotID: 1, GuestEmail: &email, CreatedVia: "carrier-pigeon"}},
		{"bad slot id", &Request{SlotID: 0, GuestEmail: &email, CreatedVia: "web"}},
	}

	uc := newTestUseCase(futureSlot(1, 3), &fakeBookingRepo{}, &fakeClientRepo{}, &fakeMetrics{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// Два конкурирующих запроса на последнее место: ровно один проходит
func TestExecute_LastSpotRace(t *testing.T) {
	slots := futureSlot(1, 1)
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(slots, bookings, &fakeClientRepo{}, &fakeMetrics{})

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = uc.Execute(context.Background(), guestRequest(1))
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range results {
		switch {
		case err == nil:
			won++
		default:
			assert.ErrorIs(t, err, ErrSlotUnavailable)
			lost++
		}
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)
	assert.Equal(t, 0, slots.available)
	assert.Len(t, bookings.bookings, 1)
}
