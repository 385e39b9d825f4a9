package sweep_reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
)

type fakeReservationRepo struct {
	expired   []*domain.SlotReservation
	deleted   map[int64]bool // id -> уже удалена другим прогоном
	listErr   error
	deleteErr error
}

func (f *fakeReservationRepo) ListExpired(_ context.Context, _ time.Time, _ uint64) ([]*domain.SlotReservation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.expired, nil
}

func (f *fakeReservationRepo) DeleteExpired(_ context.Context, id int64, _ time.Time) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	if f.deleted[id] {
		return false, nil
	}
	if f.deleted == nil {
		f.deleted = make(map[int64]bool)
	}
	f.deleted[id] = true
	return true, nil
}

type fakeSlotRepo struct {
	released   []int64
	releaseErr error
}

func (f *fakeSlotRepo) ReleaseCapacity(_ context.Context, slotID int64) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.released = append(f.released, slotID)
	return nil
}

type fakeTxManager struct {
	commitErr error // возвращается после успешного fn, как ошибка COMMIT
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

type fakeMetrics struct {
	runs  []string
	swept int
}

func (f *fakeMetrics) RecordSweeperRun(result string) { f.runs = append(f.runs, result) }
func (f *fakeMetrics) RecordReservationSwept()        { f.swept++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func reservation(id, slotID int64) *domain.SlotReservation {
	return &domain.SlotReservation{ID: id, SlotID: slotID, ExpiresAt: time.Now().Add(-time.Minute)}
}

func TestExecute_ReleasesExpiredReservations(t *testing.T) {
	reservations := &fakeReservationRepo{
		expired: []*domain.SlotReservation{reservation(1, 10), reservation(2, 20)},
	}
	slots := &fakeSlotRepo{}
	metrics := &fakeMetrics{}
	uc := NewUseCase(reservations, slots, &fakeTxManager{}, metrics, nopLogger{}, 100)

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 2, result.Released)
	assert.Equal(t, []int64{10, 20}, slots.released)
	assert.Equal(t, 2, metrics.swept)
	assert.Equal(t, []string{"success"}, metrics.runs)
}

func TestExecute_EmptyRun(t *testing.T) {
	metrics := &fakeMetrics{}
	uc := NewUseCase(&fakeReservationRepo{}, &fakeSlotRepo{}, &fakeTxManager{}, metrics, nopLogger{}, 100)

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Scanned)
	assert.Equal(t, 0, result.Released)
	assert.Equal(t, []string{"success"}, metrics.runs)
}

// Строку уже убрал параллельный прогон: место второй раз не возвращается
func TestExecute_SkipsAlreadyDeleted(t *testing.T) {
	reservations := &fakeReservationRepo{
		expired: []*domain.SlotReservation{reservation(1, 10), reservation(2, 20)},
		deleted: map[int64]bool{1: true},
	}
	slots := &fakeSlotRepo{}
	metrics := &fakeMetrics{}
	uc := NewUseCase(reservations, slots, &fakeTxManager{}, metrics, nopLogger{}, 100)

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 1, result.Released)
	assert.Equal(t, []int64{20}, slots.released)
	assert.Equal(t, 1, metrics.swept)
}

func TestExecute_ListFailureRecordsFailedRun(t *testing.T) {
	reservations := &fakeReservationRepo{listErr: errors.New("db down")}
	metrics := &fakeMetrics{}
	uc := NewUseCase(reservations, &fakeSlotRepo{}, &fakeTxManager{}, metrics, nopLogger{}, 100)

	_, err := uc.Execute(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{"failure"}, metrics.runs)
}

// Откат на COMMIT: счетчик освобожденных мест не растет
func TestExecute_CommitFailureNotCounted(t *testing.T) {
	reservations := &fakeReservationRepo{expired: []*domain.SlotReservation{reservation(1, 10)}}
	metrics := &fakeMetrics{}
	uc := NewUseCase(reservations, &fakeSlotRepo{}, &fakeTxManager{commitErr: errors.New("commit failed")}, metrics, nopLogger{}, 100)

	_, err := uc.Execute(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, metrics.swept)
	assert.Equal(t, []string{"failure"}, metrics.runs)
}

func TestExecute_ReleaseFailureRecordsFailedRun(t *testing.T) {
	reservations := &fakeReservationRepo{expired: []*domain.SlotReservation{reservation(1, 10)}}
	slots := &fakeSlotRepo{releaseErr: errors.New("db down")}
	metrics := &fakeMetrics{}
	uc := NewUseCase(reservations, slots, &fakeTxManager{}, metrics, nopLogger{}, 100)

	_, err := uc.Execute(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{"failure"}, metrics.runs)
}
