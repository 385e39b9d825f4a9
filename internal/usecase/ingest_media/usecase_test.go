package ingest_media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	mediaRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/media"
)

type fakeMediaRepo struct {
	item     *domain.MediaItem
	statuses []domain.MediaStatus
	lastErr  *string
}

func (f *fakeMediaRepo) GetByID(_ context.Context, id int64) (*domain.MediaItem, error) {
	if f.item == nil || f.item.ID != id {
		return nil, mediaRepo.ErrMediaNotFound
	}
	copied := *f.item
	return &copied, nil
}

func (f *fakeMediaRepo) MarkStatus(_ context.Context, id int64, status domain.MediaStatus, errorMessage *string) error {
	f.statuses = append(f.statuses, status)
	f.lastErr = errorMessage
	if f.item != nil && f.item.ID == id {
		f.item.Status = status
	}
	return nil
}

type fakeScanner struct {
	enabled       bool
	err           error   // возвращается на каждый вызов
	transientErrs []error // расходуются по одному на вызов, раньше err
	scanned       []string
}

func (f *fakeScanner) Enabled() bool { return f.enabled }

func (f *fakeScanner) Scan(_ context.Context, path string) error {
	f.scanned = append(f.scanned, path)
	if len(f.transientErrs) > 0 {
		err := f.transientErrs[0]
		f.transientErrs = f.transientErrs[1:]
		return err
	}
	return f.err
}

type fakeEnqueuer struct {
	enqueued []int64
}

func (f *fakeEnqueuer) EnqueueTranscode(_ context.Context, mediaID int64) error {
	f.enqueued = append(f.enqueued, mediaID)
	return nil
}

type fakeMetrics struct {
	queued    int
	scanFails int
}

func (f *fakeMetrics) RecordMediaIngestQueued()  { f.queued++ }
func (f *fakeMetrics) RecordVirusScanFailure()   { f.scanFails++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingItem() *domain.MediaItem {
	return &domain.MediaItem{
		ID:      1,
		UUID:    "m-uuid",
		FileURL: "/uploads/source.mp4",
		Status:  domain.MediaPending,
	}
}

func TestExecute_QueuesForTranscoding(t *testing.T) {
	repo := &fakeMediaRepo{item: pendingItem()}
	scanner := &fakeScanner{enabled: true}
	enqueuer := &fakeEnqueuer{}
	metrics := &fakeMetrics{}
	uc := NewUseCase(repo, scanner, enqueuer, metrics, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{MediaID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeQueued, resp.Outcome)
	assert.Equal(t, []string{"/uploads/source.mp4"}, scanner.scanned)
	assert.Equal(t, []int64{1}, enqueuer.enqueued)
	assert.Equal(t, []domain.MediaStatus{domain.MediaProcessing}, repo.statuses)
	assert.Equal(t, 1, metrics.queued)
}

func TestExecute_ScannerDisabledStillQueues(t *testing.T) {
	repo := &fakeMediaRepo{item: pendingItem()}
	scanner := &fakeScanner{enabled: false, err: errors.New("must not be called")}
	enqueuer := &fakeEnqueuer{}
	uc := NewUseCase(repo, scanner, enqueuer, &fakeMetrics{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{MediaID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeQueued, resp.Outcome)
	assert.Equal(t, []int64{1}, enqueuer.enqueued)
}

// Провал проверки: failed с текстом ошибки, транскодирование не ставится
func TestExecute_ScanFailure(t *testing.T) {
	repo := &fakeMediaRepo{item: pendingItem()}
	scanner := &fakeScanner{enabled: true, err: errors.New("signature matched: EICAR")}
	enqueuer := &fakeEnqueuer{}
	metrics := &fakeMetrics{}
	uc := NewUseCase(repo, scanner, enqueuer, metrics, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{MediaID: 1})

	assert.ErrorIs(t, err, ErrScanFailed)
	assert.Equal(t, []domain.MediaStatus{domain.MediaProcessing, domain.MediaFailed}, repo.statuses)
	require.NotNil(t, repo.lastErr)
	assert.Contains(t, *repo.lastErr, "EICAR")
	assert.Empty(t, enqueuer.enqueued)
	assert.Equal(t, 1, metrics.scanFails)
}

func TestExecute_MissingItemSkipped(t *testing.T) {
	uc := NewUseCase(&fakeMediaRepo{}, &fakeScanner{}, &fakeEnqueuer{}, &fakeMetrics{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{MediaID: 9})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, resp.Outcome)
}

func TestExecute_ReadyItemSkipped(t *testing.T) {
	item := pendingItem()
	item.Status = domain.MediaReady
	repo := &fakeMediaRepo{item: item}
	enqueuer := &fakeEnqueuer{}
	uc := NewUseCase(repo, &fakeScanner{}, enqueuer, &fakeMetrics{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{MediaID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, resp.Outcome)
	assert.Empty(t, repo.statuses)
	assert.Empty(t, enqueuer.enqueued)
}

// Временный сбой сканера (таймаут): повторная доставка задачи из
// очереди прогоняет проверку заново, а не застревает в failed
func TestExecute_ScanRetriedAfterTransientFailure(t *testing.T) {
	repo := &fakeMediaRepo{item: pendingItem()}
	scanner := &fakeScanner{enabled: true, transientErrs: []error{errors.New("scan timed out")}}
	enqueuer := &fakeEnqueuer{}
	metrics := &fakeMetrics{}
	uc := NewUseCase(repo, scanner, enqueuer, metrics, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{MediaID: 1})
	require.ErrorIs(t, err, ErrScanFailed)
	assert.Equal(t, domain.MediaFailed, repo.item.Status)

	resp, err := uc.Execute(context.Background(), &Request{MediaID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeQueued, resp.Outcome)
	assert.Len(t, scanner.scanned, 2)
	assert.Equal(t, []int64{1}, enqueuer.enqueued)
	assert.Equal(t, domain.MediaProcessing, repo.item.Status)
	assert.Equal(t, 1, metrics.scanFails)
}
