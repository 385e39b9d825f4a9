package transcode_media

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
	item        *domain.MediaItem
	statuses    []domain.MediaStatus
	lastErr     *string
	conversions *domain.Conversions
}

func (f *fakeMediaRepo) GetByID(_ context.Context, id int64) (*domain.MediaItem, error) {
	if f.item == nil || f.item.ID != id {
		return nil, mediaRepo.ErrMediaNotFound
	}
	copied := *f.item
	return &copied, nil
}

func (f *fakeMediaRepo) MarkStatus(_ context.Context, _ int64, status domain.MediaStatus, errorMessage *string) error {
	f.statuses = append(f.statuses, status)
	f.lastErr = errorMessage
	return nil
}

func (f *fakeMediaRepo) StoreConversions(_ context.Context, _ int64, conversions *domain.Conversions) error {
	f.conversions = conversions
	return nil
}

type fakeTranscoder struct {
	result *domain.Conversions
	err    error
}

func (f *fakeTranscoder) Transcode(_ context.Context, _ *domain.MediaItem, _ string) (*domain.Conversions, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeMetrics struct {
	starts, successes, failures int
}

func (f *fakeMetrics) RecordTranscodeStart()   { f.starts++ }
func (f *fakeMetrics) RecordTranscodeSuccess() { f.successes++ }
func (f *fakeMetrics) RecordTranscodeFailure() { f.failures++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func processingItem() *domain.MediaItem {
	return &domain.MediaItem{ID: 1, FileURL: "/uploads/source.mp4", Status: domain.MediaProcessing}
}

func TestExecute_StoresConversions(t *testing.T) {
	repo := &fakeMediaRepo{item: processingItem()}
	transcoder := &fakeTranscoder{result: &domain.Conversions{
		Video: []domain.VideoRendition{{Resolution: "720p"}},
	}}
	metrics := &fakeMetrics{}
	uc := NewUseCase(repo, transcoder, metrics, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{MediaID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeReady, resp.Outcome)
	require.NotNil(t, repo.conversions)
	assert.Len(t, repo.conversions.Video, 1)
	assert.Equal(t, 1, metrics.starts)
	assert.Equal(t, 1, metrics.successes)
	assert.Equal(t, 0, metrics.failures)
}

func TestExecute_FfmpegFailure(t *testing.T) {
	repo := &fakeMediaRepo{item: processingItem()}
	transcoder := &fakeTranscoder{err: errors.New("ffmpeg exited with code 1")}
	metrics := &fakeMetrics{}
	uc := NewUseCase(repo, transcoder, metrics, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{MediaID: 1})

	assert.ErrorIs(t, err, ErrTranscodeFailed)
	assert.Equal(t, []domain.MediaStatus{domain.MediaFailed}, repo.statuses)
	require.NotNil(t, repo.lastErr)
	assert.Contains(t, *repo.lastErr, "ffmpeg")
	assert.Equal(t, 1, metrics.failures)
	assert.Nil(t, repo.conversions)
}

func TestExecute_ReadyItemSkipped(t *testing.T) {
	item := processingItem()
	item.Status = domain.MediaReady
	repo := &fakeMediaRepo{item: item}
	metrics := &fakeMetrics{}
	uc := NewUseCase(repo, &fakeTranscoder{}, metrics, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{MediaID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, resp.Outcome)
	assert.Equal(t, 0, metrics.starts)
}

func TestExecute_MissingItemSkipped(t *testing.T) {
	uc := NewUseCase(&fakeMediaRepo{}, &fakeTranscoder{}, &fakeMetrics{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{MediaID: 5})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, resp.Outcome)
}
