package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/config"
	"github.com/nordeim/Elderly-Care-Center/internal/domain"
)

// Transcoder запускает ffmpeg для получения производных файлов:
// видео-рендиции по профилям, аудио-дорожка, превью-кадр.
type Transcoder struct {
	storageDir       string
	videoProfiles    []config.VideoProfile
	audioBitrate     string
	thumbnailWidth   int
	thumbnailHeight  int
	thumbnailOffset  int
	transcodeTimeout time.Duration
	thumbnailTimeout time.Duration
	logger           Logger
}

// NewTranscoder создает транскодер из настроек медиа-пайплайна
func NewTranscoder(cfg config.MediaConfig, logger Logger) *Transcoder {
	return &Transcoder{
		storageDir:       cfg.StorageDir,
		videoProfiles:    cfg.VideoProfiles,
		audioBitrate:     cfg.AudioBitrate,
		thumbnailWidth:   cfg.ThumbnailWidth,
		thumbnailHeight:  cfg.ThumbnailHeight,
		thumbnailOffset:  cfg.ThumbnailSecondsOffset,
		transcodeTimeout: time.Duration(cfg.TranscodeTimeout) * time.Second,
		thumbnailTimeout: time.Duration(cfg.ThumbnailTimeout) * time.Second,
		logger:           logger,
	}
}

// Transcode прогоняет исходный файл через все профили.
// Ошибка видео или аудио фатальна; превью-кадр опционален — его сбой
// логируется, но результат считается успешным.
func (t *Transcoder) Transcode(ctx context.Context, item *domain.MediaItem, sourcePath string) (*domain.Conversions, error) {
	outputDir := filepath.Join(t.storageDir, item.UUID)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	conversions := &domain.Conversions{}

	for _, profile := range t.videoProfiles {
		outputPath := filepath.Join(outputDir, fmt.Sprintf("video_%s.mp4", profile.Resolution))
		if err := t.transcodeVideo(ctx, sourcePath, outputPath, profile); err != nil {
			return nil, fmt.Errorf("video rendition %s: %w", profile.Resolution, err)
		}
		conversions.Video = append(conversions.Video, domain.VideoRendition{
			Resolution: profile.Resolution,
			Bitrate:    profile.Bitrate,
			URL:        outputPath,
		})
		t.logger.Info("Transcoder: media uuid=%s rendition %s done", item.UUID, profile.Resolution)
	}

	audioPath := filepath.Join(outputDir, "audio.mp3")
	if err := t.extractAudio(ctx, sourcePath, audioPath); err != nil {
		return nil, fmt.Errorf("audio rendition: %w", err)
	}
	conversions.Audio = append(conversions.Audio, domain.AudioRendition{
		Bitrate: t.audioBitrate,
		URL:     audioPath,
	})

	thumbnailPath := filepath.Join(outputDir, "thumbnail.jpg")
	if err := t.extractThumbnail(ctx, sourcePath, thumbnailPath); err != nil {
		// Превью не критично для публикации
		t.logger.Warn("Transcoder: media uuid=%s thumbnail failed: %v", item.UUID, err)
	} else {
		conversions.Thumbnail = &domain.Thumbnail{
			URL:    thumbnailPath,
			Width:  t.thumbnailWidth,
			Height: t.thumbnailHeight,
		}
	}

	return conversions, nil
}

func (t *Transcoder) transcodeVideo(ctx context.Context, source, output string, profile config.VideoProfile) error {
	height, err := profileHeight(profile.Resolution)
	if err != nil {
		return err
	}

	args := []string{
		"-y",
		"-i", source,
		"-vf", fmt.Sprintf("scale=-2:%d", height),
		"-b:v", profile.Bitrate,
		output,
	}
	return t.runFFmpeg(ctx, t.transcodeTimeout, args)
}

func (t *Transcoder) extractAudio(ctx context.Context, source, output string) error {
	args := []string{
		"-y",
		"-i", source,
		"-vn",
		"-b:a", t.audioBitrate,
		output,
	}
	return t.runFFmpeg(ctx, t.transcodeTimeout, args)
}

func (t *Transcoder) extractThumbnail(ctx context.Context, source, output string) error {
	args := []string{
		"-y",
		"-ss", strconv.Itoa(t.thumbnailOffset),
		"-i", source,
		"-vframes", "1",
		"-vf", fmt.Sprintf("scale=%d:%d", t.thumbnailWidth, t.thumbnailHeight),
		output,
	}
	return t.runFFmpeg(ctx, t.thumbnailTimeout, args)
}

func (t *Transcoder) runFFmpeg(ctx context.Context, timeout time.Duration, args []string) error {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "ffmpeg", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("ffmpeg timed out after %s", timeout)
		}
		return fmt.Errorf("ffmpeg: %v: %s", err, lastLine(output))
	}
	return nil
}

// profileHeight извлекает высоту кадра из названия профиля ("1080p")
func profileHeight(resolution string) (int, error) {
	height, err := strconv.Atoi(strings.TrimSuffix(resolution, "p"))
	if err != nil {
		return 0, fmt.Errorf("invalid resolution %q", resolution)
	}
	return height, nil
}

// lastLine возвращает последнюю непустую строку вывода ffmpeg:
// именно в ней обычно содержится причина ошибки
func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
