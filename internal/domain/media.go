package domain

import "time"

// MediaStatus статус медиа-элемента в пайплайне обработки
type MediaStatus string

const (
	MediaPending    MediaStatus = "pending"
	MediaProcessing MediaStatus = "processing"
	MediaReady      MediaStatus = "ready"
	MediaFailed     MediaStatus = "failed"
)

// MediaOwnerKind explicit owner-kind enum replacing the original
// polymorphic "morph" association.
type MediaOwnerKind string

const (
	OwnerFacility    MediaOwnerKind = "facility"
	OwnerService     MediaOwnerKind = "service"
	OwnerStaffMember MediaOwnerKind = "staff_member"
	OwnerTestimonial MediaOwnerKind = "testimonial"
)

// ValidOwnerKind валидирует owner kind на границе
func ValidOwnerKind(s string) bool {
	switch MediaOwnerKind(s) {
	case OwnerFacility, OwnerService, OwnerStaffMember, OwnerTestimonial:
		return true
	}
	return false
}

// VideoRendition производное видео с параметрами профиля
type VideoRendition struct {
	Resolution string `json:"resolution"`
	Bitrate    string `json:"bitrate"`
	URL        string `json:"url"`
}

// AudioRendition производная аудио-дорожка
type AudioRendition struct {
	Bitrate string `json:"bitrate"`
	URL     string `json:"url"`
}

// Thumbnail превью-кадр
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Conversions карта производных ассетов медиа-элемента
type Conversions struct {
	Video     []VideoRendition `json:"video,omitempty"`
	Audio     []AudioRendition `json:"audio,omitempty"`
	Thumbnail *Thumbnail       `json:"thumbnail,omitempty"`
}

// MediaItem загруженный медиа-файл и результат его обработки
type MediaItem struct {
	ID           int64
	UUID         string
	OwnerKind    MediaOwnerKind
	OwnerID      int64
	Title        string
	FileURL      string
	MimeType     string
	SizeBytes    int64
	Status       MediaStatus
	Conversions  *Conversions
	ErrorMessage *string
	UploadedBy   *int64
	UploadedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
