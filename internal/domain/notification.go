package domain

import "time"

// NotificationChannel канал доставки уведомления
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

// NotificationStatus статус уведомления
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
	NotificationSkipped NotificationStatus = "skipped"
)

// Причины skip/fail, записываемые в meta уведомления
const (
	ReasonQuietHours              = "quiet_hours"
	ReasonSMSOptOut               = "sms_opt_out"
	ReasonMissingEmail            = "missing_email"
	ReasonMissingProfileOrBooking = "missing_profile_or_booking"
	ReasonException               = "exception"
)

// BookingNotification одно запланированное напоминание:
// (booking, caregiver_profile, channel).
type BookingNotification struct {
	ID                 int64
	BookingID          int64
	CaregiverProfileID int64
	Channel            NotificationChannel
	Status             NotificationStatus
	ScheduledFor       time.Time
	Meta               map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal reports whether the notification must not be reprocessed
func (n *BookingNotification) IsTerminal() bool {
	return n.Status == NotificationSent ||
		n.Status == NotificationFailed ||
		n.Status == NotificationSkipped
}
