package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNotesLength         = 500
	MaxCaregiverNameLength = 120
	MaxEmailLength         = 254
)

// Default configuration values
const (
	DefaultReminderWindowHours = 24
	DefaultDepositCents        = 1000
	DefaultCurrency            = "usd"
)
