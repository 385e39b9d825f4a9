package dispatch_notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nordeim/Elderly-Care-Center/pkg/types"
)

func TestInQuietHours_WrapMidnight(t *testing.T) {
	start := types.TimeString("21:00")
	end := types.TimeString("08:00")

	tests := []struct {
		clock string
		quiet bool
	}{
		{"20:59", false},
		{"21:00", true},
		{"23:00", true},
		{"00:00", true},
		{"03:30", true},
		{"07:59", true},
		{"08:00", false},
		{"12:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			parsed, err := time.Parse("15:04", tt.clock)
			assert.NoError(t, err)
			now := time.Date(2026, 3, 1, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
			assert.Equal(t, tt.quiet, inQuietHours(now, time.UTC, start, end))
		})
	}
}

func TestInQuietHours_SameDayWindow(t *testing.T) {
	start := types.TimeString("13:00")
	end := types.TimeString("15:00")

	tests := []struct {
		clock string
		quiet bool
	}{
		{"12:59", false},
		{"13:00", true},
		{"14:30", true},
		{"15:00", false},
		{"23:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			parsed, _ := time.Parse("15:04", tt.clock)
			now := time.Date(2026, 3, 1, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
			assert.Equal(t, tt.quiet, inQuietHours(now, time.UTC, start, end))
		})
	}
}

func TestInQuietHours_DisabledWhenStartEqualsEnd(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		now := time.Date(2026, 3, 1, hour, 0, 0, 0, time.UTC)
		assert.False(t, inQuietHours(now, time.UTC, "09:00", "09:00"))
	}
}

// Окно считается в таймзоне опекуна, не в UTC
func TestInQuietHours_UsesCaregiverTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	// 02:00 UTC = 21:00 в Нью-Йорке (зимнее время)
	now := time.Date(2026, 1, 15, 2, 0, 0, 0, time.UTC)

	assert.True(t, inQuietHours(now, loc, "21:00", "08:00"))
	assert.False(t, inQuietHours(now, time.UTC, "21:00", "08:00"))
}
