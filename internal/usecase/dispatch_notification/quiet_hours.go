package dispatch_notification

import (
	"time"

	"github.com/nordeim/Elderly-Care-Center/pkg/types"
)

// inQuietHours проверяет, попадает ли момент now (в таймзоне опекуна)
// в окно тишины [start, end). Окно может переходить через полночь
// (например 21:00 - 08:00). start == end означает, что окно отключено.
func inQuietHours(now time.Time, loc *time.Location, start, end types.TimeString) bool {
	if start == end {
		return false
	}

	local := types.NewTimeString(now.In(loc))

	if start.IsBefore(end) {
		// Окно внутри одних суток: [start, end)
		return !local.IsBefore(start) && local.IsBefore(end)
	}

	// Окно через полночь: [start, 24:00) или [00:00, end)
	return !local.IsBefore(start) || local.IsBefore(end)
}
