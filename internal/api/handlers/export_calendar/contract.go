package export_calendar

import (
	"context"
	"time"
)

type CalendarService interface {
	ExportForUser(ctx context.Context, userID int64, now time.Time) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
