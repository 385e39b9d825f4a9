package notification

import "errors"

var (
	// ErrNotificationNotFound уведомление не найдено
	ErrNotificationNotFound = errors.New("notification.repository: notification not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("notification.repository: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("notification.repository: failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("notification.repository: failed to scan row")
)
