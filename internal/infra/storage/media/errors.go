package media

import "errors"

var (
	// ErrMediaNotFound медиа-элемент не найден
	ErrMediaNotFound = errors.New("media.repository: media item not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("media.repository: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("media.repository: failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("media.repository: failed to scan row")
)
