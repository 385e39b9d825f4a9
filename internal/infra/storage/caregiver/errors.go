package caregiver

import "errors"

var (
	// ErrProfileNotFound профиль опекуна не найден
	ErrProfileNotFound = errors.New("caregiver.repository: caregiver profile not found")
	// ErrClientNotFound клиент не найден
	ErrClientNotFound = errors.New("caregiver.repository: client not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("caregiver.repository: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("caregiver.repository: failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("caregiver.repository: failed to scan row")
)
