package payment

import "errors"

var (
	// ErrPaymentNotFound платеж не найден
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
