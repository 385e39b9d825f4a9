package smsgateway

import "errors"

var (
	// ErrInvalidResponse возвращается при неожиданном ответе шлюза
	ErrInvalidResponse = errors.New("smsgateway: invalid response")

	// ErrInternal возвращается при ошибках запроса к шлюзу
	ErrInternal = errors.New("smsgateway: internal error")
)
