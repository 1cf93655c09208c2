package slots

import "errors"

var (
	// ErrInvalidDuration возвращается при неположительной длительности сеанса
	ErrInvalidDuration = errors.New("slots: duration must be positive")

	// ErrInternal возвращается при ошибках получения рабочих окон
	ErrInternal = errors.New("slots: internal error")
)
