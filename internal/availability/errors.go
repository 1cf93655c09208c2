package availability

import "errors"

var (
	// ErrInternal возвращается при ошибках источника расписаний
	ErrInternal = errors.New("availability: internal error")
)
