package export_pattern_feed

import "errors"

var (
	// ErrPatternNotFound возвращается, когда паттерн не найден
	ErrPatternNotFound = errors.New("pattern not found")

	// ErrFeedUnavailable возвращается, когда паттерн не переводится в календарь
	ErrFeedUnavailable = errors.New("calendar feed unavailable for pattern")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
