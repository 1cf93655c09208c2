package generate_next_booking

import "errors"

var (
	// ErrPatternNotFound возвращается, когда паттерн не найден
	ErrPatternNotFound = errors.New("pattern not found")

	// ErrPatternNotActive возвращается, когда паттерн не в статусе active
	ErrPatternNotActive = errors.New("pattern is not active")

	// ErrSeriesExhausted возвращается, когда серия закончилась:
	// достигнут лимит занятий или дата окончания
	ErrSeriesExhausted = errors.New("recurrence series exhausted")

	// ErrNoBookableOccurrence возвращается, когда в пределах окна поиска
	// не нашлось даты, на которую сотрудник доступен
	ErrNoBookableOccurrence = errors.New("no bookable occurrence within probe window")

	// ErrOccurrenceTaken возвращается, когда BookingService сообщает,
	// что интервал занятия уже занят
	ErrOccurrenceTaken = errors.New("occurrence slot already taken")

	// ErrBookingRejected возвращается, когда BookingService отклонил данные
	ErrBookingRejected = errors.New("booking rejected by booking service")

	// ErrBookingServiceUnavailable возвращается, когда BookingService недоступен
	ErrBookingServiceUnavailable = errors.New("booking service unavailable")

	// ErrConcurrentUpdate возвращается, когда список занятий паттерна
	// продолжает меняться параллельно и повторы исчерпаны
	ErrConcurrentUpdate = errors.New("pattern updated concurrently, retries exhausted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
