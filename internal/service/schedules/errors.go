package schedules

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrExceptionNotFound возвращается, когда на дату нет исключения
	ErrExceptionNotFound = errors.New("schedule exception not found")

	// ErrOverrideNotFound возвращается, когда на дату нет переопределения
	ErrOverrideNotFound = errors.New("schedule override not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeRange возвращается при некорректном временном интервале
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
