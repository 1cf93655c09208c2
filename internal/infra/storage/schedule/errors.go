package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrEncodeDocument возвращается при ошибке сериализации JSONB-документа
	ErrEncodeDocument = errors.New("schedule.repository: failed to encode document")

	// ErrDecodeDocument возвращается при ошибке разбора JSONB-документа
	ErrDecodeDocument = errors.New("schedule.repository: failed to decode document")
)
