package pattern

import "errors"

var (
	// ErrPatternNotFound - паттерн не найден
	ErrPatternNotFound = errors.New("pattern.repository: pattern not found")
	// ErrConcurrentAppend - список бронирований изменился между чтением и записью
	ErrConcurrentAppend = errors.New("pattern.repository: generated bookings changed concurrently")
	// ErrBuildQuery - ошибка построения SQL запроса
	ErrBuildQuery = errors.New("pattern.repository: failed to build query")
	// ErrExecQuery - ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("pattern.repository: failed to execute query")
	// ErrScanRow - ошибка сканирования строки результата
	ErrScanRow = errors.New("pattern.repository: failed to scan row")
	// ErrEncodeDocument - ошибка сериализации JSONB документа
	ErrEncodeDocument = errors.New("pattern.repository: failed to encode document")
	// ErrDecodeDocument - ошибка десериализации JSONB документа
	ErrDecodeDocument = errors.New("pattern.repository: failed to decode document")
)
