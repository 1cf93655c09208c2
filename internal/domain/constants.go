package domain

// Slot generation defaults
const (
	DefaultGranularityMinutes = 15
	DefaultBufferMinutes      = 0
)

// Occurrence generation limits
const (
	// DefaultMaxOccurrences ограничивает список дат, генерируемый за один вызов
	DefaultMaxOccurrences = 52

	// DefaultUpcomingCount / MaxUpcomingCount - значения для выборки ближайших дат
	DefaultUpcomingCount = 5
	MaxUpcomingCount     = 50

	// UpcomingIterationCeiling - жёсткий потолок итераций при перемотке и сборе
	UpcomingIterationCeiling = 500
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours
	MinDayOfMonth      = 1
	MaxDayOfMonth      = 31
	MaxReasonLength    = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список статусов, из которых паттерн уже не выходит
// Используется при валидации смены статуса
var TerminalStatuses = []PatternStatus{
	PatternStatusCancelled,
	PatternStatusCompleted,
}
