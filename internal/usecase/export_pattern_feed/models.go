package export_pattern_feed

// Request запрос на экспорт паттерна в формате iCalendar
type Request struct {
	PatternID int64
}

// Response календарная лента паттерна
type Response struct {
	Filename string // имя файла для Content-Disposition
	Body     string // сериализованный VCALENDAR
}
