package generate_next_booking

// Request запрос на материализацию следующего занятия паттерна
type Request struct {
	PatternID int64
}

// Response ответ с созданным бронированием
type Response struct {
	PatternID int64  `json:"patternId"`
	BookingID int64  `json:"bookingId"`
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
	// SkippedDates - даты занятий, пропущенные из-за недоступности сотрудника
	SkippedDates []string `json:"skippedDates,omitempty"`
	// Completed выставляется, когда созданное занятие исчерпало лимит серии
	Completed bool `json:"completed"`
}
