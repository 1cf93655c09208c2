package get_upcoming_occurrences

import "time"

// Request запрос на ближайшие занятия паттерна
type Request struct {
	PatternID int64
	Count     *int       // сколько занятий вернуть, по умолчанию 5, максимум 50
	From      *time.Time // с какого момента искать, по умолчанию сейчас
}

// Occurrence одно вычисленное занятие
type Occurrence struct {
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
}

// Response ответ с ближайшими занятиями
type Response struct {
	PatternID   int64        `json:"patternId"`
	Status      string       `json:"status"`
	Occurrences []Occurrence `json:"occurrences"`
}
