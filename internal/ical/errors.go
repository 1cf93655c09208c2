package ical

import "errors"

var (
	// ErrUnsupportedRule - правило повторения не переводится в паттерн
	ErrUnsupportedRule = errors.New("ical: unsupported recurrence rule")
	// ErrInvalidRule - строка RRULE не разбирается
	ErrInvalidRule = errors.New("ical: invalid recurrence rule")
)
