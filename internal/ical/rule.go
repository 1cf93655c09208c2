// Package ical переводит паттерны повторения в формат iCalendar и обратно:
// разбор RRULE при создании паттерна и сборка ленты VCALENDAR для экспорта.
package ical

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// rruleWeekdays индексируется днём недели паттерна (0 = воскресенье)
var rruleWeekdays = [...]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// RulePattern - часть паттерна, выводимая из строки RRULE
type RulePattern struct {
	Frequency       domain.Frequency
	Interval        int
	DayOfWeek       *int
	DayOfMonth      *int
	EndDate         *time.Time
	OccurrenceLimit *int
}

// PatternFromRule разбирает строку RRULE (без DTSTART) в поля паттерна.
// Поддерживаются FREQ=WEEKLY и FREQ=MONTHLY с одним BYDAY/BYMONTHDAY;
// WEEKLY с INTERVAL=2 становится двухнедельным паттерном
func PatternFromRule(rule string) (*RulePattern, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	out := &RulePattern{Interval: opt.Interval}
	if out.Interval < 1 {
		out.Interval = 1
	}

	switch opt.Freq {
	case rrule.WEEKLY:
		out.Frequency = domain.FrequencyWeekly
		if out.Interval == 2 {
			out.Frequency = domain.FrequencyBiweekly
			out.Interval = 1
		}
		if len(opt.Byweekday) > 1 {
			return nil, fmt.Errorf("%w: multiple BYDAY values", ErrUnsupportedRule)
		}
		if len(opt.Byweekday) == 1 {
			day := (opt.Byweekday[0].Day() + 1) % 7
			out.DayOfWeek = &day
		}
	case rrule.MONTHLY:
		out.Frequency = domain.FrequencyMonthly
		if len(opt.Bymonthday) > 1 {
			return nil, fmt.Errorf("%w: multiple BYMONTHDAY values", ErrUnsupportedRule)
		}
		if len(opt.Bymonthday) == 1 {
			day := opt.Bymonthday[0]
			if day < domain.MinDayOfMonth || day > domain.MaxDayOfMonth {
				return nil, fmt.Errorf("%w: BYMONTHDAY %d out of range", ErrUnsupportedRule, day)
			}
			out.DayOfMonth = &day
		}
	default:
		return nil, fmt.Errorf("%w: FREQ=%s", ErrUnsupportedRule, opt.Freq)
	}

	if !opt.Until.IsZero() {
		until := domain.DateOnly(opt.Until)
		out.EndDate = &until
	}
	if opt.Count > 0 {
		count := opt.Count
		out.OccurrenceLimit = &count
	}

	return out, nil
}

// RuleForPattern отображает паттерн обратно в строку RRULE.
// Двухнедельная частота разворачивается в WEEKLY с удвоенным интервалом
func RuleForPattern(p *domain.RecurrencePattern) (string, error) {
	opt := rrule.ROption{Interval: p.EffectiveInterval()}

	switch p.Frequency {
	case domain.FrequencyWeekly:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{rruleWeekdays[p.EffectiveDayOfWeek()]}
	case domain.FrequencyBiweekly:
		opt.Freq = rrule.WEEKLY
		opt.Interval = 2 * p.EffectiveInterval()
		opt.Byweekday = []rrule.Weekday{rruleWeekdays[p.EffectiveDayOfWeek()]}
	case domain.FrequencyMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{p.EffectiveDayOfMonth()}
	default:
		return "", fmt.Errorf("%w: frequency %q", ErrUnsupportedRule, p.Frequency)
	}

	if p.EndDate != nil {
		opt.Until = p.EndDate.UTC()
	}
	if p.OccurrenceLimit != nil {
		opt.Count = *p.OccurrenceLimit
	}

	return opt.RRuleString(), nil
}
