package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

const productID = "-//SMC//ScheduleService//EN"

// BuildFeed собирает VCALENDAR с событием на каждое вычисленное занятие
// паттерна. Первое событие несёт RRULE, чтобы календарь клиента видел
// правило серии целиком. Времена отдаются как UTC: часовой пояс паттерна
// хранится как метка и к датам не применяется
func BuildFeed(p *domain.RecurrencePattern, occurrences []time.Time, stamp time.Time) (string, error) {
	rule, err := RuleForPattern(p)
	if err != nil {
		return "", err
	}

	startMinutes, err := p.StartTime.MinutesOfDay()
	if err != nil {
		return "", fmt.Errorf("%w: start time %q: %v", ErrUnsupportedRule, p.StartTime, err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	duration := time.Duration(p.DurationMinutes) * time.Minute

	for i, occ := range occurrences {
		start := occ.Add(time.Duration(startMinutes) * time.Minute)

		event := cal.AddEvent(eventUID(p.ID, occ))
		event.SetDtStampTime(stamp.UTC())
		event.SetStartAt(start)
		event.SetEndAt(start.Add(duration))
		event.SetSummary(fmt.Sprintf("Recurring visit: staff %d, service %d", p.StaffID, p.ServiceID))
		event.SetStatus(ics.ObjectStatusConfirmed)
		if i == 0 {
			event.AddRrule(rule)
		}
	}

	return cal.Serialize(), nil
}

func eventUID(patternID int64, occ time.Time) string {
	return fmt.Sprintf("pattern-%d-%s@smc-scheduleservice", patternID, occ.Format("20060102"))
}
