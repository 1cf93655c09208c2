package availability

import "github.com/m04kA/SMC-ScheduleService/internal/domain"

// MostRecentlyCreated - политика выбора по умолчанию: при пересечении периодов
// действия нескольких расписаний побеждает созданное последним.
type MostRecentlyCreated struct{}

// Pick возвращает расписание с самым поздним CreatedAt
func (MostRecentlyCreated) Pick(schedules []*domain.AvailabilitySchedule) *domain.AvailabilitySchedule {
	if len(schedules) == 0 {
		return nil
	}
	winner := schedules[0]
	for _, s := range schedules[1:] {
		if s.CreatedAt.After(winner.CreatedAt) {
			winner = s
		}
	}
	return winner
}
