package get_staff_availability

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// TimeSlotResponse временное окно в ответе
type TimeSlotResponse struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// DayAvailabilityResponse доступность сотрудника на дату
type DayAvailabilityResponse struct {
	StaffID   int64              `json:"staffId"`
	Date      string             `json:"date"` // YYYY-MM-DD
	Available bool               `json:"available"`
	Reason    string             `json:"reason,omitempty"`
	TimeSlots []TimeSlotResponse `json:"timeSlots"`
}

// FromDayAvailability собирает HTTP-ответ из результата резолвера.
// nil означает, что активного расписания на дату нет.
func FromDayAvailability(staffID int64, date time.Time, day *domain.DayAvailability) *DayAvailabilityResponse {
	resp := &DayAvailabilityResponse{
		StaffID:   staffID,
		Date:      date.Format(domain.DateFormat),
		TimeSlots: []TimeSlotResponse{},
	}
	if day == nil {
		return resp
	}

	resp.Available = day.Available
	resp.Reason = day.Reason
	for _, slot := range day.TimeSlots {
		resp.TimeSlots = append(resp.TimeSlots, TimeSlotResponse{
			Start: slot.Start.String(),
			End:   slot.End.String(),
		})
	}
	return resp
}
