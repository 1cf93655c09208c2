package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	StaffID int64           `json:"staffId"`
	Date    string          `json:"date"`
	Slots   []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
}

// FromTimeSlots конвертирует слоты генератора в HTTP response
func FromTimeSlots(staffID int64, date time.Time, timeSlots []domain.TimeSlot) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(timeSlots))
	for i, slot := range timeSlots {
		slots[i] = AvailableSlot{
			StartTime: slot.Start.String(),
			EndTime:   slot.End.String(),
		}
	}

	return &AvailableSlotsResponse{
		StaffID: staffID,
		Date:    date.Format(domain.DateFormat),
		Slots:   slots,
	}
}
