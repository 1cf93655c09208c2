package domain

// ReasonNotScheduled is reported for weekdays with no working windows
// in the weekly schedule.
const ReasonNotScheduled = "Not scheduled to work"

// DayAvailability is the resolved availability of a staff member for one
// calendar date, after exceptions and overrides have been applied.
type DayAvailability struct {
	Available bool
	Reason    string // пустая строка, если день рабочий
	TimeSlots []TimeSlot
}

// HasWindows returns true if the day is open and has at least one working window.
func (d *DayAvailability) HasWindows() bool {
	return d.Available && len(d.TimeSlots) > 0
}
