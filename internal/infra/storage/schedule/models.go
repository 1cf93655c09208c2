package schedule

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Документы JSONB-колонок. Доменные структуры json-тегов не несут,
// поэтому формат хранения зафиксирован здесь.

type timeSlotDoc struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

type dayEntryDoc struct {
	DayOfWeek int           `json:"dayOfWeek"`
	TimeSlots []timeSlotDoc `json:"timeSlots"`
}

type exceptionDoc struct {
	Date      string        `json:"date"`
	Kind      string        `json:"kind"`
	TimeSlots []timeSlotDoc `json:"timeSlots,omitempty"`
	Reason    *string       `json:"reason,omitempty"`
}

type overrideDoc struct {
	Date      string        `json:"date"`
	TimeSlots []timeSlotDoc `json:"timeSlots"`
}

func slotsToDoc(slots []domain.TimeSlot) []timeSlotDoc {
	docs := make([]timeSlotDoc, 0, len(slots))
	for _, s := range slots {
		docs = append(docs, timeSlotDoc{Start: s.Start, End: s.End})
	}
	return docs
}

func slotsFromDoc(docs []timeSlotDoc) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0, len(docs))
	for _, d := range docs {
		slots = append(slots, domain.TimeSlot{Start: d.Start, End: d.End})
	}
	return slots
}

func marshalWeekly(entries []domain.DayScheduleEntry) ([]byte, error) {
	docs := make([]dayEntryDoc, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, dayEntryDoc{DayOfWeek: e.DayOfWeek, TimeSlots: slotsToDoc(e.TimeSlots)})
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("%w: weekly schedule: %v", ErrEncodeDocument, err)
	}
	return data, nil
}

func unmarshalWeekly(data []byte) ([]domain.DayScheduleEntry, error) {
	var docs []dayEntryDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: weekly schedule: %v", ErrDecodeDocument, err)
	}
	entries := make([]domain.DayScheduleEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, domain.DayScheduleEntry{DayOfWeek: d.DayOfWeek, TimeSlots: slotsFromDoc(d.TimeSlots)})
	}
	return entries, nil
}

func marshalExceptions(exceptions []domain.ScheduleException) ([]byte, error) {
	docs := make([]exceptionDoc, 0, len(exceptions))
	for _, e := range exceptions {
		docs = append(docs, exceptionDoc{
			Date:      e.Date.Format(domain.DateFormat),
			Kind:      string(e.Kind),
			TimeSlots: slotsToDoc(e.TimeSlots),
			Reason:    e.Reason,
		})
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("%w: exceptions: %v", ErrEncodeDocument, err)
	}
	return data, nil
}

func unmarshalExceptions(data []byte) ([]domain.ScheduleException, error) {
	var docs []exceptionDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: exceptions: %v", ErrDecodeDocument, err)
	}
	exceptions := make([]domain.ScheduleException, 0, len(docs))
	for _, d := range docs {
		date, err := time.Parse(domain.DateFormat, d.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: exception date %q: %v", ErrDecodeDocument, d.Date, err)
		}
		exceptions = append(exceptions, domain.ScheduleException{
			Date:      date,
			Kind:      domain.ExceptionKind(d.Kind),
			TimeSlots: slotsFromDoc(d.TimeSlots),
			Reason:    d.Reason,
		})
	}
	return exceptions, nil
}

func marshalOverrides(overrides []domain.ScheduleOverride) ([]byte, error) {
	docs := make([]overrideDoc, 0, len(overrides))
	for _, o := range overrides {
		docs = append(docs, overrideDoc{
			Date:      o.Date.Format(domain.DateFormat),
			TimeSlots: slotsToDoc(o.TimeSlots),
		})
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("%w: overrides: %v", ErrEncodeDocument, err)
	}
	return data, nil
}

func unmarshalOverrides(data []byte) ([]domain.ScheduleOverride, error) {
	var docs []overrideDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: overrides: %v", ErrDecodeDocument, err)
	}
	overrides := make([]domain.ScheduleOverride, 0, len(docs))
	for _, d := range docs {
		date, err := time.Parse(domain.DateFormat, d.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: override date %q: %v", ErrDecodeDocument, d.Date, err)
		}
		overrides = append(overrides, domain.ScheduleOverride{
			Date:      date,
			TimeSlots: slotsFromDoc(d.TimeSlots),
		})
	}
	return overrides, nil
}
