package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var (
	// ErrInvalidTimeSlot возвращается при некорректном интервале времени
	ErrInvalidTimeSlot = errors.New("invalid time slot")
	// ErrInvalidDayOfWeek возвращается при дне недели вне диапазона 0..6
	ErrInvalidDayOfWeek = errors.New("invalid day of week")
	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidExceptionKind возвращается при неизвестном типе исключения
	ErrInvalidExceptionKind = errors.New("invalid exception kind")
	// ErrInvalidReason возвращается при слишком длинной причине
	ErrInvalidReason = errors.New("invalid reason")
)

// Request модели

// TimeSlotPayload интервал времени в формате HH:MM
type TimeSlotPayload struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayschedulePayload рабочие окна одного дня недели
type DaySchedulePayload struct {
	DayOfWeek int               `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	TimeSlots []TimeSlotPayload `json:"timeSlots"`
}

// CreateScheduleRequest запрос на создание расписания
type CreateScheduleRequest struct {
	StaffID        int64                `json:"staffId"`
	WeeklySchedule []DaySchedulePayload `json:"weeklySchedule"`
	EffectiveFrom  string               `json:"effectiveFrom"`         // YYYY-MM-DD
	EffectiveTo    *string              `json:"effectiveTo,omitempty"` // YYYY-MM-DD
}

// ReplaceWeeklyScheduleRequest запрос на полную замену недельного шаблона
type ReplaceWeeklyScheduleRequest struct {
	WeeklySchedule []DaySchedulePayload `json:"weeklySchedule"`
}

// AddExceptionRequest запрос на добавление исключения на дату
type AddExceptionRequest struct {
	Date      string            `json:"date"` // YYYY-MM-DD
	Kind      string            `json:"kind"` // unavailable | custom_hours
	TimeSlots []TimeSlotPayload `json:"timeSlots,omitempty"`
	Reason    *string           `json:"reason,omitempty"`
}

// AddOverrideRequest запрос на добавление переопределения часов на дату
type AddOverrideRequest struct {
	Date      string            `json:"date"` // YYYY-MM-DD
	TimeSlots []TimeSlotPayload `json:"timeSlots"`
}

// Конвертация в domain

// ToDomainSchedule валидирует запрос и собирает domain модель
func (r *CreateScheduleRequest) ToDomainSchedule() (*domain.AvailabilitySchedule, error) {
	weekly, err := ToDomainWeekly(r.WeeklySchedule)
	if err != nil {
		return nil, err
	}

	effectiveFrom, err := parseDate(r.EffectiveFrom)
	if err != nil {
		return nil, err
	}

	schedule := &domain.AvailabilitySchedule{
		StaffID:        r.StaffID,
		WeeklySchedule: weekly,
		Exceptions:     []domain.ScheduleException{},
		Overrides:      []domain.ScheduleOverride{},
		EffectiveFrom:  effectiveFrom,
	}

	if r.EffectiveTo != nil {
		effectiveTo, err := parseDate(*r.EffectiveTo)
		if err != nil {
			return nil, err
		}
		if effectiveTo.Before(effectiveFrom) {
			return nil, fmt.Errorf("%w: effectiveTo before effectiveFrom", ErrInvalidDate)
		}
		schedule.EffectiveTo = &effectiveTo
	}

	return schedule, nil
}

// ToDomainWeekly валидирует и конвертирует недельный шаблон
func ToDomainWeekly(payload []DaySchedulePayload) ([]domain.DayScheduleEntry, error) {
	weekly := make([]domain.DayScheduleEntry, 0, len(payload))
	seen := make(map[int]bool, len(payload))

	for _, day := range payload {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidDayOfWeek, day.DayOfWeek)
		}
		if seen[day.DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate day %d", ErrInvalidDayOfWeek, day.DayOfWeek)
		}
		seen[day.DayOfWeek] = true

		slots, err := ToDomainSlots(day.TimeSlots)
		if err != nil {
			return nil, err
		}

		weekly = append(weekly, domain.DayScheduleEntry{
			DayOfWeek: day.DayOfWeek,
			TimeSlots: slots,
		})
	}

	return weekly, nil
}

// ToDomainSlots валидирует и конвертирует список интервалов
func ToDomainSlots(payload []TimeSlotPayload) ([]domain.TimeSlot, error) {
	slots := make([]domain.TimeSlot, 0, len(payload))

	for _, slot := range payload {
		start, err := types.NewTimeStringFromString(slot.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: start %q", ErrInvalidTimeSlot, slot.Start)
		}
		end, err := types.NewTimeStringFromString(slot.End)
		if err != nil {
			return nil, fmt.Errorf("%w: end %q", ErrInvalidTimeSlot, slot.End)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: %s >= %s", ErrInvalidTimeSlot, slot.Start, slot.End)
		}
		slots = append(slots, domain.TimeSlot{Start: start, End: end})
	}

	return slots, nil
}

// ToDomainException валидирует запрос и собирает исключение.
// Для unavailable интервалы отбрасываются, для custom_hours обязательны
func (r *AddExceptionRequest) ToDomainException() (*domain.ScheduleException, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}

	kind := domain.ExceptionKind(r.Kind)
	exception := &domain.ScheduleException{
		Date:   date,
		Kind:   kind,
		Reason: r.Reason,
	}

	if r.Reason != nil && len(*r.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: longer than %d characters", ErrInvalidReason, domain.MaxReasonLength)
	}

	switch kind {
	case domain.ExceptionUnavailable:
		exception.TimeSlots = nil
	case domain.ExceptionCustomHours:
		if len(r.TimeSlots) == 0 {
			return nil, fmt.Errorf("%w: custom_hours requires time slots", ErrInvalidTimeSlot)
		}
		slots, err := ToDomainSlots(r.TimeSlots)
		if err != nil {
			return nil, err
		}
		exception.TimeSlots = slots
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidExceptionKind, r.Kind)
	}

	return exception, nil
}

// ToDomainOverride валидирует запрос и собирает переопределение
func (r *AddOverrideRequest) ToDomainOverride() (*domain.ScheduleOverride, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}

	if len(r.TimeSlots) == 0 {
		return nil, fmt.Errorf("%w: override requires time slots", ErrInvalidTimeSlot)
	}

	slots, err := ToDomainSlots(r.TimeSlots)
	if err != nil {
		return nil, err
	}

	return &domain.ScheduleOverride{Date: date, TimeSlots: slots}, nil
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return domain.DateOnly(date), nil
}

// Response модели

// ExceptionResponse исключение на дату
type ExceptionResponse struct {
	Date      string            `json:"date"`
	Kind      string            `json:"kind"`
	TimeSlots []TimeSlotPayload `json:"timeSlots,omitempty"`
	Reason    *string           `json:"reason,omitempty"`
}

// OverrideResponse переопределение часов на дату
type OverrideResponse struct {
	Date      string            `json:"date"`
	TimeSlots []TimeSlotPayload `json:"timeSlots"`
}

// ScheduleResponse ответ с данными расписания
type ScheduleResponse struct {
	ID             int64                `json:"id"`
	StaffID        int64                `json:"staffId"`
	WeeklySchedule []DaySchedulePayload `json:"weeklySchedule"`
	Exceptions     []ExceptionResponse  `json:"exceptions"`
	Overrides      []OverrideResponse   `json:"overrides"`
	EffectiveFrom  string               `json:"effectiveFrom"`
	EffectiveTo    *string              `json:"effectiveTo,omitempty"`
	CreatedAt      string               `json:"createdAt"`
	UpdatedAt      string               `json:"updatedAt"`
}

// ScheduleListResponse список расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// FromDomainSchedule конвертирует domain модель в ответ
func FromDomainSchedule(s *domain.AvailabilitySchedule) *ScheduleResponse {
	resp := &ScheduleResponse{
		ID:             s.ID,
		StaffID:        s.StaffID,
		WeeklySchedule: fromDomainWeekly(s.WeeklySchedule),
		Exceptions:     make([]ExceptionResponse, 0, len(s.Exceptions)),
		Overrides:      make([]OverrideResponse, 0, len(s.Overrides)),
		EffectiveFrom:  s.EffectiveFrom.Format(domain.DateFormat),
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}

	if s.EffectiveTo != nil {
		effectiveTo := s.EffectiveTo.Format(domain.DateFormat)
		resp.EffectiveTo = &effectiveTo
	}

	for _, e := range s.Exceptions {
		resp.Exceptions = append(resp.Exceptions, ExceptionResponse{
			Date:      e.Date.Format(domain.DateFormat),
			Kind:      string(e.Kind),
			TimeSlots: FromDomainSlots(e.TimeSlots),
			Reason:    e.Reason,
		})
	}

	for _, o := range s.Overrides {
		resp.Overrides = append(resp.Overrides, OverrideResponse{
			Date:      o.Date.Format(domain.DateFormat),
			TimeSlots: FromDomainSlots(o.TimeSlots),
		})
	}

	return resp
}

// FromDomainScheduleList конвертирует список расписаний в ответ
func FromDomainScheduleList(schedules []*domain.AvailabilitySchedule) *ScheduleListResponse {
	resp := &ScheduleListResponse{
		Schedules: make([]ScheduleResponse, 0, len(schedules)),
	}
	for _, s := range schedules {
		resp.Schedules = append(resp.Schedules, *FromDomainSchedule(s))
	}
	return resp
}

// FromDomainSlots конвертирует интервалы в ответ
func FromDomainSlots(slots []domain.TimeSlot) []TimeSlotPayload {
	if len(slots) == 0 {
		return nil
	}
	out := make([]TimeSlotPayload, 0, len(slots))
	for _, slot := range slots {
		out = append(out, TimeSlotPayload{Start: slot.Start.String(), End: slot.End.String()})
	}
	return out
}

func fromDomainWeekly(weekly []domain.DayScheduleEntry) []DaySchedulePayload {
	out := make([]DaySchedulePayload, 0, len(weekly))
	for _, day := range weekly {
		out = append(out, DaySchedulePayload{
			DayOfWeek: day.DayOfWeek,
			TimeSlots: FromDomainSlots(day.TimeSlots),
		})
	}
	return out
}
