package create_pattern

import (
	"github.com/m04kA/SMC-ScheduleService/internal/service/patterns/models"
)

// CreatePatternRequest HTTP request model. Расписание задаётся либо
// структурными полями frequency/dayOfWeek/dayOfMonth, либо строкой RRULE в
// поле rule; непустое rule имеет приоритет.
type CreatePatternRequest struct {
	ClientID        int64   `json:"clientId"`
	StaffID         int64   `json:"staffId"`
	ServiceID       int64   `json:"serviceId"`
	Rule            string  `json:"rule,omitempty"`
	Frequency       string  `json:"frequency,omitempty"`
	Interval        int     `json:"interval,omitempty"`
	DayOfWeek       *int    `json:"dayOfWeek,omitempty"`
	DayOfMonth      *int    `json:"dayOfMonth,omitempty"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	TimeZone        string  `json:"timeZone,omitempty"`
	StartDate       string  `json:"startDate"`
	EndDate         *string `json:"endDate,omitempty"`
	OccurrenceLimit *int    `json:"occurrenceLimit,omitempty"`
	PaymentPlan     string  `json:"paymentPlan,omitempty"`
}

// HasRule сообщает, задано ли расписание строкой RRULE
func (r *CreatePatternRequest) HasRule() bool {
	return r.Rule != ""
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreatePatternRequest) ToServiceRequest() *models.CreatePatternRequest {
	return &models.CreatePatternRequest{
		ClientID:        r.ClientID,
		StaffID:         r.StaffID,
		ServiceID:       r.ServiceID,
		Frequency:       r.Frequency,
		Interval:        r.Interval,
		DayOfWeek:       r.DayOfWeek,
		DayOfMonth:      r.DayOfMonth,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		TimeZone:        r.TimeZone,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		OccurrenceLimit: r.OccurrenceLimit,
		PaymentPlan:     r.PaymentPlan,
	}
}

// ToRuleRequest конвертирует HTTP request в модель создания из RRULE
func (r *CreatePatternRequest) ToRuleRequest() *models.CreatePatternFromRuleRequest {
	return &models.CreatePatternFromRuleRequest{
		ClientID:        r.ClientID,
		StaffID:         r.StaffID,
		ServiceID:       r.ServiceID,
		Rule:            r.Rule,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		TimeZone:        r.TimeZone,
		StartDate:       r.StartDate,
		PaymentPlan:     r.PaymentPlan,
	}
}
