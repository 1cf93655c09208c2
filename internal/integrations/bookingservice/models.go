package bookingservice

// CreateBookingRequest запрос на создание бронирования в BookingService
type CreateBookingRequest struct {
	ClientID        int64  `json:"client_id"`
	StaffID         int64  `json:"staff_id"`
	ServiceID       int64  `json:"service_id"`
	Date            string `json:"date"`       // YYYY-MM-DD
	StartTime       string `json:"start_time"` // HH:MM
	DurationMinutes int    `json:"duration_minutes"`
	PatternID       *int64 `json:"pattern_id,omitempty"`
	PaymentPlan     string `json:"payment_plan,omitempty"`
}

// Booking созданное бронирование из BookingService
type Booking struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// ErrorResponse модель ошибки от BookingService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
