package bookingservice

import "errors"

var (
	// ErrSlotTaken возвращается, когда BookingService сообщает, что интервал уже занят
	ErrSlotTaken = errors.New("bookingservice client: slot already taken")

	// ErrBookingRejected возвращается, когда BookingService отклоняет данные бронирования
	ErrBookingRejected = errors.New("bookingservice client: booking rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("bookingservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("bookingservice client: invalid response")

	// ErrServiceUnavailable возвращается, когда BookingService недоступен.
	// Вызывающий может повторить попытку позже
	ErrServiceUnavailable = errors.New("bookingservice unavailable")
)
