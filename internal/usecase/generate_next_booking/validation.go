package generate_next_booking

import "fmt"

// validateRequest проверяет входные данные запроса
func validateRequest(req *Request) error {
	if req.PatternID <= 0 {
		return fmt.Errorf("%w: pattern id must be positive", ErrInvalidInput)
	}
	return nil
}
