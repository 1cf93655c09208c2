package get_upcoming_occurrences

import "fmt"

// validateRequest проверяет входные данные запроса
func validateRequest(req *Request) error {
	if req.PatternID <= 0 {
		return fmt.Errorf("%w: pattern id must be positive", ErrInvalidInput)
	}
	if req.Count != nil && *req.Count < 1 {
		return fmt.Errorf("%w: count must be positive", ErrInvalidInput)
	}
	return nil
}
