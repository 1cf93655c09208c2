package ptr

// Ptr returns a pointer to the given value.
// Useful for filling optional struct fields from literals.
func Ptr[T any](v T) *T {
	return &v
}
