package utils

// Value dereferences p, returning the zero value when p is nil. Used for
// optional fields in backend JSON payloads.
func Value[T any](p *T) T {
	if p == nil {
		return *new(T)
	}
	return *p
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
