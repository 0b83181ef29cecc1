package helpers

// Ptr returns a pointer to a copy of v. Used for optional registration fields.
func Ptr[T any](v T) *T {
	return &v
}

// Value dereferences p, falling back to fallback when p is nil.
func Value[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
