package utils

// Map returns a new slice with the same length as src, but with values
// transformed by f.
func Map[T, U any](src []T, f func(T) U) []U {
	us := make([]U, len(src))
	for i := range src {
		us[i] = f(src[i])
	}
	return us
}
