package errors

// MaxPageSize is the largest per_page value the GitHub REST API honours.
const MaxPageSize = 100

// ValidatePageSize checks that n is a per_page value GitHub accepts.
func ValidatePageSize(n int) error {
	if n < 1 || n > MaxPageSize {
		return New(ErrCodeInvalidPageSize, "page size must be between 1 and %d, got %d", MaxPageSize, n)
	}
	return nil
}
