package validation

import "regexp"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail is a client-side gate for "local@domain.tld" shaped input. It is not a security check.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
