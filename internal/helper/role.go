package helper

import "errors"

var ErrInvalidRole = errors.New("rol no autorizado")

// CheckRole - nil when role is one of allowed.
func CheckRole(role string, allowed ...string) error {
	for _, r := range allowed {
		if role == r {
			return nil
		}
	}
	return ErrInvalidRole
}
