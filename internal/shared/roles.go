package shared

import "fmt"

// Role is the closed set of account roles.
type Role string

const (
	RoleUser     Role = "USER"
	RoleOperator Role = "OPERATOR"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole validates a raw role value against the closed set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleUser, RoleOperator, RoleAdmin:
		return Role(raw), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, raw)
}

// Valid reports whether the role is a member of the closed set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// In reports whether the role is a member of the allow-list.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
