package shared

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"USER", "OPERATOR", "ADMIN"} {
		role, err := ParseRole(raw)
		if err != nil {
			t.Fatalf("ParseRole(%q) error: %v", raw, err)
		}
		if string(role) != raw {
			t.Fatalf("ParseRole(%q) = %q", raw, role)
		}
	}

	for _, raw := range []string{"", "admin", "ROOT", "user "} {
		if _, err := ParseRole(raw); !errors.Is(err, ErrValidation) {
			t.Fatalf("ParseRole(%q) expected validation error, got %v", raw, err)
		}
	}
}

func TestRoleIn(t *testing.T) {
	t.Parallel()

	if !RoleAdmin.In(RoleAdmin, RoleOperator) {
		t.Fatalf("ADMIN must be in {ADMIN, OPERATOR}")
	}
	if RoleUser.In(RoleAdmin, RoleOperator) {
		t.Fatalf("USER must not be in {ADMIN, OPERATOR}")
	}
	if RoleUser.In() {
		t.Fatalf("empty allow-list admits nobody")
	}
}
