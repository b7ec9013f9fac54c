package users

import (
	"time"

	"github.com/arcadia-store/arcadia/internal/shared"
)

// User is the administrative view of an account.
type User struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      shared.Role `json:"role"`
	Language  string      `json:"language"`
	Currency  string      `json:"currency"`
	LastLogin *time.Time  `json:"lastLogin,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}
