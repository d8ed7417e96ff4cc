package users

import "time"

// Roles a user can hold. Exactly one role per user.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User is an identity known to the service. Users are created out-of-band by
// the identity provider login flow; the role is assigned by an administrator
// (or seeded from ADMIN_EMAILS).
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidRole reports whether role is one of the two known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}
