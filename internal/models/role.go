package models

// Role is the closed set of privilege levels, ordered user < admin < owner.
// All privilege checks in the system go through AtLeast; never compare role
// strings directly.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

func (r Role) rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r grants at least the privileges of min.
// An unknown role grants nothing.
func (r Role) AtLeast(min Role) bool {
	return r.rank() >= min.rank() && r.rank() > 0
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	return r.rank() > 0
}
