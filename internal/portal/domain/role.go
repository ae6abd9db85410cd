package domain

// Role is the closed set of membership roles. Keeping this an enumeration
// (rather than a free string) means invalid roles are caught at the type
// boundary.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

func (r Role) String() string { return string(r) }
