package models

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleSubadmin UserRole = "subadmin"
	RoleSeller   UserRole = "seller"
	RoleUser     UserRole = "user"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleSubadmin, RoleSeller, RoleUser:
		return true
	}
	return false
}

// Identity is the authenticated caller as extracted from the bearer token.
type Identity struct {
	UserID int
	Role   UserRole
}
