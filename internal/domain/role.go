package domain

// Role represents a user's access level
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
	RoleUser      Role = "USER"
	RoleGuest     Role = "GUEST"
)

// AllRoles contains all valid roles in descending order of privilege
var AllRoles = []Role{RoleAdmin, RoleModerator, RoleUser, RoleGuest}

// IsValid checks if a role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser, RoleGuest:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// UserStatus represents an account's lifecycle state. Only ACTIVE
// accounts may log in.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusInactive  UserStatus = "INACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// IsValid checks if a status is valid
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s UserStatus) String() string {
	return string(s)
}
