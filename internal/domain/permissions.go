package domain

// Permission strings gate individual capabilities
const (
	PermissionUserRead        = "user:read"
	PermissionUserWrite       = "user:write"
	PermissionUserDelete      = "user:delete"
	PermissionAdminAccess     = "admin:access"
	PermissionContentModerate = "content:moderate"
)

// RolePermissions is the fixed role → permission mapping. It is not
// configurable at runtime; the permission rows written by cmd/seed are
// bootstrap data only.
var RolePermissions = map[Role][]string{
	RoleAdmin: {
		PermissionUserRead,
		PermissionUserWrite,
		PermissionUserDelete,
		PermissionAdminAccess,
		PermissionContentModerate,
	},
	RoleModerator: {
		PermissionUserRead,
		PermissionContentModerate,
	},
	RoleUser: {
		PermissionUserRead,
	},
	RoleGuest: {},
}

// HasPermission reports whether a role grants a permission. Unknown
// roles have no permissions.
func HasPermission(role Role, permission string) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// CanAccessAdmin reports whether a role may open the admin panel
func CanAccessAdmin(role Role) bool {
	return HasPermission(role, PermissionAdminAccess)
}

// CanModerateContent reports whether a role may moderate content
func CanModerateContent(role Role) bool {
	return HasPermission(role, PermissionContentModerate)
}

// CanManageUsers reports whether a role may create or update users
func CanManageUsers(role Role) bool {
	return HasPermission(role, PermissionUserWrite)
}
