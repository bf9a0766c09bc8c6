package domain

import "time"

// Permission and RoleDefinition mirror the static RolePermissions table
// as database rows. They exist so that the seeded schema documents the
// policy; the authorization checks read the compiled-in table, never
// these rows.

type Permission struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RoleDefinition struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RolePermission struct {
	RoleID       uint `json:"roleId" gorm:"primaryKey"`
	PermissionID uint `json:"permissionId" gorm:"primaryKey"`
}
