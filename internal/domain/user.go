package domain

import "time"

type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;not null"`
	Email        *string    `json:"email,omitempty"`
	Name         *string    `json:"name,omitempty"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         Role       `json:"role" gorm:"type:varchar(16);not null;default:'USER'"`
	Status       UserStatus `json:"status" gorm:"type:varchar(16);not null;default:'ACTIVE'"`
	// RefreshToken holds the single currently valid refresh token for the
	// user. Every login and every successful refresh overwrites it, which
	// invalidates any token issued earlier (one live session per user).
	RefreshToken *string    `json:"-"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
