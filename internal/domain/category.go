package domain

import "time"

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description,omitempty"`
	// ParentID is nil for root categories. The parent graph must stay
	// acyclic; CategoryService validates every reassignment.
	ParentID  *uint     `json:"parentId" gorm:"index"`
	Parent    *Category `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsRoot reports whether the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
