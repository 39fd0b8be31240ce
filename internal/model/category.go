package model

import "time"

// Category groups books. Books reference it through Book.CategoryID; the
// relation is never cascaded on delete.
type Category struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:255;uniqueIndex:uni_categories_name;not null"`
	Description *string `gorm:"size:1000"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Category) TableName() string { return "categories" }
