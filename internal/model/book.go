package model

import "time"

// Book belongs to exactly one Category. Category is only populated when
// the repository preloads it.
type Book struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:255;not null"`
	Author      string    `gorm:"size:255;not null"`
	PublishedAt time.Time `gorm:"type:date;not null"`
	IsActive    bool      `gorm:"not null"`
	CategoryID  uint      `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Book) TableName() string { return "books" }
