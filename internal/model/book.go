package model

import (
	"time"
)

type Book struct {
	ID              uint       `gorm:"primaryKey;autoIncrement"`
	Title           string     `gorm:"not null"`
	Genre           string     `gorm:"index"`
	PublicationDate *time.Time `gorm:"type:date"`
	Price           float64
	AuthorID        uint `gorm:"not null;index"`
	Author          Author
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
