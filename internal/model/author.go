package model

import (
	"time"
)

type Author struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null;index"`
	Nationality string
	BirthDate   *time.Time `gorm:"type:date"`
	Biography   string     `gorm:"size:2000"`
	Books       []Book     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
