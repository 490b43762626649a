package models

import (
	"time"
)

type Chat struct {
	ID        string `gorm:"type:varchar(255);primaryKey"`
	UserID    string `gorm:"type:varchar(255);not null;index"`
	Title     string `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`

	// Relations
	User User `gorm:"foreignKey:UserID;references:ID"`
}
