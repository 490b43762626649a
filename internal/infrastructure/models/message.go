package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatID    string    `gorm:"type:varchar(255);not null;index"`
	Sender    string    `gorm:"type:varchar(32);not null"`
	Content   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"index"`

	// Relations
	Chat Chat `gorm:"foreignKey:ChatID;references:ID;constraint:OnDelete:CASCADE"`
}
