package models

import (
	"time"
)

type User struct {
	ID         string  `gorm:"type:varchar(255);primaryKey"`
	Email      *string `gorm:"type:varchar(255)"`
	WalletID   *string `gorm:"type:varchar(255);uniqueIndex"`
	WalletSeed *string `gorm:"type:text"` // AES-GCM sealed, hex encoded
	NetworkID  *string `gorm:"type:varchar(64)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
