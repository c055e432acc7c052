package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint   `gorm:"primarykey"`
	Username  string `gorm:"size:64;uniqueIndex"`
	Password  string `gorm:"size:128"` // bcrypt哈希
	Nickname  string `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
