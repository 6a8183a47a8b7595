package user

import "time"

type User struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"`
	Confirmed bool   `gorm:"not null;default:false" json:"confirmed"`
	CreatedAt time.Time
}
