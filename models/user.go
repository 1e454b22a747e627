package models

import "time"

// User is an account that can sign in to the roster API.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"size:255;not null"`
	LastName  string    `json:"last_name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"size:500;not null"`
	Phone     string    `json:"phone" gorm:"size:255;not null"`
	Dob       Date      `json:"dob" gorm:"not null"`
	Gender    Gender    `json:"gender" gorm:"size:1"`
	Address   string    `json:"address" gorm:"size:255;not null"`
	Role      Role      `json:"role" gorm:"size:32;not null;default:artist"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
