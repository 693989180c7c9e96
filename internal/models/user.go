package models

import "time"

type User struct {
	ID           int64      `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Username     string     `json:"username" db:"username" gorm:"size:100;not null;uniqueIndex"`
	Email        string     `json:"email" db:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string     `json:"-" db:"password_hash" gorm:"not null"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
	IsActive     bool       `json:"is_active" db:"is_active" gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}

// UserInfo is the public projection of a User handed out to clients.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Info() *UserInfo {
	return &UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
