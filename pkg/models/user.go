package model

import "time"

type User struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	Username     string  `gorm:"not null" json:"username"`
	Email        string  `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string  `json:"-"`
	GoogleID     *string `gorm:"uniqueIndex" json:"-"`
	ProfileImage string  `json:"profile_image,omitempty"`

	ResetTokenHash      *string    `gorm:"index" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reminders []Reminder `gorm:"foreignKey:UserID" json:"reminders,omitempty"`
}

// UserSummaryColumns are the columns loaded when a user is expanded inside another record.
var UserSummaryColumns = []string{"id", "username", "email", "profile_image"}
