package model

import "time"

type Reminder struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	ProjectID string    `gorm:"size:36;not null;index" json:"project_id"`
	SenderID  string    `gorm:"size:36;not null" json:"sender_id"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Sender  *User    `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
