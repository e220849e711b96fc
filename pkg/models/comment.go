package model

import "time"

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string    `gorm:"size:36;not null;index" json:"task_id"`
	ParentID  *string   `gorm:"size:36;index" json:"parent_id,omitempty"`
	AuthorID  string    `gorm:"size:36;not null" json:"author_id"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	Author  *User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Replies []*Comment `gorm:"-" json:"replies"`
}
